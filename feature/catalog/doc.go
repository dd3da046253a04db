// Package catalog exposes catalog sync runs as a service and an HTTP feature.
//
// The Service wires a feed source and a marketplace client into reconcile.Run, logs the
// run report and stores it through the report package. Triggers of the same mode
// (run or dry-run) arriving while a run is in flight join that run instead of starting
// a second one.
//
// # Routes
//
//	POST /sync            trigger a run (?dry_run=true to plan only)
//	GET  /sync/plan       plan without executing
//	GET  /sync/runs       recent runs (?limit=N)
//	GET  /sync/runs/:id   one run (?full=true for the archived report)
package catalog
