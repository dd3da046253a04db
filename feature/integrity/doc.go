// Package integrity provides health checks for the infrastructure a sync run depends on.
//
// # Checks Provided
//
//   - Structure: the bucket exists and holds the feed and report folders (e.g. /feeds, /reports).
//   - Feed: the feed object exists, is not empty and is not older than the configured age.
//   - Database: the sync_runs and sync_outcomes tables match the persisted models.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/storage : Runs structure and feed checks (supports ?fix=true).
//   - GET /integrity/database : Runs the schema check.
package integrity
