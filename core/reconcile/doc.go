// Package reconcile provides the catalog reconciliation engine: it compares a freshly
// fetched product feed with the current state of a marketplace and derives the minimal
// ordered set of actions that brings the marketplace in line with the feed.
//
// # Architecture
//
// A run is a pipeline of four stages, each owning its data exclusively:
//
// 1. Normalize: converts raw feed rows into canonical SourceRecords keyed by ItemKey.
//    Unusable rows are rejected individually and reported as MalformedRecordErrors.
//
// 2. Snapshot: converts marketplace listings into MarketplaceRecords keyed the same way.
//    Unreadable listings are skipped, so their key counts as absent.
//
// 3. Reconcile: a pure function producing one Action per feed item (create, update_price,
//    update_stock, update_both or noop). Creates always precede updates; within a type the
//    feed order is kept. Listings absent from the feed are never touched.
//
// 4. Execute: applies the plan in order through a Marketplace, one call per non-noop
//    action, each bounded by a timeout. Failures are recorded as Outcomes and never abort
//    the remaining plan.
//
// No state is kept between runs. Both snapshots are fetched fresh every time, so re-running
// with unchanged inputs yields only no-ops.
//
// # Concurrency
//
// BuildPlan fetches the feed and the listings concurrently. Execution is sequential.
// Two runs against the same marketplace must not overlap; callers serialize them.
//
// # Usage Example
//
//	report, err := reconcile.Run(ctx, feedSource, marketplace, reconcile.Options{
//	    Normalize: reconcile.DefaultNormalizeOptions(),
//	    Execute:   reconcile.ExecuteOptions{CallTimeout: 10 * time.Second},
//	})
//	if err != nil {
//	    return err // feed or listings could not be fetched
//	}
//	for _, o := range report.Outcomes {
//	    fmt.Println(o.Action.Type, o.Action.Key, o.Status)
//	}
package reconcile
