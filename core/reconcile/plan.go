package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// PlanResult holds the two snapshots of a run and the plan derived from them.
type PlanResult struct {
	// Source is the normalized feed.
	Source *SourceSet

	// Current is the marketplace snapshot.
	Current *MarketplaceSet

	// Actions is the ordered plan.
	Actions []Action

	// Rejected lists feed rows that failed normalization.
	Rejected []MalformedRecordError

	// SkippedListings lists listings that could not be read.
	SkippedListings []MalformedRecordError

	// Summary provides aggregate counts.
	Summary PlanSummary
}

// Options controls a full sync run.
type Options struct {
	// Normalize controls feed conversions.
	Normalize NormalizeOptions

	// Execute controls plan execution.
	Execute ExecuteOptions

	// DryRun prevents execution of any action if true.
	DryRun bool
}

// BuildPlan fetches the feed and the marketplace listings concurrently, normalizes both
// and reconciles them. It does NOT execute anything; use Execute for that.
// An error is returned only when one of the inputs cannot be fetched at all.
func BuildPlan(ctx context.Context, feed FeedSource, market Marketplace, opts NormalizeOptions) (*PlanResult, error) {
	var (
		rows     []RawRow
		listings []RawListing
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		rows, err = feed.Fetch(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch feed from %s: %w", feed.Name(), err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		listings, err = market.ListCurrentListings(gctx)
		if err != nil {
			return fmt.Errorf("failed to list %s listings: %w", market.Name(), err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	source, rejected := Normalize(rows, opts)
	current, skipped := Snapshot(listings)
	actions := Reconcile(source, current)

	return &PlanResult{
		Source:          source,
		Current:         current,
		Actions:         actions,
		Rejected:        rejected,
		SkippedListings: skipped,
		Summary:         Summarize(actions, source, current),
	}, nil
}

// Run performs one sync: plan, then execute unless DryRun is set.
// The returned report carries one outcome per planned action for executed runs.
func Run(ctx context.Context, feed FeedSource, market Marketplace, opts Options) (*RunReport, error) {
	report := &RunReport{
		RunID:     uuid.New(),
		StartedAt: time.Now().UTC(),
		DryRun:    opts.DryRun,
	}

	result, err := BuildPlan(ctx, feed, market, opts.Normalize)
	if err != nil {
		return nil, err
	}

	report.Plan = result.Actions
	report.Rejected = result.Rejected
	report.SkippedListings = result.SkippedListings
	report.Summary = result.Summary
	report.Outcomes = []Outcome{}

	if !opts.DryRun {
		report.Outcomes = Execute(ctx, result.Actions, market, opts.Execute)
		report.Execution = SummarizeOutcomes(report.Outcomes)
	}

	report.FinishedAt = time.Now().UTC()
	return report, nil
}
