package catalog

import (
	"context"
	"errors"
	"strconv"

	"catalog-sync/core/logger"
	"catalog-sync/core/reconcile"
	"catalog-sync/feature/report"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrHistoryDisabled is returned by history queries when no database is configured.
var ErrHistoryDisabled = errors.New("run history requires a database")

// Options configures a Service.
type Options struct {
	Feed        reconcile.FeedSource
	Marketplace reconcile.Marketplace
	// Repository stores run summaries. Optional.
	Repository *report.Repository
	// Archiver stores full reports. Optional.
	Archiver  *report.Archiver
	Normalize reconcile.NormalizeOptions
	Execute   reconcile.ExecuteOptions
	Config    Config
	Logger    *zap.Logger
}

// Service runs catalog syncs. Concurrent triggers of the same mode share one run.
type Service struct {
	feed      reconcile.FeedSource
	market    reconcile.Marketplace
	repo      *report.Repository
	archiver  *report.Archiver
	normalize reconcile.NormalizeOptions
	execute   reconcile.ExecuteOptions
	cfg       Config
	logger    *zap.Logger
	sf        singleflight.Group
}

// NewService creates a new sync service.
func NewService(opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	execute := opts.Execute
	if execute.Logger == nil {
		execute.Logger = log
	}
	return &Service{
		feed:      opts.Feed,
		market:    opts.Marketplace,
		repo:      opts.Repository,
		archiver:  opts.Archiver,
		normalize: opts.Normalize,
		execute:   execute,
		cfg:       opts.Config,
		logger:    log,
	}
}

// DefaultDryRun returns the configured dry-run default.
func (s *Service) DefaultDryRun() bool {
	return s.cfg.DryRun
}

// Plan builds the plan for the current feed without executing it or storing anything.
func (s *Service) Plan(ctx context.Context) (*reconcile.PlanResult, error) {
	v, err, _ := s.sf.Do("plan", func() (interface{}, error) {
		return reconcile.BuildPlan(ctx, s.feed, s.market, s.normalize)
	})
	if err != nil {
		return nil, err
	}
	return v.(*reconcile.PlanResult), nil
}

// Sync performs one run and stores its report. shared is true when the caller joined a run
// already in flight.
func (s *Service) Sync(ctx context.Context, dryRun bool) (rep *reconcile.RunReport, shared bool, err error) {
	key := "run"
	if dryRun {
		key = "dry-run"
	}

	v, err, shared := s.sf.Do(key, func() (interface{}, error) {
		s.logger.Info("Starting sync run",
			zap.String("feed", s.feed.Name()),
			zap.String("marketplace", s.market.Name()),
			zap.Bool("dry_run", dryRun))

		r, err := reconcile.Run(ctx, s.feed, s.market, reconcile.Options{
			Normalize: s.normalize,
			Execute:   s.execute,
			DryRun:    dryRun,
		})
		if err != nil {
			s.logger.Error("Sync run failed", zap.Error(err))
			return nil, err
		}

		l := logger.WithRun(s.logger, r.RunID.String())
		LogReport(l, r)
		s.store(ctx, l, r)
		return r, nil
	})
	if err != nil {
		return nil, shared, err
	}
	return v.(*reconcile.RunReport), shared, nil
}

// store persists the report. Storage failures are logged and never fail the run.
func (s *Service) store(ctx context.Context, l *zap.Logger, r *reconcile.RunReport) {
	// The run already happened; persist it even if the trigger was cancelled meanwhile.
	ctx = context.WithoutCancel(ctx)

	if s.repo != nil {
		if err := s.repo.Save(ctx, report.FromReport(r, s.feed.Name(), s.market.Name())); err != nil {
			l.Warn("Failed to save run report", zap.Error(err))
		}
	}
	if s.archiver != nil && s.cfg.Archive {
		name, err := s.archiver.Archive(ctx, r)
		if err != nil {
			l.Warn("Failed to archive run report", zap.Error(err))
			return
		}
		l.Debug("Run report archived", zap.String("object", name))
	}
}

// Runs lists the most recent runs. A non-positive limit uses the configured default.
func (s *Service) Runs(ctx context.Context, limit int) ([]report.Run, error) {
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 {
		limit = s.cfg.HistoryLimit
	}
	return s.repo.List(ctx, limit)
}

// RunDetail loads one run with its outcomes.
func (s *Service) RunDetail(ctx context.Context, id string) (*report.Run, error) {
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}
	return s.repo.Get(ctx, id)
}

// ArchivedReport loads the full archived report of a run.
func (s *Service) ArchivedReport(ctx context.Context, id string) (*reconcile.RunReport, error) {
	if s.archiver == nil {
		return nil, report.ErrNotFound
	}
	return s.archiver.Load(ctx, id)
}

// LogPlan writes a plan summary and a sample of its rejected rows and mutations.
func LogPlan(l *zap.Logger, plan *reconcile.PlanResult) {
	logSummary(l, plan.Summary, plan.Rejected, plan.SkippedListings)
	logPlannedActions(l, plan.Actions, plan.Summary)
}

func logSummary(l *zap.Logger, s reconcile.PlanSummary, rejected, skipped []reconcile.MalformedRecordError) {
	l.Info("Sync plan",
		zap.Int("total", s.Total),
		zap.Int("creates", s.Creates),
		zap.Int("price_updates", s.PriceUpdates),
		zap.Int("stock_updates", s.StockUpdates),
		zap.Int("both_updates", s.BothUpdates),
		zap.Int("noops", s.NoOps),
		zap.Int("untouched", s.Untouched),
		zap.Int("rejected", len(rejected)),
		zap.Int("skipped_listings", len(skipped)),
	)

	for i, rej := range rejected {
		if i == maxLogged {
			l.Warn("Additional rejected rows not shown", zap.Int("count", len(rejected)-maxLogged))
			break
		}
		l.Warn("Rejected feed row", zap.Error(rej))
	}
}

func logPlannedActions(l *zap.Logger, actions []reconcile.Action, s reconcile.PlanSummary) {
	shown := 0
	for _, a := range actions {
		if a.Type == reconcile.ActionNoOp {
			continue
		}
		if shown == maxLogged {
			l.Info("Additional actions not shown", zap.Int("count", s.Mutations()-maxLogged))
			break
		}
		l.Info("Planned action",
			zap.String("type", string(a.Type)),
			zap.String("key", string(a.Key)),
			zap.String("reason", a.Reason))
		shown++
	}
}

// LogReport writes a run summary and a sample of its actions and failures.
func LogReport(l *zap.Logger, r *reconcile.RunReport) {
	logSummary(l, r.Summary, r.Rejected, r.SkippedListings)

	if r.DryRun {
		logPlannedActions(l, r.Plan, r.Summary)
		l.Info("Dry-run mode: no changes were made")
		return
	}

	e := r.Execution
	l.Info("Sync finished",
		zap.Int("succeeded", e.Succeeded),
		zap.Int("failed", e.Failed),
		zap.Int("conflicts", e.Conflicts),
		zap.Int("cancelled", e.Cancelled),
		zap.Duration("duration", r.FinishedAt.Sub(r.StartedAt)),
	)

	failed := 0
	for _, o := range r.Outcomes {
		if o.Succeeded() {
			continue
		}
		if failed == maxLogged {
			l.Warn("Additional failures not shown", zap.Int("count", e.Failed-maxLogged))
			break
		}
		l.Warn("Action failed",
			zap.String("type", string(o.Action.Type)),
			zap.String("key", string(o.Action.Key)),
			zap.String("kind", string(o.Kind)),
			zap.String("reason", o.Reason))
		failed++
	}
}

const maxLogged = 5

// parseLimit reads a positive limit, returning 0 when absent or invalid.
func parseLimit(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
