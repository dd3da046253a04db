package integrity

import (
	"context"
	"time"

	"catalog-sync/core/storage"
	"catalog-sync/feature/integrity/checks"
	"catalog-sync/feature/report"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options configures the checks.
type Options struct {
	// FeedObject is the feed in the bucket. Empty skips the feed check.
	FeedObject string
	// ReportPrefix is where run reports are archived.
	ReportPrefix string
	// FeedMaxAge marks older feeds as stale. Zero disables it.
	FeedMaxAge time.Duration
}

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
	db     *gorm.DB
	opts   Options
	now    func() time.Time
}

// NewService creates a new integrity service.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, opts Options) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		logger: logger,
		db:     db,
		opts:   opts,
		now:    time.Now,
	}
}

// CheckStructure returns the missing bucket folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket, checks.Folders(s.opts.FeedObject, s.opts.ReportPrefix))
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckFeed inspects the feed object. It returns nil when the feed is not read from storage.
func (s *Service) CheckFeed(ctx context.Context) (*checks.FeedReport, error) {
	if s.opts.FeedObject == "" {
		return nil, nil
	}
	return checks.CheckFeed(ctx, s.client, s.bucket, s.opts.FeedObject, s.opts.FeedMaxAge, s.now())
}

// CheckDatabase verifies the run report tables.
func (s *Service) CheckDatabase() (*checks.DatabaseReport, error) {
	return checks.CheckDatabase(s.db, report.Models()...)
}
