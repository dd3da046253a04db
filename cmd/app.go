package cmd

import (
	"context"
	"fmt"
	"time"

	"catalog-sync/core/config"
	"catalog-sync/core/database"
	"catalog-sync/core/logger"
	"catalog-sync/core/reconcile"
	"catalog-sync/core/storage"
	"catalog-sync/feature/catalog"
	"catalog-sync/feature/feed"
	"catalog-sync/feature/integrity"
	"catalog-sync/feature/marketplace"
	"catalog-sync/feature/report"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds the components shared by the commands.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	store    storage.Client
	db       *gorm.DB
	repo     *report.Repository
	archiver *report.Archiver
}

// newApp loads the configuration and connects to storage and the optional database.
func newApp() (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	a := &app{
		cfg:      cfg,
		log:      logg,
		store:    store,
		archiver: report.NewArchiver(store, cfg.Storage.Bucket, cfg.Sync.ReportPrefix),
	}

	// Run history is optional; syncs still run without a database.
	if conn, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Optional database connection failed, run history disabled", zap.Error(err))
	} else {
		repo := report.NewRepository(conn)
		if err := repo.Migrate(); err != nil {
			logg.Warn("Report table migration failed, run history disabled", zap.Error(err))
		} else {
			a.db = conn
			a.repo = repo
		}
	}

	return a, nil
}

// prepareBucket creates the bucket used for feeds and reports when missing.
func (a *app) prepareBucket(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := storage.EnsureBucket(ctx, a.store, a.cfg.Storage.Bucket, a.cfg.Storage.Region); err != nil {
		a.log.Warn("Failed to prepare storage bucket", zap.String("bucket", a.cfg.Storage.Bucket), zap.Error(err))
	}
}

// syncService builds the sync service. provider overrides the configured marketplace when set.
func (a *app) syncService(provider string) (*catalog.Service, error) {
	source, err := feed.New(a.cfg.Feed, a.store, a.cfg.Storage.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to create feed source: %w", err)
	}

	mcfg := a.cfg.Marketplace
	if provider != "" {
		mcfg.Provider = provider
	}
	market, err := marketplace.New(mcfg, a.log)
	if err != nil {
		return nil, fmt.Errorf("failed to create marketplace client: %w", err)
	}

	return catalog.NewService(catalog.Options{
		Feed:        source,
		Marketplace: market,
		Repository:  a.repo,
		Archiver:    a.archiver,
		Normalize:   a.cfg.Feed.NormalizeOptions(),
		Execute: reconcile.ExecuteOptions{
			CallTimeout: mcfg.CallTimeout(),
			Logger:      a.log,
		},
		Config: a.cfg.Sync,
		Logger: a.log,
	}), nil
}

// integrityService builds the integrity service for the configured feed and report prefix.
func (a *app) integrityService() *integrity.Service {
	return integrity.NewService(a.store, a.cfg.Storage.Bucket, a.log, a.db, a.integrityOptions())
}

func (a *app) integrityOptions() integrity.Options {
	opts := integrity.Options{
		ReportPrefix: a.cfg.Sync.ReportPrefix,
		FeedMaxAge:   a.cfg.Feed.MaxAge(),
	}
	if a.cfg.Feed.Source == feed.SourceStorage || a.cfg.Feed.Source == "" {
		opts.FeedObject = a.cfg.Feed.Object
	}
	return opts
}
