package report

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("run not found")

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 20

// Repository stores run reports in the database.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new run repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the report tables.
func (r *Repository) Migrate() error {
	if err := r.db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate report tables: %w", err)
	}
	return nil
}

// Save stores a run and its outcomes in one transaction.
func (r *Repository) Save(ctx context.Context, run *Run) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Outcomes").Create(run).Error; err != nil {
			return fmt.Errorf("failed to save run %s: %w", run.ID, err)
		}
		if len(run.Outcomes) == 0 {
			return nil
		}
		for i := range run.Outcomes {
			run.Outcomes[i].RunID = run.ID
		}
		if err := tx.CreateInBatches(run.Outcomes, 500).Error; err != nil {
			return fmt.Errorf("failed to save outcomes of run %s: %w", run.ID, err)
		}
		return nil
	})
}

// Get loads a run with its outcomes in plan order.
func (r *Repository) Get(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := r.db.WithContext(ctx).
		Preload("Outcomes", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&run, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}
	return &run, nil
}

// List returns the most recent runs without their outcomes.
func (r *Repository) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var runs []Run
	if err := r.db.WithContext(ctx).Order("started_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}
