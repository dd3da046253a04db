package report

import (
	"time"

	"catalog-sync/core/reconcile"
)

// StatusPlanned marks actions of a dry run, which have no outcome.
const StatusPlanned = "planned"

// Run is one persisted sync run.
type Run struct {
	ID              string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	StartedAt       time.Time `gorm:"column:started_at;index" json:"started_at"`
	FinishedAt      time.Time `gorm:"column:finished_at" json:"finished_at"`
	DryRun          bool      `gorm:"column:dry_run" json:"dry_run"`
	Feed            string    `gorm:"column:feed;size:255" json:"feed"`
	Marketplace     string    `gorm:"column:marketplace;size:64" json:"marketplace"`
	Total           int       `gorm:"column:total" json:"total"`
	Creates         int       `gorm:"column:creates" json:"creates"`
	PriceUpdates    int       `gorm:"column:price_updates" json:"price_updates"`
	StockUpdates    int       `gorm:"column:stock_updates" json:"stock_updates"`
	BothUpdates     int       `gorm:"column:both_updates" json:"both_updates"`
	NoOps           int       `gorm:"column:noops" json:"noops"`
	Untouched       int       `gorm:"column:untouched" json:"untouched"`
	Rejected        int       `gorm:"column:rejected" json:"rejected"`
	SkippedListings int       `gorm:"column:skipped_listings" json:"skipped_listings"`
	Succeeded       int       `gorm:"column:succeeded" json:"succeeded"`
	Failed          int       `gorm:"column:failed" json:"failed"`
	Conflicts       int       `gorm:"column:conflicts" json:"conflicts"`
	Cancelled       int       `gorm:"column:cancelled" json:"cancelled"`
	Complete        bool      `gorm:"column:complete" json:"complete"`

	Outcomes []OutcomeRow `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE" json:"outcomes,omitempty"`
}

// TableName overrides the table name.
func (Run) TableName() string {
	return "sync_runs"
}

// OutcomeRow is one planned action of a run and its result.
type OutcomeRow struct {
	ID            uint   `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	RunID         string `gorm:"column:run_id;size:36;index" json:"-"`
	Position      int    `gorm:"column:position" json:"position"`
	Action        string `gorm:"column:action;size:16" json:"action"`
	ItemKey       string `gorm:"column:item_key;size:255;index" json:"item_key"`
	MarketplaceID string `gorm:"column:marketplace_id;size:255" json:"marketplace_id,omitempty"`
	Price         string `gorm:"column:price;size:32" json:"price"`
	Stock         int    `gorm:"column:stock" json:"stock"`
	PreviousPrice string `gorm:"column:previous_price;size:32" json:"previous_price"`
	PreviousStock int    `gorm:"column:previous_stock" json:"previous_stock"`
	Status        string `gorm:"column:status;size:16" json:"status"`
	Kind          string `gorm:"column:kind;size:32" json:"kind,omitempty"`
	Reason        string `gorm:"column:reason;type:text" json:"reason,omitempty"`
	DurationMs    int64  `gorm:"column:duration_ms" json:"duration_ms"`
}

// TableName overrides the table name.
func (OutcomeRow) TableName() string {
	return "sync_outcomes"
}

// Models returns every persisted model, for migrations and integrity checks.
func Models() []any {
	return []any{&Run{}, &OutcomeRow{}}
}

// FromReport converts a run report into its persisted form.
func FromReport(r *reconcile.RunReport, feed, marketplace string) *Run {
	run := &Run{
		ID:              r.RunID.String(),
		StartedAt:       r.StartedAt,
		FinishedAt:      r.FinishedAt,
		DryRun:          r.DryRun,
		Feed:            feed,
		Marketplace:     marketplace,
		Total:           r.Summary.Total,
		Creates:         r.Summary.Creates,
		PriceUpdates:    r.Summary.PriceUpdates,
		StockUpdates:    r.Summary.StockUpdates,
		BothUpdates:     r.Summary.BothUpdates,
		NoOps:           r.Summary.NoOps,
		Untouched:       r.Summary.Untouched,
		Rejected:        len(r.Rejected),
		SkippedListings: len(r.SkippedListings),
		Succeeded:       r.Execution.Succeeded,
		Failed:          r.Execution.Failed,
		Conflicts:       r.Execution.Conflicts,
		Cancelled:       r.Execution.Cancelled,
		Complete:        r.Complete(),
		Outcomes:        make([]OutcomeRow, 0, len(r.Plan)),
	}

	for i, a := range r.Plan {
		row := OutcomeRow{
			RunID:         run.ID,
			Position:      i,
			Action:        string(a.Type),
			ItemKey:       string(a.Key),
			MarketplaceID: a.MarketplaceID,
			Price:         a.Price.String(),
			Stock:         a.Stock,
			PreviousPrice: a.PreviousPrice.String(),
			PreviousStock: a.PreviousStock,
			Status:        StatusPlanned,
		}
		if i < len(r.Outcomes) {
			o := r.Outcomes[i]
			row.Status = string(o.Status)
			row.Kind = string(o.Kind)
			row.Reason = o.Reason
			row.DurationMs = o.Duration.Milliseconds()
			if o.MarketplaceID != "" {
				row.MarketplaceID = o.MarketplaceID
			}
		}
		run.Outcomes = append(run.Outcomes, row)
	}
	return run
}
