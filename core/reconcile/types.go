package reconcile

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemKey identifies a product on both the feed and the marketplace.
// Always build it through DeriveKey so both sides match.
type ItemKey string

// SourceRecord is the canonical form of one feed row.
type SourceRecord struct {
	// Key is the derived item key.
	Key ItemKey `json:"key"`

	// Name is the product name as published in the feed.
	Name string `json:"name"`

	// Price is the non-negative selling price.
	Price decimal.Decimal `json:"price"`

	// Stock is the non-negative quantity available.
	Stock int `json:"stock"`

	// FetchedAt is the time the feed was fetched for this run.
	FetchedAt time.Time `json:"fetched_at"`
}

// MarketplaceRecord is the canonical form of one published listing.
type MarketplaceRecord struct {
	// Key is the derived item key.
	Key ItemKey `json:"key"`

	// MarketplaceID is the opaque listing identifier assigned by the marketplace.
	MarketplaceID string `json:"marketplace_id"`

	// Price is the currently published price.
	Price decimal.Decimal `json:"price"`

	// Stock is the currently published quantity.
	Stock int `json:"stock"`
}

// RawRow is a feed row before normalization.
// Price and Stock may hold strings or numbers depending on the feed format.
type RawRow struct {
	// Line is the position of the row in the feed (1-based), used in error reports.
	Line int

	// Key is the SKU / offer id cell. When empty, Name is used to derive the key.
	Key string

	// Name is the product name cell.
	Name string

	// Price is the raw price cell.
	Price any

	// Stock is the raw stock cell.
	Stock any
}

// RawListing is a marketplace listing before normalization.
type RawListing struct {
	// MarketplaceID is the listing identifier.
	MarketplaceID string

	// Key is the SKU / offer id the listing was published under.
	Key string

	// Price is the raw published price.
	Price any

	// Stock is the raw published stock.
	Stock any
}

// ActionType represents the type of a planned action.
type ActionType string

const (
	// ActionCreate publishes a new listing.
	ActionCreate ActionType = "create"
	// ActionUpdatePrice changes the price of an existing listing.
	ActionUpdatePrice ActionType = "update_price"
	// ActionUpdateStock changes the stock of an existing listing.
	ActionUpdateStock ActionType = "update_stock"
	// ActionUpdateBoth changes price and stock of an existing listing.
	ActionUpdateBoth ActionType = "update_both"
	// ActionNoOp records that an item is already in sync.
	ActionNoOp ActionType = "noop"
)

// Action is one planned step of a sync run.
// Only the fields relevant to Type are populated; use the New* constructors.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the item the action applies to.
	Key ItemKey `json:"key"`

	// MarketplaceID is the target listing. Empty for creates.
	MarketplaceID string `json:"marketplace_id,omitempty"`

	// Price is the new price for create, update_price and update_both.
	Price decimal.Decimal `json:"price"`

	// Stock is the new stock for create, update_stock and update_both.
	Stock int `json:"stock"`

	// Record is the source record to publish. Only populated for creates.
	Record *SourceRecord `json:"record,omitempty"`

	// PreviousPrice is the published price before the action.
	PreviousPrice decimal.Decimal `json:"previous_price"`

	// PreviousStock is the published stock before the action.
	PreviousStock int `json:"previous_stock"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`
}

// IsUpdate reports whether the action modifies an existing listing.
func (a Action) IsUpdate() bool {
	switch a.Type {
	case ActionUpdatePrice, ActionUpdateStock, ActionUpdateBoth:
		return true
	default:
		return false
	}
}

// OutcomeStatus is the result of executing one action.
type OutcomeStatus string

const (
	StatusSuccess OutcomeStatus = "success"
	StatusFailure OutcomeStatus = "failure"
)

// FailureKind classifies failed outcomes.
type FailureKind string

const (
	KindNone           FailureKind = ""
	KindCreateConflict FailureKind = "create_conflict"
	KindClientFailure  FailureKind = "client_failure"
	KindCancelled      FailureKind = "cancelled"
)

// Outcome records the result of one planned action.
type Outcome struct {
	// Action is the executed action.
	Action Action `json:"action"`

	// Status is success or failure.
	Status OutcomeStatus `json:"status"`

	// Kind classifies the failure. Empty on success.
	Kind FailureKind `json:"kind,omitempty"`

	// Reason holds the failure message. Empty on success.
	Reason string `json:"reason,omitempty"`

	// MarketplaceID is the id returned by a create, also kept when the create fails after the
	// listing was made.
	MarketplaceID string `json:"marketplace_id,omitempty"`

	// Duration is the time spent on the marketplace call.
	Duration time.Duration `json:"duration"`
}

// Succeeded reports whether the outcome is a success.
func (o Outcome) Succeeded() bool {
	return o.Status == StatusSuccess
}

// PlanSummary provides aggregate counts for a plan.
type PlanSummary struct {
	// Total is the number of planned actions (one per feed item).
	Total int `json:"total"`

	// Creates counts create actions.
	Creates int `json:"creates"`

	// PriceUpdates counts update_price actions.
	PriceUpdates int `json:"price_updates"`

	// StockUpdates counts update_stock actions.
	StockUpdates int `json:"stock_updates"`

	// BothUpdates counts update_both actions.
	BothUpdates int `json:"both_updates"`

	// NoOps counts items already in sync.
	NoOps int `json:"noops"`

	// Untouched counts listings that exist on the marketplace but not in the feed.
	Untouched int `json:"untouched"`
}

// Mutations returns the number of actions that require a marketplace call.
func (s PlanSummary) Mutations() int {
	return s.Creates + s.PriceUpdates + s.StockUpdates + s.BothUpdates
}

// ExecutionSummary provides aggregate counts for executed outcomes.
type ExecutionSummary struct {
	// Succeeded counts successful outcomes, including no-ops.
	Succeeded int `json:"succeeded"`

	// Failed counts failed outcomes.
	Failed int `json:"failed"`

	// Conflicts counts create conflicts.
	Conflicts int `json:"conflicts"`

	// Cancelled counts actions skipped after the run was cancelled.
	Cancelled int `json:"cancelled"`
}

// RunReport is the externally observable result of one sync run.
type RunReport struct {
	// RunID uniquely identifies the run.
	RunID uuid.UUID `json:"run_id"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the run ended.
	FinishedAt time.Time `json:"finished_at"`

	// DryRun is true when the plan was not executed.
	DryRun bool `json:"dry_run"`

	// Plan is the ordered list of planned actions.
	Plan []Action `json:"plan"`

	// Outcomes holds one entry per planned action. Empty for dry runs.
	Outcomes []Outcome `json:"outcomes"`

	// Rejected lists feed rows that failed normalization.
	Rejected []MalformedRecordError `json:"rejected"`

	// SkippedListings lists marketplace listings that could not be read.
	SkippedListings []MalformedRecordError `json:"skipped_listings"`

	// Summary aggregates the plan.
	Summary PlanSummary `json:"summary"`

	// Execution aggregates the outcomes.
	Execution ExecutionSummary `json:"execution"`
}

// Complete reports whether every planned action was executed successfully.
func (r *RunReport) Complete() bool {
	if r.DryRun || len(r.Outcomes) != len(r.Plan) {
		return false
	}
	return r.Execution.Failed == 0
}
