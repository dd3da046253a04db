package reconcile

import (
	"context"

	"github.com/shopspring/decimal"
)

// FeedSource supplies the raw feed rows for one run.
// Download and file layout are the implementation's concern.
type FeedSource interface {
	// Name returns a short description of the source for logs (e.g. "storage:feeds/stock.csv").
	Name() string

	// Fetch downloads and decodes the feed.
	Fetch(ctx context.Context) ([]RawRow, error)
}

// Marketplace is the narrow client the engine needs from a marketplace.
// Authentication, rate limiting and retries live in the implementation.
type Marketplace interface {
	// Name returns the marketplace name for logs (e.g. "ozon").
	Name() string

	// ListCurrentListings returns every listing currently published.
	ListCurrentListings(ctx context.Context) ([]RawListing, error)

	// CreateListing publishes a new listing and returns its marketplace id.
	// Implementations wrap ErrCreateConflict when the key already exists.
	CreateListing(ctx context.Context, record SourceRecord) (string, error)

	// UpdatePrice changes the price of a listing.
	UpdatePrice(ctx context.Context, marketplaceID string, price decimal.Decimal) error

	// UpdateStock changes the stock of a listing.
	UpdateStock(ctx context.Context, marketplaceID string, stock int) error

	// UpdateBoth changes price and stock of a listing.
	UpdateBoth(ctx context.Context, marketplaceID string, price decimal.Decimal, stock int) error
}
