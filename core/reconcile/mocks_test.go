package reconcile

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// mockMarketplace is a testify mock of Marketplace.
type mockMarketplace struct {
	mock.Mock
}

func (m *mockMarketplace) Name() string {
	return "mock"
}

func (m *mockMarketplace) ListCurrentListings(ctx context.Context) ([]RawListing, error) {
	args := m.Called(ctx)
	if listings, ok := args.Get(0).([]RawListing); ok {
		return listings, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMarketplace) CreateListing(ctx context.Context, record SourceRecord) (string, error) {
	args := m.Called(ctx, record)
	return args.String(0), args.Error(1)
}

func (m *mockMarketplace) UpdatePrice(ctx context.Context, marketplaceID string, price decimal.Decimal) error {
	args := m.Called(ctx, marketplaceID, price)
	return args.Error(0)
}

func (m *mockMarketplace) UpdateStock(ctx context.Context, marketplaceID string, stock int) error {
	args := m.Called(ctx, marketplaceID, stock)
	return args.Error(0)
}

func (m *mockMarketplace) UpdateBoth(ctx context.Context, marketplaceID string, price decimal.Decimal, stock int) error {
	args := m.Called(ctx, marketplaceID, price, stock)
	return args.Error(0)
}

// fakeMarketplace is a small stateful marketplace used for round-trip tests.
type fakeMarketplace struct {
	mu       sync.Mutex
	listings map[string]RawListing
	order    []string
	nextID   int
	calls    int
	failKey  string
}

func newFakeMarketplace(listings ...RawListing) *fakeMarketplace {
	f := &fakeMarketplace{listings: make(map[string]RawListing)}
	for _, l := range listings {
		f.listings[l.MarketplaceID] = l
		f.order = append(f.order, l.MarketplaceID)
	}
	return f
}

func (f *fakeMarketplace) Name() string {
	return "fake"
}

func (f *fakeMarketplace) ListCurrentListings(ctx context.Context) ([]RawListing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RawListing, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.listings[id])
	}
	return out, nil
}

func (f *fakeMarketplace) CreateListing(ctx context.Context, record SourceRecord) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if string(record.Key) == f.failKey {
		return "", fmt.Errorf("%w: rejected %s", ErrClientFailure, record.Key)
	}
	for _, l := range f.listings {
		if l.Key == string(record.Key) {
			return "", fmt.Errorf("%w: %s", ErrCreateConflict, record.Key)
		}
	}
	f.nextID++
	id := fmt.Sprintf("mp-%d", f.nextID)
	f.listings[id] = RawListing{MarketplaceID: id, Key: string(record.Key), Price: record.Price.String(), Stock: record.Stock}
	f.order = append(f.order, id)
	return id, nil
}

func (f *fakeMarketplace) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error {
	return f.update(id, &price, nil)
}

func (f *fakeMarketplace) UpdateStock(ctx context.Context, id string, stock int) error {
	return f.update(id, nil, &stock)
}

func (f *fakeMarketplace) UpdateBoth(ctx context.Context, id string, price decimal.Decimal, stock int) error {
	return f.update(id, &price, &stock)
}

func (f *fakeMarketplace) update(id string, price *decimal.Decimal, stock *int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	l, ok := f.listings[id]
	if !ok {
		return fmt.Errorf("%w: unknown listing %s", ErrClientFailure, id)
	}
	if l.Key == f.failKey {
		return fmt.Errorf("%w: rejected %s", ErrClientFailure, l.Key)
	}
	if price != nil {
		l.Price = price.String()
	}
	if stock != nil {
		l.Stock = *stock
	}
	f.listings[id] = l
	return nil
}

// staticFeed is a FeedSource returning fixed rows.
type staticFeed struct {
	rows []RawRow
	err  error
}

func (s staticFeed) Name() string {
	return "static"
}

func (s staticFeed) Fetch(ctx context.Context) ([]RawRow, error) {
	return s.rows, s.err
}
