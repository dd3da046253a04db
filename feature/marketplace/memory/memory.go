// Package memory implements an in-process marketplace.
package memory

import (
	"context"
	"fmt"
	"sync"

	"catalog-sync/core/reconcile"

	"github.com/shopspring/decimal"
)

// Listing is one published listing.
type Listing struct {
	ID    string
	Key   string
	Name  string
	Price decimal.Decimal
	Stock int
}

// Marketplace keeps listings in memory. It is safe for concurrent use.
type Marketplace struct {
	mu       sync.Mutex
	listings map[string]*Listing
	byKey    map[string]string
	order    []string
	nextID   int
	calls    int
}

// New returns an empty marketplace.
func New() *Marketplace {
	return &Marketplace{
		listings: make(map[string]*Listing),
		byKey:    make(map[string]string),
	}
}

// Name returns "memory".
func (m *Marketplace) Name() string {
	return "memory"
}

// Seed publishes a listing without counting it as a call.
func (m *Marketplace) Seed(key, name string, price decimal.Decimal, stock int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.add(key, name, price, stock)
}

func (m *Marketplace) add(key, name string, price decimal.Decimal, stock int) string {
	m.nextID++
	id := fmt.Sprintf("mem-%d", m.nextID)
	m.listings[id] = &Listing{ID: id, Key: key, Name: name, Price: price, Stock: stock}
	m.byKey[key] = id
	m.order = append(m.order, id)
	return id
}

// Listings returns a copy of every listing in publication order.
func (m *Marketplace) Listings() []Listing {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Listing, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.listings[id])
	}
	return out
}

// Calls returns the number of mutating calls received.
func (m *Marketplace) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// ListCurrentListings returns every listing.
func (m *Marketplace) ListCurrentListings(ctx context.Context) ([]reconcile.RawListing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]reconcile.RawListing, 0, len(m.order))
	for _, id := range m.order {
		l := m.listings[id]
		out = append(out, reconcile.RawListing{
			MarketplaceID: l.ID,
			Key:           l.Key,
			Price:         l.Price.String(),
			Stock:         l.Stock,
		})
	}
	return out, nil
}

// CreateListing publishes record. It fails with ErrCreateConflict when the key exists.
func (m *Marketplace) CreateListing(ctx context.Context, record reconcile.SourceRecord) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	key := string(record.Key)
	if id, ok := m.byKey[key]; ok {
		return "", fmt.Errorf("%w: %s is listed as %s", reconcile.ErrCreateConflict, key, id)
	}
	return m.add(key, record.Name, record.Price, record.Stock), nil
}

// UpdatePrice changes the price of a listing.
func (m *Marketplace) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error {
	return m.update(ctx, id, func(l *Listing) { l.Price = price })
}

// UpdateStock changes the stock of a listing.
func (m *Marketplace) UpdateStock(ctx context.Context, id string, stock int) error {
	return m.update(ctx, id, func(l *Listing) { l.Stock = stock })
}

// UpdateBoth changes price and stock of a listing.
func (m *Marketplace) UpdateBoth(ctx context.Context, id string, price decimal.Decimal, stock int) error {
	return m.update(ctx, id, func(l *Listing) {
		l.Price = price
		l.Stock = stock
	})
}

func (m *Marketplace) update(ctx context.Context, id string, apply func(*Listing)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	l, ok := m.listings[id]
	if !ok {
		return fmt.Errorf("%w: listing %s not found", reconcile.ErrClientFailure, id)
	}
	apply(l)
	return nil
}
