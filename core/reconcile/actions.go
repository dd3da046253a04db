package reconcile

import "fmt"

// NewCreate plans publishing a record that has no listing yet.
func NewCreate(r SourceRecord) Action {
	rec := r
	return Action{
		Type:   ActionCreate,
		Key:    r.Key,
		Price:  r.Price,
		Stock:  r.Stock,
		Record: &rec,
		Reason: "missing on marketplace",
	}
}

// NewUpdatePrice plans a price change on an existing listing.
func NewUpdatePrice(m MarketplaceRecord, r SourceRecord) Action {
	return Action{
		Type:          ActionUpdatePrice,
		Key:           r.Key,
		MarketplaceID: m.MarketplaceID,
		Price:         r.Price,
		Stock:         m.Stock,
		PreviousPrice: m.Price,
		PreviousStock: m.Stock,
		Reason:        fmt.Sprintf("price %s -> %s", m.Price, r.Price),
	}
}

// NewUpdateStock plans a stock change on an existing listing.
func NewUpdateStock(m MarketplaceRecord, r SourceRecord) Action {
	return Action{
		Type:          ActionUpdateStock,
		Key:           r.Key,
		MarketplaceID: m.MarketplaceID,
		Price:         m.Price,
		Stock:         r.Stock,
		PreviousPrice: m.Price,
		PreviousStock: m.Stock,
		Reason:        fmt.Sprintf("stock %d -> %d", m.Stock, r.Stock),
	}
}

// NewUpdateBoth plans a price and stock change on an existing listing.
func NewUpdateBoth(m MarketplaceRecord, r SourceRecord) Action {
	return Action{
		Type:          ActionUpdateBoth,
		Key:           r.Key,
		MarketplaceID: m.MarketplaceID,
		Price:         r.Price,
		Stock:         r.Stock,
		PreviousPrice: m.Price,
		PreviousStock: m.Stock,
		Reason:        fmt.Sprintf("price %s -> %s, stock %d -> %d", m.Price, r.Price, m.Stock, r.Stock),
	}
}

// NewNoOp records an item whose listing already matches the feed.
func NewNoOp(m MarketplaceRecord) Action {
	return Action{
		Type:          ActionNoOp,
		Key:           m.Key,
		MarketplaceID: m.MarketplaceID,
		Price:         m.Price,
		Stock:         m.Stock,
		PreviousPrice: m.Price,
		PreviousStock: m.Stock,
		Reason:        "in sync",
	}
}
