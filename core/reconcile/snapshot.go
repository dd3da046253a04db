package reconcile

import (
	"strings"

	"catalog-sync/core/utils"
)

// MarketplaceSet is the marketplace state captured once per run, indexed by key.
type MarketplaceSet struct {
	records map[ItemKey]MarketplaceRecord
}

// NewMarketplaceSet builds a MarketplaceSet from records. Later duplicates win.
func NewMarketplaceSet(records ...MarketplaceRecord) *MarketplaceSet {
	set := &MarketplaceSet{records: make(map[ItemKey]MarketplaceRecord, len(records))}
	for _, r := range records {
		set.records[r.Key] = r
	}
	return set
}

// Get returns the listing for key.
func (m *MarketplaceSet) Get(key ItemKey) (MarketplaceRecord, bool) {
	if m == nil {
		return MarketplaceRecord{}, false
	}
	r, ok := m.records[key]
	return r, ok
}

// Len returns the number of listings.
func (m *MarketplaceSet) Len() int {
	if m == nil {
		return 0
	}
	return len(m.records)
}

// Records returns a copy of the underlying index.
func (m *MarketplaceSet) Records() map[ItemKey]MarketplaceRecord {
	out := make(map[ItemKey]MarketplaceRecord, m.Len())
	if m == nil {
		return out
	}
	for k, v := range m.records {
		out[k] = v
	}
	return out
}

// Snapshot converts marketplace listings into a MarketplaceSet.
// Unreadable listings are skipped so their key counts as absent; a duplicate create is
// then surfaced as a create conflict instead of the item silently never updating.
func Snapshot(listings []RawListing) (*MarketplaceSet, []MalformedRecordError) {
	set := &MarketplaceSet{records: make(map[ItemKey]MarketplaceRecord, len(listings))}
	var skipped []MalformedRecordError

	for i, l := range listings {
		line := i + 1
		key := DeriveKey(l.Key)
		if key == "" {
			skipped = append(skipped, MalformedRecordError{Line: line, Field: "key", Reason: "listing has no key"})
			continue
		}
		if strings.TrimSpace(l.MarketplaceID) == "" {
			skipped = append(skipped, MalformedRecordError{Line: line, Key: string(key), Field: "marketplace_id", Reason: "listing has no id"})
			continue
		}

		price, err := utils.ToDecimal(l.Price, false)
		if err != nil {
			skipped = append(skipped, MalformedRecordError{Line: line, Key: string(key), Field: "price", Reason: err.Error()})
			continue
		}

		// Listings never carry overflow markers; a marker here is treated as unreadable.
		stock, err := utils.ToStock(l.Stock, -1)
		if err != nil || stock < 0 {
			reason := "overflow marker in listing"
			if err != nil {
				reason = err.Error()
			}
			skipped = append(skipped, MalformedRecordError{Line: line, Key: string(key), Field: "stock", Reason: reason})
			continue
		}

		set.records[key] = MarketplaceRecord{
			Key:           key,
			MarketplaceID: l.MarketplaceID,
			Price:         price,
			Stock:         stock,
		}
	}

	return set, skipped
}
