package reconcile

import (
	"strings"
	"time"

	"catalog-sync/core/utils"

	"golang.org/x/text/unicode/norm"
)

// DeriveKey builds an ItemKey from a raw SKU or name.
// The same function is applied to feed rows and marketplace listings so both sides match.
// Returns an empty key when nothing usable remains.
func DeriveKey(raw string) ItemKey {
	s := norm.NFC.String(raw)
	return ItemKey(strings.Join(strings.Fields(s), " "))
}

// NormalizeOptions controls feed-specific conversions applied during normalization.
type NormalizeOptions struct {
	// OverflowStock is the stock published for overflow markers such as ">10".
	OverflowStock int

	// ReserveStock publishes counts at or below this value as zero.
	ReserveStock int

	// TruncatePrice drops the fractional part of prices.
	TruncatePrice bool

	// FetchedAt stamps every record. Defaults to time.Now().
	FetchedAt time.Time
}

// DefaultNormalizeOptions returns the options used when none are configured.
func DefaultNormalizeOptions() NormalizeOptions {
	return NormalizeOptions{OverflowStock: 100}
}

// SourceSet is the normalized feed: records by key plus feed insertion order.
type SourceSet struct {
	records map[ItemKey]SourceRecord
	order   []ItemKey
}

// NewSourceSet builds a SourceSet from records in the given order. Later duplicates win.
func NewSourceSet(records ...SourceRecord) *SourceSet {
	set := &SourceSet{records: make(map[ItemKey]SourceRecord, len(records))}
	for _, r := range records {
		set.put(r)
	}
	return set
}

func (s *SourceSet) put(r SourceRecord) {
	if _, exists := s.records[r.Key]; !exists {
		s.order = append(s.order, r.Key)
	}
	s.records[r.Key] = r
}

// Get returns the record for key.
func (s *SourceSet) Get(key ItemKey) (SourceRecord, bool) {
	r, ok := s.records[key]
	return r, ok
}

// Keys returns the keys in feed order.
func (s *SourceSet) Keys() []ItemKey {
	keys := make([]ItemKey, len(s.order))
	copy(keys, s.order)
	return keys
}

// Len returns the number of records.
func (s *SourceSet) Len() int {
	return len(s.order)
}

// Normalize converts raw feed rows into a SourceSet.
// Rows without a derivable key, a non-negative price or a non-negative integer stock are
// skipped and returned as MalformedRecordErrors. Duplicate keys: the last occurrence wins.
func Normalize(rows []RawRow, opts NormalizeOptions) (*SourceSet, []MalformedRecordError) {
	fetchedAt := opts.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	set := &SourceSet{records: make(map[ItemKey]SourceRecord, len(rows))}
	var rejected []MalformedRecordError

	for i, row := range rows {
		line := row.Line
		if line == 0 {
			line = i + 1
		}

		raw := row.Key
		if strings.TrimSpace(raw) == "" {
			raw = row.Name
		}
		key := DeriveKey(raw)
		if key == "" {
			rejected = append(rejected, MalformedRecordError{Line: line, Field: "key", Reason: "no key or name"})
			continue
		}

		price, err := utils.ToDecimal(row.Price, opts.TruncatePrice)
		if err != nil {
			rejected = append(rejected, MalformedRecordError{Line: line, Key: string(key), Field: "price", Reason: err.Error()})
			continue
		}

		stock, err := utils.ToStock(row.Stock, opts.OverflowStock)
		if err != nil {
			rejected = append(rejected, MalformedRecordError{Line: line, Key: string(key), Field: "stock", Reason: err.Error()})
			continue
		}
		if stock <= opts.ReserveStock {
			stock = 0
		}

		name := strings.TrimSpace(row.Name)
		if name == "" {
			name = string(key)
		}

		set.put(SourceRecord{
			Key:       key,
			Name:      name,
			Price:     price,
			Stock:     stock,
			FetchedAt: fetchedAt,
		})
	}

	return set, rejected
}
