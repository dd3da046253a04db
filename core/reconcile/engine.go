package reconcile

// Reconcile diffs the feed against the marketplace snapshot and returns the ordered plan.
//
// Every feed key yields exactly one action. Listings absent from the feed yield none:
// the marketplace may carry items beyond this feed's authority.
// All creates come first, then updates and no-ops, each group in feed order.
func Reconcile(source *SourceSet, current *MarketplaceSet) []Action {
	if source == nil {
		return []Action{}
	}

	creates := make([]Action, 0)
	rest := make([]Action, 0, source.Len())

	for _, key := range source.order {
		src := source.records[key]

		listing, exists := current.Get(key)
		if !exists {
			creates = append(creates, NewCreate(src))
			continue
		}

		rest = append(rest, diff(listing, src))
	}

	return append(creates, rest...)
}

// diff decides the action for a key present on both sides.
// Equality is exact: prices and stock are discrete business values.
func diff(m MarketplaceRecord, r SourceRecord) Action {
	priceChanged := !r.Price.Equal(m.Price)
	stockChanged := r.Stock != m.Stock

	switch {
	case priceChanged && stockChanged:
		return NewUpdateBoth(m, r)
	case priceChanged:
		return NewUpdatePrice(m, r)
	case stockChanged:
		return NewUpdateStock(m, r)
	default:
		return NewNoOp(m)
	}
}

// Summarize counts the actions of a plan. Untouched is filled from current when given.
func Summarize(plan []Action, source *SourceSet, current *MarketplaceSet) PlanSummary {
	summary := PlanSummary{Total: len(plan)}

	for _, a := range plan {
		switch a.Type {
		case ActionCreate:
			summary.Creates++
		case ActionUpdatePrice:
			summary.PriceUpdates++
		case ActionUpdateStock:
			summary.StockUpdates++
		case ActionUpdateBoth:
			summary.BothUpdates++
		case ActionNoOp:
			summary.NoOps++
		}
	}

	if current != nil && source != nil {
		for key := range current.records {
			if _, ok := source.records[key]; !ok {
				summary.Untouched++
			}
		}
	}

	return summary
}
