package service

import (
	"context"

	"motorchat/internal/model"
)

// SearchOutcome carries both sides of the relaxation policy: TotalMatches is
// the pre-relaxation count (0 when relaxation fired), Items and Effective
// describe the result set actually shown.
type SearchOutcome struct {
	Items        []model.Vehicle
	TotalMatches int
	Effective    *model.FilterSet // nil when relaxation discarded the filters
	Relaxed      bool
}

// executeSearch runs the translated query ordered by recency and applies the
// relaxation policy: when the filters match nothing but the store has stock,
// every predicate is discarded and the recent catalog is returned instead.
// An over-specific extraction must never present an empty experience while
// inventory exists.
func executeSearch(ctx context.Context, inv Inventory, f *model.FilterSet, limit int) (*SearchOutcome, error) {
	total, err := inv.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	if total > 0 {
		items, err := inv.Search(ctx, f, limit)
		if err != nil {
			return nil, err
		}
		return &SearchOutcome{Items: items, TotalMatches: total, Effective: f}, nil
	}

	stock, err := inv.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	if stock == 0 {
		return &SearchOutcome{Items: []model.Vehicle{}, TotalMatches: 0, Effective: f}, nil
	}

	items, err := inv.Search(ctx, nil, limit)
	if err != nil {
		return nil, err
	}
	return &SearchOutcome{Items: items, TotalMatches: 0, Effective: nil, Relaxed: true}, nil
}
