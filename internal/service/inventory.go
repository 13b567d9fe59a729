package service

import (
	"context"

	"github.com/shopspring/decimal"

	"motorchat/internal/model"
)

// Inventory is the read-side query capability this service requires from the
// vehicle store: conjunctive filtering, counting, group-by-with-count,
// min/max aggregation and recency ordering. A nil FilterSet means
// unfiltered. Consistency is the store's concern; no transactions are opened
// here.
type Inventory interface {
	Search(ctx context.Context, f *model.FilterSet, limit int) ([]model.Vehicle, error)
	Count(ctx context.Context, f *model.FilterSet) (int, error)
	CountByBodyType(ctx context.Context, f *model.FilterSet) ([]model.CategoryCount, error)
	CountByFuel(ctx context.Context, f *model.FilterSet) ([]model.CategoryCount, error)
	YearSpan(ctx context.Context, f *model.FilterSet) (int, int, error)
	SamplePrices(ctx context.Context, f *model.FilterSet, limit int) ([]decimal.Decimal, error)
}
