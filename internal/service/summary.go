package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"motorchat/internal/model"
)

// topPriceBands caps the number of retained price buckets.
const topPriceBands = 10

// Summarize compresses the effective result set into an AggregateSummary.
// Total, group-bys and the year span are exact over the whole set; price
// bands are aggregated from a recency-prefix sample of at most sampleCap
// records, so their counts are advisory on large inventories.
func Summarize(ctx context.Context, inv Inventory, f *model.FilterSet, sampleCap int, bandWidth int64) (*model.AggregateSummary, error) {
	total, err := inv.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	byBody, err := inv.CountByBodyType(ctx, f)
	if err != nil {
		return nil, err
	}
	byFuel, err := inv.CountByFuel(ctx, f)
	if err != nil {
		return nil, err
	}
	yearMin, yearMax, err := inv.YearSpan(ctx, f)
	if err != nil {
		return nil, err
	}
	prices, err := inv.SamplePrices(ctx, f, sampleCap)
	if err != nil {
		return nil, err
	}

	return &model.AggregateSummary{
		Total:         total,
		ByBody:        byBody,
		ByFuel:        byFuel,
		YearMin:       yearMin,
		YearMax:       yearMax,
		TopPriceBands: priceBands(prices, bandWidth),
	}, nil
}

// priceBands buckets prices into fixed-width bands labeled "[low, high]" and
// keeps the most frequent ones, ties broken by first encounter in the
// sample.
func priceBands(prices []decimal.Decimal, width int64) []model.PriceBand {
	if width <= 0 || len(prices) == 0 {
		return []model.PriceBand{}
	}

	counts := map[int64]int{}
	order := []int64{}
	for _, p := range prices {
		low := (p.IntPart() / width) * width
		if _, seen := counts[low]; !seen {
			order = append(order, low)
		}
		counts[low]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > topPriceBands {
		order = order[:topPriceBands]
	}

	bands := make([]model.PriceBand, 0, len(order))
	for _, low := range order {
		bands = append(bands, model.PriceBand{
			Label: fmt.Sprintf("[%d, %d]", low, low+width-1),
			Count: counts[low],
		})
	}
	return bands
}
