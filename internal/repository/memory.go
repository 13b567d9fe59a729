package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"motorchat/internal/model"
)

// MemoryInventory is an in-memory vehicle store with the same query
// semantics as the Postgres repository: case-insensitive categorical
// matches, inclusive ranges, recency ordering. Tests and the seeder's
// dry-run mode use it in place of a database.
type MemoryInventory struct {
	mu       sync.RWMutex
	vehicles []model.Vehicle
	nextID   int64
}

// NewMemoryInventory creates an empty in-memory store.
func NewMemoryInventory() *MemoryInventory {
	return &MemoryInventory{nextID: 1}
}

// Insert stores a vehicle, assigning its ID and, when unset, its creation
// timestamp.
func (m *MemoryInventory) Insert(_ context.Context, v *model.Vehicle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v.ID = m.nextID
	m.nextID++
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	m.vehicles = append(m.vehicles, *v)
	return nil
}

// matchesFilters applies the FilterSet as a conjunction of predicates. The
// predicates mirror the SQL translation: ILIKE-style equality for
// categories, <= for the price ceiling, >= for the minimum year, a closed
// interval for the year range, exact match for doors.
func matchesFilters(v *model.Vehicle, f *model.FilterSet) bool {
	if f == nil {
		return true
	}
	if f.BodyType != nil && !strings.EqualFold(v.BodyType, *f.BodyType) {
		return false
	}
	if f.Transmission != nil && !strings.EqualFold(v.Transmission, *f.Transmission) {
		return false
	}
	if f.Fuel != nil && !strings.EqualFold(v.FuelType, *f.Fuel) {
		return false
	}
	if f.PriceMax != nil && v.Price.GreaterThan(*f.PriceMax) {
		return false
	}
	if f.YearMin != nil && v.Year < *f.YearMin {
		return false
	}
	if f.YearRange != nil && (v.Year < f.YearRange[0] || v.Year > f.YearRange[1]) {
		return false
	}
	if f.Doors != nil && v.Doors != *f.Doors {
		return false
	}
	return true
}

// filtered returns matching vehicles newest first; later insertions win ties.
func (m *MemoryInventory) filtered(f *model.FilterSet) []model.Vehicle {
	out := make([]model.Vehicle, 0, len(m.vehicles))
	for i := len(m.vehicles) - 1; i >= 0; i-- {
		v := m.vehicles[i]
		if matchesFilters(&v, f) {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Search returns the filtered vehicles ordered by recency, newest first.
func (m *MemoryInventory) Search(_ context.Context, f *model.FilterSet, limit int) ([]model.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := m.filtered(f)
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Count returns the exact number of vehicles matching the filters.
func (m *MemoryInventory) Count(_ context.Context, f *model.FilterSet) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.filtered(f)), nil
}

// CountByBodyType groups the filtered vehicles by body type, most frequent
// first, ties by category name.
func (m *MemoryInventory) CountByBodyType(ctx context.Context, f *model.FilterSet) ([]model.CategoryCount, error) {
	return m.groupCount(f, func(v *model.Vehicle) string { return v.BodyType })
}

// CountByFuel groups the filtered vehicles by fuel type, most frequent first.
func (m *MemoryInventory) CountByFuel(ctx context.Context, f *model.FilterSet) ([]model.CategoryCount, error) {
	return m.groupCount(f, func(v *model.Vehicle) string { return v.FuelType })
}

func (m *MemoryInventory) groupCount(f *model.FilterSet, key func(*model.Vehicle) string) ([]model.CategoryCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := map[string]int{}
	for _, v := range m.filtered(f) {
		counts[key(&v)]++
	}

	out := make([]model.CategoryCount, 0, len(counts))
	for category, count := range counts {
		out = append(out, model.CategoryCount{Category: category, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

// YearSpan returns the min and max model year over the filtered vehicles,
// (0, 0) when nothing matches.
func (m *MemoryInventory) YearSpan(_ context.Context, f *model.FilterSet) (int, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	min, max := 0, 0
	for _, v := range m.filtered(f) {
		if min == 0 || v.Year < min {
			min = v.Year
		}
		if v.Year > max {
			max = v.Year
		}
	}
	return min, max, nil
}

// SamplePrices returns up to limit prices in recency order.
func (m *MemoryInventory) SamplePrices(_ context.Context, f *model.FilterSet, limit int) ([]decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []decimal.Decimal{}
	for _, v := range m.filtered(f) {
		if len(out) == limit {
			break
		}
		out = append(out, v.Price)
	}
	return out, nil
}

// List returns a page of vehicles ordered by recency plus the total count.
func (m *MemoryInventory) List(_ context.Context, limit, offset int) ([]model.Vehicle, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.filtered(nil)
	total := len(all)
	if offset >= len(all) {
		return []model.Vehicle{}, total, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

// GetByVIN retrieves a single vehicle, nil when absent.
func (m *MemoryInventory) GetByVIN(_ context.Context, vin string) (*model.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.vehicles {
		if m.vehicles[i].VIN == vin {
			v := m.vehicles[i]
			return &v, nil
		}
	}
	return nil, nil
}

// VINExists reports whether a vehicle with the given VIN is already stored.
func (m *MemoryInventory) VINExists(ctx context.Context, vin string) (bool, error) {
	v, err := m.GetByVIN(ctx, vin)
	return v != nil, err
}

// Wipe deletes every vehicle.
func (m *MemoryInventory) Wipe(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.vehicles = nil
	return nil
}
