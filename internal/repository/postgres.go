package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	"motorchat/internal/model"
)

const vehicleColumns = "id, brand, model, year, engine, fuel_type, color, mileage_km, doors, transmission, body_type, price, vin, created_at"

const schema = `
CREATE TABLE IF NOT EXISTS vehicles (
	id           BIGSERIAL PRIMARY KEY,
	brand        TEXT NOT NULL,
	model        TEXT NOT NULL,
	year         INT NOT NULL,
	engine       TEXT NOT NULL DEFAULT '',
	fuel_type    TEXT NOT NULL,
	color        TEXT NOT NULL DEFAULT '',
	mileage_km   INT NOT NULL DEFAULT 0,
	doors        SMALLINT NOT NULL DEFAULT 4,
	transmission TEXT NOT NULL,
	body_type    TEXT NOT NULL,
	price        NUMERIC(12,2) NOT NULL,
	vin          VARCHAR(32) NOT NULL UNIQUE,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_vehicles_created_at ON vehicles (created_at DESC);
`

// PostgresRepository is the vehicle inventory store.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// EnsureSchema creates the vehicles table and indexes if missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// buildPredicates translates a FilterSet into a conjunctive WHERE clause.
// Each set dimension contributes exactly one predicate; a nil FilterSet (or
// one with no dimensions set) matches everything. The conjunction is
// commutative, so predicate order never changes the result set.
func buildPredicates(f *model.FilterSet) (string, []interface{}) {
	clauses := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if f != nil {
		if f.BodyType != nil {
			clauses = append(clauses, fmt.Sprintf("body_type ILIKE $%d", argIndex))
			args = append(args, *f.BodyType)
			argIndex++
		}
		if f.Transmission != nil {
			clauses = append(clauses, fmt.Sprintf("transmission ILIKE $%d", argIndex))
			args = append(args, *f.Transmission)
			argIndex++
		}
		if f.Fuel != nil {
			clauses = append(clauses, fmt.Sprintf("fuel_type ILIKE $%d", argIndex))
			args = append(args, *f.Fuel)
			argIndex++
		}
		if f.PriceMax != nil {
			clauses = append(clauses, fmt.Sprintf("price <= $%d", argIndex))
			args = append(args, *f.PriceMax)
			argIndex++
		}
		if f.YearMin != nil {
			clauses = append(clauses, fmt.Sprintf("year >= $%d", argIndex))
			args = append(args, *f.YearMin)
			argIndex++
		}
		if f.YearRange != nil {
			clauses = append(clauses, fmt.Sprintf("year >= $%d", argIndex))
			args = append(args, f.YearRange[0])
			argIndex++
			clauses = append(clauses, fmt.Sprintf("year <= $%d", argIndex))
			args = append(args, f.YearRange[1])
			argIndex++
		}
		if f.Doors != nil {
			clauses = append(clauses, fmt.Sprintf("doors = $%d", argIndex))
			args = append(args, *f.Doors)
			argIndex++
		}
	}

	return strings.Join(clauses, " AND "), args
}

// Search returns the filtered vehicles ordered by recency, newest first.
func (r *PostgresRepository) Search(ctx context.Context, f *model.FilterSet, limit int) ([]model.Vehicle, error) {
	where, args := buildPredicates(f)
	query := fmt.Sprintf(
		"SELECT %s FROM vehicles WHERE %s ORDER BY created_at DESC LIMIT $%d",
		vehicleColumns, where, len(args)+1,
	)
	args = append(args, limit)

	vehicles := []model.Vehicle{}
	if err := r.db.SelectContext(ctx, &vehicles, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search vehicles: %w", err)
	}
	return vehicles, nil
}

// Count returns the exact number of vehicles matching the filters.
func (r *PostgresRepository) Count(ctx context.Context, f *model.FilterSet) (int, error) {
	where, args := buildPredicates(f)
	query := fmt.Sprintf("SELECT COUNT(*) FROM vehicles WHERE %s", where)

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count vehicles: %w", err)
	}
	return total, nil
}

// CountByBodyType groups the filtered vehicles by body type, most frequent
// first.
func (r *PostgresRepository) CountByBodyType(ctx context.Context, f *model.FilterSet) ([]model.CategoryCount, error) {
	return r.groupCount(ctx, f, "body_type")
}

// CountByFuel groups the filtered vehicles by fuel type, most frequent first.
func (r *PostgresRepository) CountByFuel(ctx context.Context, f *model.FilterSet) ([]model.CategoryCount, error) {
	return r.groupCount(ctx, f, "fuel_type")
}

func (r *PostgresRepository) groupCount(ctx context.Context, f *model.FilterSet, column string) ([]model.CategoryCount, error) {
	where, args := buildPredicates(f)
	query := fmt.Sprintf(
		"SELECT %s AS category, COUNT(*) AS count FROM vehicles WHERE %s GROUP BY %s ORDER BY count DESC, category ASC",
		column, where, column,
	)

	counts := []model.CategoryCount{}
	if err := r.db.SelectContext(ctx, &counts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to group vehicles by %s: %w", column, err)
	}
	return counts, nil
}

// YearSpan returns the min and max model year over the filtered vehicles,
// (0, 0) when nothing matches.
func (r *PostgresRepository) YearSpan(ctx context.Context, f *model.FilterSet) (int, int, error) {
	where, args := buildPredicates(f)
	query := fmt.Sprintf(
		"SELECT COALESCE(MIN(year), 0), COALESCE(MAX(year), 0) FROM vehicles WHERE %s",
		where,
	)

	var min, max int
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&min, &max); err != nil {
		return 0, 0, fmt.Errorf("failed to compute year span: %w", err)
	}
	return min, max, nil
}

// SamplePrices returns up to limit prices from the filtered vehicles in
// recency order. Callers aggregating over this accept the prefix bias.
func (r *PostgresRepository) SamplePrices(ctx context.Context, f *model.FilterSet, limit int) ([]decimal.Decimal, error) {
	where, args := buildPredicates(f)
	query := fmt.Sprintf(
		"SELECT price FROM vehicles WHERE %s ORDER BY created_at DESC LIMIT $%d",
		where, len(args)+1,
	)
	args = append(args, limit)

	prices := []decimal.Decimal{}
	if err := r.db.SelectContext(ctx, &prices, query, args...); err != nil {
		return nil, fmt.Errorf("failed to sample prices: %w", err)
	}
	return prices, nil
}

// List returns a page of vehicles ordered by recency plus the total count.
func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]model.Vehicle, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM vehicles"); err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM vehicles ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		vehicleColumns,
	)
	vehicles := []model.Vehicle{}
	if err := r.db.SelectContext(ctx, &vehicles, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return vehicles, total, nil
}

// GetByVIN retrieves a single vehicle, nil when absent.
func (r *PostgresRepository) GetByVIN(ctx context.Context, vin string) (*model.Vehicle, error) {
	query := fmt.Sprintf("SELECT %s FROM vehicles WHERE vin = $1", vehicleColumns)

	var v model.Vehicle
	if err := r.db.GetContext(ctx, &v, query, vin); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return &v, nil
}

// VINExists reports whether a vehicle with the given VIN is already stored.
func (r *PostgresRepository) VINExists(ctx context.Context, vin string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS (SELECT 1 FROM vehicles WHERE vin = $1)"
	if err := r.db.GetContext(ctx, &exists, query, vin); err != nil {
		return false, fmt.Errorf("failed to check vin: %w", err)
	}
	return exists, nil
}

// Insert stores a vehicle and fills in its ID and creation timestamp.
func (r *PostgresRepository) Insert(ctx context.Context, v *model.Vehicle) error {
	query := `
		INSERT INTO vehicles (brand, model, year, engine, fuel_type, color, mileage_km, doors, transmission, body_type, price, vin)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		v.Brand, v.Model, v.Year, v.Engine, v.FuelType, v.Color,
		v.MileageKM, v.Doors, v.Transmission, v.BodyType, v.Price, v.VIN,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert vehicle: %w", err)
	}
	return nil
}

// Wipe deletes every vehicle. Used by the seeder's --wipe flag.
func (r *PostgresRepository) Wipe(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM vehicles"); err != nil {
		return fmt.Errorf("failed to wipe vehicles: %w", err)
	}
	return nil
}
