package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vehicle represents one inventory record. The store owns identity: VIN
// uniqueness is enforced by the database, not by callers.
type Vehicle struct {
	ID           int64           `json:"id" db:"id"`
	Brand        string          `json:"brand" db:"brand"`
	Model        string          `json:"model" db:"model"`
	Year         int             `json:"year" db:"year"`
	Engine       string          `json:"engine" db:"engine"`
	FuelType     string          `json:"fuel_type" db:"fuel_type"`
	Color        string          `json:"color" db:"color"`
	MileageKM    int             `json:"mileage_km" db:"mileage_km"`
	Doors        int             `json:"doors" db:"doors"`
	Transmission string          `json:"transmission" db:"transmission"`
	BodyType     string          `json:"body_type" db:"body_type"`
	Price        decimal.Decimal `json:"price" db:"price"`
	VIN          string          `json:"vin" db:"vin"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}
