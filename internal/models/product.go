package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product types. Finished goods are produced from raw materials through a BOM.
const (
	ProductTypeRawMaterial  = "raw_material"
	ProductTypeFinishedGood = "finished_good"
)

type Product struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	Type          string          `json:"type" db:"type"`
	StockOnHand   int             `json:"stock_on_hand" db:"stock_on_hand"`
	MinStockLevel int             `json:"min_stock_level" db:"min_stock_level"`
	UnitCost      decimal.Decimal `json:"unit_cost" db:"unit_cost"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// ValidProductType reports whether t is a known product type.
func ValidProductType(t string) bool {
	return t == ProductTypeRawMaterial || t == ProductTypeFinishedGood
}
