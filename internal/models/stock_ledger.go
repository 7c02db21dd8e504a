package models

import (
	"time"

	"github.com/google/uuid"
)

// Stock movement types. Only manual adjustments may drive a balance negative.
const (
	MovementPurchase             = "purchase"
	MovementProduction           = "production"
	MovementWorkOrderConsumption = "work_order_consumption"
	MovementManualAdjustment     = "manual_adjustment"
	MovementSale                 = "sale"
)

// StockLedgerEntry is one immutable row of the append-only stock ledger.
// Exactly one of QuantityIn/QuantityOut is set; Balance is the per-product
// running total after the movement.
type StockLedgerEntry struct {
	ID           uuid.UUID `json:"id" db:"id"`
	ProductID    uuid.UUID `json:"product_id" db:"product_id"`
	MovementType string    `json:"movement_type" db:"movement_type"`
	QuantityIn   *int      `json:"quantity_in" db:"quantity_in"`
	QuantityOut  *int      `json:"quantity_out" db:"quantity_out"`
	Balance      int       `json:"balance" db:"balance"`
	Reference    *string   `json:"reference" db:"reference"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// ValidMovementType reports whether t is a known movement type.
func ValidMovementType(t string) bool {
	switch t {
	case MovementPurchase, MovementProduction, MovementWorkOrderConsumption,
		MovementManualAdjustment, MovementSale:
		return true
	}
	return false
}

// SignedQuantity returns the movement quantity with direction applied.
func (e *StockLedgerEntry) SignedQuantity() int {
	if e.QuantityIn != nil {
		return *e.QuantityIn
	}
	if e.QuantityOut != nil {
		return -*e.QuantityOut
	}
	return 0
}
