package models

import (
	"time"

	"github.com/google/uuid"
)

// Work order statuses. One work order exists per BOM line of the parent
// manufacturing order; each transitions independently.
const (
	WOStatusPending    = "pending"
	WOStatusInProgress = "in_progress"
	WOStatusCompleted  = "completed"
	WOStatusCancelled  = "cancelled"
)

type WorkOrder struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	MOID               uuid.UUID  `json:"mo_id" db:"mo_id"`
	ComponentProductID uuid.UUID  `json:"component_product_id" db:"component_product_id"`
	Name               string     `json:"name" db:"name"`
	RequiredQuantity   int        `json:"required_quantity" db:"required_quantity"`
	Status             string     `json:"status" db:"status"`
	OperatorID         *uuid.UUID `json:"operator_id" db:"operator_id"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

// WorkOrderDetail is a work order joined with its parent order and the
// finished product it contributes to.
type WorkOrderDetail struct {
	WorkOrder
	OrderQuantity int    `json:"order_quantity" db:"order_quantity"`
	OrderStatus   string `json:"order_status" db:"order_status"`
	ProductName   string `json:"product_name" db:"product_name"`
}

// WOStatusTerminal reports whether a work order can no longer change state.
func WOStatusTerminal(status string) bool {
	return status == WOStatusCompleted || status == WOStatusCancelled
}

// ValidWOStatus reports whether s is a known work order status.
func ValidWOStatus(s string) bool {
	switch s {
	case WOStatusPending, WOStatusInProgress, WOStatusCompleted, WOStatusCancelled:
		return true
	}
	return false
}
