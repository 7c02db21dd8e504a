package models

import (
	"time"

	"github.com/google/uuid"
)

// Manufacturing order statuses. Status only advances; cancelled is reachable
// from any non-terminal state.
const (
	MOStatusDraft      = "draft"
	MOStatusConfirmed  = "confirmed"
	MOStatusInProgress = "in_progress"
	MOStatusCompleted  = "completed"
	MOStatusCancelled  = "cancelled"
)

type ManufacturingOrder struct {
	ID                uuid.UUID    `json:"id" db:"id"`
	ProductID         uuid.UUID    `json:"product_id" db:"product_id"`
	BOMID             uuid.UUID    `json:"bom_id" db:"bom_id"`
	QuantityToProduce int          `json:"quantity_to_produce" db:"quantity_to_produce"`
	Status            string       `json:"status" db:"status"`
	AssigneeID        *uuid.UUID   `json:"assignee_id" db:"assignee_id"`
	CreatedAt         time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at" db:"updated_at"`
	WorkOrders        []*WorkOrder `json:"work_orders,omitempty"`
}

// MOStatusTerminal reports whether a manufacturing order can no longer change state.
func MOStatusTerminal(status string) bool {
	return status == MOStatusCompleted || status == MOStatusCancelled
}

// ValidMOStatus reports whether s is a known manufacturing order status.
func ValidMOStatus(s string) bool {
	switch s {
	case MOStatusDraft, MOStatusConfirmed, MOStatusInProgress, MOStatusCompleted, MOStatusCancelled:
		return true
	}
	return false
}
