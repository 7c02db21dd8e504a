package models

import (
	"time"

	"github.com/google/uuid"
)

// BillOfMaterials is the recipe of components required to produce one unit
// of a finished good. Lines are created atomically with the parent.
type BillOfMaterials struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	ProductID uuid.UUID  `json:"product_id" db:"product_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	Lines     []*BOMLine `json:"lines,omitempty"`
}

type BOMLine struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	BOMID              uuid.UUID `json:"bom_id" db:"bom_id"`
	ComponentProductID uuid.UUID `json:"component_product_id" db:"component_product_id"`
	ComponentName      string    `json:"component_name,omitempty" db:"component_name"`
	Quantity           int       `json:"quantity" db:"quantity"`
}
