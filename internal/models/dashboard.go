package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Dashboard is the read-only analytics rollup served to the admin view.
type Dashboard struct {
	KPIs              DashboardKPIs         `json:"kpis"`
	RecentOrders      []*ManufacturingOrder `json:"recent_orders"`
	StockAlerts       []*StockAlert         `json:"stock_alerts"`
	OperatorAnalytics []*OperatorStats      `json:"operator_analytics"`
	GeneratedAt       time.Time             `json:"generated_at"`
}

type DashboardKPIs struct {
	TotalProducts      int             `json:"total_products"`
	ActiveBOMs         int             `json:"active_boms"`
	OrdersInProgress   int             `json:"orders_in_progress"`
	PendingWorkOrders  int             `json:"pending_work_orders"`
	LowStockItems      int             `json:"low_stock_items"`
	CompletedThisMonth int             `json:"completed_this_month"`
	StockValue         decimal.Decimal `json:"stock_value"`
}

// StockAlert flags a product whose stock on hand fell below its minimum level.
type StockAlert struct {
	ProductID     uuid.UUID `json:"product_id" db:"product_id"`
	ProductName   string    `json:"product_name" db:"product_name"`
	StockOnHand   int       `json:"stock_on_hand" db:"stock_on_hand"`
	MinStockLevel int       `json:"min_stock_level" db:"min_stock_level"`
}

// OperatorStats counts work orders per operator by state.
type OperatorStats struct {
	OperatorID uuid.UUID `json:"operator_id" db:"operator_id"`
	FullName   string    `json:"full_name" db:"full_name"`
	Assigned   int       `json:"assigned" db:"assigned"`
	InProgress int       `json:"in_progress" db:"in_progress"`
	Completed  int       `json:"completed" db:"completed"`
}
