package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/models"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/repositories"
)

type AnalyticsServiceTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	service *Service
	context context.Context
}

func (suite *AnalyticsServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	productRepo := repositories.NewProductRepo(mock)
	bomRepo := repositories.NewBOMRepo(mock)
	moRepo := repositories.NewManufacturingOrderRepo(mock)
	woRepo := repositories.NewWorkOrderRepo(mock)
	// No cache wired: every read recomputes.
	suite.service = NewService(productRepo, bomRepo, moRepo, woRepo, nil)
	suite.context = context.Background()
}

func (suite *AnalyticsServiceTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestAnalyticsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AnalyticsServiceTestSuite))
}

func (suite *AnalyticsServiceTestSuite) expectCounts(products, boms, inProgress, pendingWOs, completed int, stockValue string) {
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(products))
	suite.mock.ExpectQuery(`SELECT COUNT\(DISTINCT product_id\) FROM boms`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(boms))
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM manufacturing_orders WHERE status = \$1`).
		WithArgs(models.MOStatusInProgress).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(inProgress))
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM work_orders WHERE status = \$1`).
		WithArgs(models.WOStatusPending).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(pendingWOs))
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM manufacturing_orders WHERE status = 'completed'`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(completed))
	suite.mock.ExpectQuery(`SELECT COALESCE\(SUM`).
		WillReturnRows(pgxmock.NewRows([]string{"total"}).AddRow(stockValue))
}

func (suite *AnalyticsServiceTestSuite) TestGetDashboard_AggregatesKPIs() {
	now := time.Now()
	productID := uuid.New()
	operatorID := uuid.New()

	suite.expectCounts(12, 3, 2, 5, 4, "1845.50")
	suite.mock.ExpectQuery(`FROM products`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "stock_on_hand", "min_stock_level"}).
			AddRow(productID, "Oak Plank", 2, 10))
	suite.mock.ExpectQuery(`FROM manufacturing_orders`).
		WithArgs("", 5, 0).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "product_id", "bom_id", "quantity_to_produce", "status", "assignee_id", "created_at", "updated_at",
		}).AddRow(uuid.New(), productID, uuid.New(), 10, models.MOStatusInProgress, nil, now, now))
	suite.mock.ExpectQuery(`FROM work_orders w`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "full_name", "assigned", "in_progress", "completed"}).
			AddRow(operatorID, "Sam Rivera", 3, 1, 7))

	dashboard, err := suite.service.GetDashboard(suite.context)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 12, dashboard.KPIs.TotalProducts)
	assert.Equal(suite.T(), 3, dashboard.KPIs.ActiveBOMs)
	assert.Equal(suite.T(), 2, dashboard.KPIs.OrdersInProgress)
	assert.Equal(suite.T(), 5, dashboard.KPIs.PendingWorkOrders)
	assert.Equal(suite.T(), 4, dashboard.KPIs.CompletedThisMonth)
	assert.Equal(suite.T(), 1, dashboard.KPIs.LowStockItems)
	assert.Equal(suite.T(), "1845.5", dashboard.KPIs.StockValue.String())
	assert.Len(suite.T(), dashboard.StockAlerts, 1)
	assert.Len(suite.T(), dashboard.RecentOrders, 1)
	assert.Len(suite.T(), dashboard.OperatorAnalytics, 1)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *AnalyticsServiceTestSuite) TestGetDashboard_EmptySystemIsZeroValued() {
	suite.expectCounts(0, 0, 0, 0, 0, "0")
	suite.mock.ExpectQuery(`FROM products`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "stock_on_hand", "min_stock_level"}))
	suite.mock.ExpectQuery(`FROM manufacturing_orders`).
		WithArgs("", 5, 0).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "product_id", "bom_id", "quantity_to_produce", "status", "assignee_id", "created_at", "updated_at",
		}))
	suite.mock.ExpectQuery(`FROM work_orders w`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "full_name", "assigned", "in_progress", "completed"}))

	dashboard, err := suite.service.GetDashboard(suite.context)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, dashboard.KPIs.TotalProducts)
	assert.True(suite.T(), dashboard.KPIs.StockValue.IsZero())
	assert.NotNil(suite.T(), dashboard.StockAlerts)
	assert.NotNil(suite.T(), dashboard.RecentOrders)
	assert.NotNil(suite.T(), dashboard.OperatorAnalytics)
	assert.Empty(suite.T(), dashboard.StockAlerts)
}
