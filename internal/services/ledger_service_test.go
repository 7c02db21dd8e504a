package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/common"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/models"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/repositories"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mock      pgxmock.PgxPoolIface
	service   LedgerService
	productID uuid.UUID
	context   context.Context
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	ledgerRepo := repositories.NewStockLedgerRepo(mock)
	productRepo := repositories.NewProductRepo(mock)
	suite.service = NewLedgerService(mock, ledgerRepo, productRepo)
	suite.productID = uuid.New()
	suite.context = context.Background()
}

func (suite *LedgerServiceTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (suite *LedgerServiceTestSuite) productRows(stock int) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "name", "type", "stock_on_hand", "min_stock_level", "unit_cost", "created_at", "updated_at",
	}).AddRow(suite.productID, "Oak Plank", models.ProductTypeRawMaterial, stock, 5, "12.50", now, now)
}

func (suite *LedgerServiceTestSuite) TestAppendMovement_InboundUpdatesBalance() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`FROM products WHERE id = \$1 FOR UPDATE`).
		WithArgs(suite.productID).
		WillReturnRows(suite.productRows(100))
	suite.mock.ExpectExec(`INSERT INTO stock_ledger_entries`).
		WithArgs(pgxmock.AnyArg(), suite.productID, models.MovementPurchase,
			pgxmock.AnyArg(), pgxmock.AnyArg(), 125, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`UPDATE products SET stock_on_hand`).
		WithArgs(125, suite.productID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	entry, err := suite.service.AppendMovement(suite.context, AppendMovementInput{
		ProductID:    suite.productID,
		MovementType: models.MovementPurchase,
		Direction:    DirectionIn,
		Quantity:     25,
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 125, entry.Balance)
	assert.Equal(suite.T(), 25, *entry.QuantityIn)
	assert.Nil(suite.T(), entry.QuantityOut)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *LedgerServiceTestSuite) TestAppendMovement_RejectsNegativeBalance() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`FROM products WHERE id = \$1 FOR UPDATE`).
		WithArgs(suite.productID).
		WillReturnRows(suite.productRows(10))
	suite.mock.ExpectRollback()

	_, err := suite.service.AppendMovement(suite.context, AppendMovementInput{
		ProductID:    suite.productID,
		MovementType: models.MovementSale,
		Direction:    DirectionOut,
		Quantity:     50,
	})
	assert.ErrorIs(suite.T(), err, common.ErrInsufficientStock)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *LedgerServiceTestSuite) TestAppendMovement_ManualAdjustmentMayGoNegative() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`FROM products WHERE id = \$1 FOR UPDATE`).
		WithArgs(suite.productID).
		WillReturnRows(suite.productRows(10))
	suite.mock.ExpectExec(`INSERT INTO stock_ledger_entries`).
		WithArgs(pgxmock.AnyArg(), suite.productID, models.MovementManualAdjustment,
			pgxmock.AnyArg(), pgxmock.AnyArg(), -40, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`UPDATE products SET stock_on_hand`).
		WithArgs(-40, suite.productID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	entry, err := suite.service.AppendMovement(suite.context, AppendMovementInput{
		ProductID:    suite.productID,
		MovementType: models.MovementManualAdjustment,
		Direction:    DirectionOut,
		Quantity:     50,
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), -40, entry.Balance)
}

func (suite *LedgerServiceTestSuite) TestAppendMovement_DirectionMismatchRejected() {
	_, err := suite.service.AppendMovement(suite.context, AppendMovementInput{
		ProductID:    suite.productID,
		MovementType: models.MovementSale,
		Direction:    DirectionIn,
		Quantity:     5,
	})
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestAppendMovement_ZeroQuantityRejected() {
	_, err := suite.service.AppendMovement(suite.context, AppendMovementInput{
		ProductID:    suite.productID,
		MovementType: models.MovementPurchase,
		Direction:    DirectionIn,
		Quantity:     0,
	})
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func TestReplayBalance_ReproducesRunningTotal(t *testing.T) {
	in100, out40, in5, out25 := 100, 40, 5, 25
	entries := []*models.StockLedgerEntry{
		{MovementType: models.MovementPurchase, QuantityIn: &in100, Balance: 100},
		{MovementType: models.MovementWorkOrderConsumption, QuantityOut: &out40, Balance: 60},
		{MovementType: models.MovementProduction, QuantityIn: &in5, Balance: 65},
		{MovementType: models.MovementSale, QuantityOut: &out25, Balance: 40},
	}

	assert.Equal(t, 40, ReplayBalance(entries))
	assert.Equal(t, entries[len(entries)-1].Balance, ReplayBalance(entries))
}

func TestReplayBalance_EmptyHistoryIsZero(t *testing.T) {
	assert.Equal(t, 0, ReplayBalance(nil))
}
