package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/common"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/models"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/repositories"
)

type CatalogServiceTestSuite struct {
	suite.Suite
	mock      pgxmock.PgxPoolIface
	service   CatalogService
	productID uuid.UUID
	context   context.Context
}

func (suite *CatalogServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	productRepo := repositories.NewProductRepo(mock)
	bomRepo := repositories.NewBOMRepo(mock)
	userRepo := repositories.NewUserProfileRepo(mock)
	suite.service = NewCatalogService(mock, productRepo, bomRepo, userRepo)
	suite.productID = uuid.New()
	suite.context = context.Background()
}

func (suite *CatalogServiceTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestCatalogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}

func (suite *CatalogServiceTestSuite) expectProductLookup(productType string) {
	now := time.Now()
	suite.mock.ExpectQuery(`FROM products WHERE id = \$1`).
		WithArgs(suite.productID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "type", "stock_on_hand", "min_stock_level", "unit_cost", "created_at", "updated_at",
		}).AddRow(suite.productID, "Table", productType, 0, 0, "45.00", now, now))
}

func (suite *CatalogServiceTestSuite) TestCreateProduct_StartsWithZeroStock() {
	now := time.Now()
	suite.mock.ExpectExec(`INSERT INTO products`).
		WithArgs(pgxmock.AnyArg(), "Oak Plank", models.ProductTypeRawMaterial, 0, 5, "12.5").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectQuery(`FROM products WHERE id = \$1`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "type", "stock_on_hand", "min_stock_level", "unit_cost", "created_at", "updated_at",
		}).AddRow(uuid.New(), "Oak Plank", models.ProductTypeRawMaterial, 0, 5, "12.5", now, now))

	product, err := suite.service.CreateProduct(suite.context, ProductInput{
		Name:          "Oak Plank",
		Type:          models.ProductTypeRawMaterial,
		MinStockLevel: 5,
		UnitCost:      decimal.RequireFromString("12.5"),
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, product.StockOnHand)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *CatalogServiceTestSuite) TestCreateProduct_UnknownTypeRejected() {
	_, err := suite.service.CreateProduct(suite.context, ProductInput{
		Name:     "Widget",
		Type:     "intermediate",
		UnitCost: decimal.NewFromInt(1),
	})
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *CatalogServiceTestSuite) TestCreateProduct_NegativeCostRejected() {
	_, err := suite.service.CreateProduct(suite.context, ProductInput{
		Name:     "Widget",
		Type:     models.ProductTypeRawMaterial,
		UnitCost: decimal.NewFromInt(-3),
	})
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *CatalogServiceTestSuite) TestCreateBOM_SelfReferenceRejected() {
	suite.expectProductLookup(models.ProductTypeFinishedGood)

	_, err := suite.service.CreateBOM(suite.context, CreateBOMInput{
		ProductID: suite.productID,
		Lines: []BOMLineInput{
			{ComponentProductID: suite.productID, Quantity: 1},
		},
	})
	assert.ErrorIs(suite.T(), err, common.ErrConflict)
}

func (suite *CatalogServiceTestSuite) TestCreateBOM_DuplicateComponentRejected() {
	componentID := uuid.New()
	suite.expectProductLookup(models.ProductTypeFinishedGood)

	_, err := suite.service.CreateBOM(suite.context, CreateBOMInput{
		ProductID: suite.productID,
		Lines: []BOMLineInput{
			{ComponentProductID: componentID, Quantity: 4},
			{ComponentProductID: componentID, Quantity: 1},
		},
	})
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *CatalogServiceTestSuite) TestCreateBOM_RawMaterialParentRejected() {
	suite.expectProductLookup(models.ProductTypeRawMaterial)

	_, err := suite.service.CreateBOM(suite.context, CreateBOMInput{
		ProductID: suite.productID,
		Lines: []BOMLineInput{
			{ComponentProductID: uuid.New(), Quantity: 1},
		},
	})
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *CatalogServiceTestSuite) TestCreateBOM_WritesHeaderAndLinesAtomically() {
	componentID := uuid.New()
	now := time.Now()

	suite.expectProductLookup(models.ProductTypeFinishedGood)

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`INSERT INTO boms`).
		WithArgs(pgxmock.AnyArg(), suite.productID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`INSERT INTO bom_lines`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), componentID, 4).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	bomID := uuid.New()
	suite.mock.ExpectQuery(`FROM boms WHERE id = \$1`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "product_id", "created_at"}).
			AddRow(bomID, suite.productID, now))
	suite.mock.ExpectQuery(`FROM bom_lines`).
		WithArgs(bomID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "bom_id", "component_product_id", "name", "quantity"}).
			AddRow(uuid.New(), bomID, componentID, "Leg", 4))

	bom, err := suite.service.CreateBOM(suite.context, CreateBOMInput{
		ProductID: suite.productID,
		Lines: []BOMLineInput{
			{ComponentProductID: componentID, Quantity: 4},
		},
	})
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), bom.Lines, 1)
	assert.Equal(suite.T(), "Leg", bom.Lines[0].ComponentName)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *CatalogServiceTestSuite) TestDeleteBOM_RemovesLinesThenHeader() {
	bomID := uuid.New()
	now := time.Now()

	suite.mock.ExpectQuery(`FROM boms WHERE id = \$1`).
		WithArgs(bomID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "product_id", "created_at"}).
			AddRow(bomID, suite.productID, now))
	suite.mock.ExpectQuery(`FROM bom_lines`).
		WithArgs(bomID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "bom_id", "component_product_id", "name", "quantity"}))

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`DELETE FROM bom_lines`).
		WithArgs(bomID).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	suite.mock.ExpectExec(`DELETE FROM boms`).
		WithArgs(bomID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.mock.ExpectCommit()

	err := suite.service.DeleteBOM(suite.context, bomID)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *CatalogServiceTestSuite) TestListOperators() {
	operatorID := uuid.New()
	suite.mock.ExpectQuery(`FROM user_profiles WHERE role = \$1`).
		WithArgs(models.RoleOperator).
		WillReturnRows(pgxmock.NewRows([]string{"id", "full_name", "role", "created_at"}).
			AddRow(operatorID, "Sam Rivera", models.RoleOperator, time.Now()))

	operators, err := suite.service.ListOperators(suite.context)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), operators, 1)
	assert.Equal(suite.T(), operatorID, operators[0].ID)
}
