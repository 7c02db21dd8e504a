package services

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/models"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/repositories"
)

// stubObjectStore counts uploads and hands out a fixed download link.
type stubObjectStore struct {
	uploads int
	url     string
}

func (s *stubObjectStore) UploadObject(ctx context.Context, bucketName, objectName, contentType string, reader io.Reader, objectSize int64) error {
	s.uploads++
	return nil
}

func (s *stubObjectStore) GetPresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	return s.url, nil
}

func (s *stubObjectStore) DeleteObject(ctx context.Context, bucketName, objectName string) error {
	return nil
}

func (s *stubObjectStore) EnsureBucketExists(ctx context.Context, bucketName string) error {
	return nil
}

// stubCache is an in-memory stand-in for the Redis cache.
type stubCache struct {
	values  map[string]string
	deleted []string
}

func newStubCache() *stubCache { return &stubCache{values: map[string]string{}} }

func (c *stubCache) GetDashboard(ctx context.Context) (*models.Dashboard, error) { return nil, nil }

func (c *stubCache) SetDashboard(ctx context.Context, dashboard *models.Dashboard, ttl time.Duration) error {
	return nil
}

func (c *stubCache) InvalidateDashboard(ctx context.Context) error { return nil }

func (c *stubCache) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	c.values[key] = value
	return nil
}

func (c *stubCache) GetString(ctx context.Context, key string) (string, error) {
	return c.values[key], nil
}

func (c *stubCache) Delete(ctx context.Context, key string) error {
	c.deleted = append(c.deleted, key)
	delete(c.values, key)
	return nil
}

type ReportServiceTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	store   *stubObjectStore
	cache   *stubCache
	service ReportService
	context context.Context
}

func (suite *ReportServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	ledgerRepo := repositories.NewStockLedgerRepo(mock)
	productRepo := repositories.NewProductRepo(mock)
	ledgerSvc := NewLedgerService(mock, ledgerRepo, productRepo)

	suite.store = &stubObjectStore{url: "https://minio.local/reports/ledger.csv"}
	suite.cache = newStubCache()
	suite.service = NewReportService(ledgerSvc, suite.store, suite.cache, "manufacturing-reports")
	suite.context = context.Background()
}

func (suite *ReportServiceTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestReportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}

func (suite *ReportServiceTestSuite) TestExportStockLedger_GeneratesAndCachesLink() {
	qty := 100
	suite.mock.ExpectQuery(`FROM stock_ledger_entries`).
		WithArgs(nil, 1000, 0).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "product_id", "movement_type", "quantity_in", "quantity_out", "balance", "reference", "created_at",
		}).AddRow(uuid.New(), uuid.New(), models.MovementPurchase, &qty, nil, 100, nil, time.Now()))

	export, err := suite.service.ExportStockLedger(suite.context, nil)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, export.RowCount)
	assert.Equal(suite.T(), suite.store.url, export.DownloadURL)
	assert.Equal(suite.T(), 1, suite.store.uploads)

	var cached StockLedgerExport
	assert.NoError(suite.T(), json.Unmarshal([]byte(suite.cache.values["export:stock-ledger"]), &cached))
	assert.Equal(suite.T(), export.DownloadURL, cached.DownloadURL)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

// A still-valid cached link is served without touching the database or the
// object store.
func (suite *ReportServiceTestSuite) TestExportStockLedger_ReusesFreshLink() {
	fresh := StockLedgerExport{
		ObjectName:  "stock-ledger/earlier.csv",
		DownloadURL: "https://minio.local/reports/earlier.csv",
		RowCount:    3,
		ExpiresAt:   time.Now().Add(10 * time.Minute),
	}
	data, err := json.Marshal(fresh)
	assert.NoError(suite.T(), err)
	suite.cache.values["export:stock-ledger"] = string(data)

	export, err := suite.service.ExportStockLedger(suite.context, nil)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), fresh.DownloadURL, export.DownloadURL)
	assert.Equal(suite.T(), 3, export.RowCount)
	assert.Equal(suite.T(), 0, suite.store.uploads)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

// An expired cached link is dropped and a fresh export generated in its place.
func (suite *ReportServiceTestSuite) TestExportStockLedger_DropsExpiredLink() {
	stale := StockLedgerExport{
		ObjectName:  "stock-ledger/old.csv",
		DownloadURL: "https://minio.local/reports/old.csv",
		ExpiresAt:   time.Now().Add(-time.Minute),
	}
	data, err := json.Marshal(stale)
	assert.NoError(suite.T(), err)
	suite.cache.values["export:stock-ledger"] = string(data)

	suite.mock.ExpectQuery(`FROM stock_ledger_entries`).
		WithArgs(nil, 1000, 0).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "product_id", "movement_type", "quantity_in", "quantity_out", "balance", "reference", "created_at",
		}))

	export, err := suite.service.ExportStockLedger(suite.context, nil)
	assert.NoError(suite.T(), err)
	assert.Contains(suite.T(), suite.cache.deleted, "export:stock-ledger")
	assert.Equal(suite.T(), suite.store.url, export.DownloadURL)
	assert.Equal(suite.T(), 1, suite.store.uploads)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}
