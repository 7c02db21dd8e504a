package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/caching"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/common"
)

// StockLedgerExport is the result of a ledger export: where the file landed
// and a time-limited link to download it.
type StockLedgerExport struct {
	ObjectName  string    `json:"object_name"`
	DownloadURL string    `json:"download_url"`
	RowCount    int       `json:"row_count"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ReportService renders ledger history into CSV files stored in object
// storage.
type ReportService interface {
	ExportStockLedger(ctx context.Context, productID *uuid.UUID) (*StockLedgerExport, error)
}

type reportService struct {
	ledger LedgerService
	store  MinioService
	cache  caching.CacheService
	bucket string
}

const (
	exportPageSize  = 1000
	exportURLExpiry = 15 * time.Minute
)

// NewReportService creates a new report service. cache may be nil; exports
// then always regenerate.
func NewReportService(ledger LedgerService, store MinioService, cache caching.CacheService, bucket string) ReportService {
	return &reportService{
		ledger: ledger,
		store:  store,
		cache:  cache,
		bucket: bucket,
	}
}

func exportCacheKey(productID *uuid.UUID) string {
	if productID == nil {
		return "export:stock-ledger"
	}
	return fmt.Sprintf("export:stock-ledger:%s", productID)
}

// ExportStockLedger streams the full ledger history (optionally scoped to one
// product) into a CSV object and returns a presigned download link. Links are
// cached for their lifetime, so repeated export requests inside the expiry
// window reuse the already generated file.
func (s *reportService) ExportStockLedger(ctx context.Context, productID *uuid.UUID) (*StockLedgerExport, error) {
	cacheKey := exportCacheKey(productID)
	if cached := s.cachedExport(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"id", "product_id", "movement_type", "quantity_in", "quantity_out", "balance", "reference", "created_at"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	rowCount := 0
	for offset := 0; ; offset += exportPageSize {
		entries, err := s.ledger.History(ctx, productID, exportPageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			record := []string{
				entry.ID.String(),
				entry.ProductID.String(),
				entry.MovementType,
				formatOptionalInt(entry.QuantityIn),
				formatOptionalInt(entry.QuantityOut),
				strconv.Itoa(entry.Balance),
				formatOptionalString(entry.Reference),
				entry.CreatedAt.UTC().Format(time.RFC3339),
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
			rowCount++
		}
		if len(entries) < exportPageSize {
			break
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("stock-ledger/%s.csv", time.Now().UTC().Format("20060102T150405Z"))
	if productID != nil {
		objectName = fmt.Sprintf("stock-ledger/%s-%s.csv", productID, time.Now().UTC().Format("20060102T150405Z"))
	}

	if err := s.store.EnsureBucketExists(ctx, s.bucket); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	if err := s.store.UploadObject(ctx, s.bucket, objectName, "text/csv", bytes.NewReader(buf.Bytes()), int64(buf.Len())); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	url, err := s.store.GetPresignedURL(ctx, s.bucket, objectName, exportURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	export := &StockLedgerExport{
		ObjectName:  objectName,
		DownloadURL: url,
		RowCount:    rowCount,
		ExpiresAt:   time.Now().Add(exportURLExpiry),
	}
	s.storeExport(ctx, cacheKey, export)
	return export, nil
}

// cachedExport returns a still-valid cached export, dropping stale entries so
// expired links are never served.
func (s *reportService) cachedExport(ctx context.Context, key string) *StockLedgerExport {
	if s.cache == nil {
		return nil
	}
	cached, err := s.cache.GetString(ctx, key)
	if err != nil {
		log.Printf("WARN: export cache read failed: %v", err)
		return nil
	}
	if cached == "" {
		return nil
	}

	var export StockLedgerExport
	if json.Unmarshal([]byte(cached), &export) == nil && time.Now().Before(export.ExpiresAt) {
		return &export
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		log.Printf("WARN: export cache delete failed: %v", err)
	}
	return nil
}

func (s *reportService) storeExport(ctx context.Context, key string, export *StockLedgerExport) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(export)
	if err != nil {
		return
	}
	if err := s.cache.SetString(ctx, key, string(data), exportURLExpiry); err != nil {
		log.Printf("WARN: export cache write failed: %v", err)
	}
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatOptionalString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
