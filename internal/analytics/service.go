package analytics

import (
	"context"
	"log"
	"time"

	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/caching"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/common"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/models"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/repositories"
)

// Service computes the dashboard rollup and caches it. The cache is an
// accelerator only: a cold or unreachable Redis degrades to a live recompute.
type Service struct {
	productRepo repositories.ProductRepository
	bomRepo     repositories.BOMRepository
	moRepo      repositories.ManufacturingOrderRepository
	woRepo      repositories.WorkOrderRepository
	cache       caching.CacheService
}

const (
	dashboardTTL     = 5 * time.Minute
	recentOrderLimit = 5
)

func NewService(
	productRepo repositories.ProductRepository,
	bomRepo repositories.BOMRepository,
	moRepo repositories.ManufacturingOrderRepository,
	woRepo repositories.WorkOrderRepository,
	cache caching.CacheService,
) *Service {
	return &Service{
		productRepo: productRepo,
		bomRepo:     bomRepo,
		moRepo:      moRepo,
		woRepo:      woRepo,
		cache:       cache,
	}
}

// GetDashboard serves the cached rollup when fresh, otherwise recomputes and
// repopulates the cache.
func (s *Service) GetDashboard(ctx context.Context) (*models.Dashboard, error) {
	if s.cache != nil {
		cached, err := s.cache.GetDashboard(ctx)
		if err != nil {
			log.Printf("WARN: dashboard cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}
	return s.Refresh(ctx)
}

// Refresh recomputes the dashboard from the database and stores the result.
func (s *Service) Refresh(ctx context.Context) (*models.Dashboard, error) {
	dashboard, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetDashboard(ctx, dashboard, dashboardTTL); err != nil {
			log.Printf("WARN: dashboard cache write failed: %v", err)
		}
	}
	return dashboard, nil
}

// Invalidate drops the cached rollup so the next read recomputes.
func (s *Service) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.InvalidateDashboard(ctx)
}

func (s *Service) compute(ctx context.Context) (*models.Dashboard, error) {
	dashboard := &models.Dashboard{
		// Empty collections render as [] rather than null.
		RecentOrders:      []*models.ManufacturingOrder{},
		StockAlerts:       []*models.StockAlert{},
		OperatorAnalytics: []*models.OperatorStats{},
		GeneratedAt:       time.Now().UTC(),
	}

	totalProducts, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, common.TranslateStoreError(err)
	}
	dashboard.KPIs.TotalProducts = totalProducts

	activeBOMs, err := s.bomRepo.Count(ctx)
	if err != nil {
		return nil, common.TranslateStoreError(err)
	}
	dashboard.KPIs.ActiveBOMs = activeBOMs

	inProgress, err := s.moRepo.CountByStatus(ctx, models.MOStatusInProgress)
	if err != nil {
		return nil, common.TranslateStoreError(err)
	}
	dashboard.KPIs.OrdersInProgress = inProgress

	pendingWOs, err := s.woRepo.CountByStatus(ctx, models.WOStatusPending)
	if err != nil {
		return nil, common.TranslateStoreError(err)
	}
	dashboard.KPIs.PendingWorkOrders = pendingWOs

	monthStart := time.Now().UTC().AddDate(0, 0, -30)
	completed, err := s.moRepo.CountCompletedSince(ctx, monthStart)
	if err != nil {
		return nil, common.TranslateStoreError(err)
	}
	dashboard.KPIs.CompletedThisMonth = completed

	stockValue, err := s.productRepo.TotalStockValue(ctx)
	if err != nil {
		return nil, common.TranslateStoreError(err)
	}
	dashboard.KPIs.StockValue = stockValue

	alerts, err := s.productRepo.ListLowStock(ctx)
	if err != nil {
		return nil, common.TranslateStoreError(err)
	}
	if alerts != nil {
		dashboard.StockAlerts = alerts
	}
	dashboard.KPIs.LowStockItems = len(alerts)

	recent, err := s.moRepo.ListRecent(ctx, recentOrderLimit)
	if err != nil {
		return nil, common.TranslateStoreError(err)
	}
	if recent != nil {
		dashboard.RecentOrders = recent
	}

	operatorStats, err := s.woRepo.OperatorAnalytics(ctx)
	if err != nil {
		return nil, common.TranslateStoreError(err)
	}
	if operatorStats != nil {
		dashboard.OperatorAnalytics = operatorStats
	}

	return dashboard, nil
}
