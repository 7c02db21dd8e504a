package background

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/analytics"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/repositories"
)

// JobScheduler manages recurring background jobs
type JobScheduler struct {
	scheduler    gocron.Scheduler
	analyticsSvc *analytics.Service
	productRepo  repositories.ProductRepository
	jobs         map[string]gocron.Job
	mu           sync.RWMutex
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(analyticsSvc *analytics.Service, productRepo repositories.ProductRepository) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:    scheduler,
		analyticsSvc: analyticsSvc,
		productRepo:  productRepo,
		jobs:         make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	// Dashboard refresh - every 5 minutes
	dashboardJob, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.refreshDashboard, context.Background()),
		gocron.WithName("dashboard-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create dashboard refresh job: %v", err)
	} else {
		js.jobs["dashboard-refresh"] = dashboardJob
	}

	// Low stock scan - every hour
	lowStockJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.scanLowStock, context.Background()),
		gocron.WithName("low-stock-scan"),
	)
	if err != nil {
		log.Printf("Failed to create low stock scan job: %v", err)
	} else {
		js.jobs["low-stock-scan"] = lowStockJob
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}

// refreshDashboard recomputes the dashboard rollup so interactive reads stay
// warm even without traffic.
func (js *JobScheduler) refreshDashboard(ctx context.Context) error {
	if _, err := js.analyticsSvc.Refresh(ctx); err != nil {
		log.Printf("Failed to refresh dashboard: %v", err)
		return err
	}
	return nil
}

// scanLowStock logs products whose stock fell below their minimum level.
func (js *JobScheduler) scanLowStock(ctx context.Context) error {
	alerts, err := js.productRepo.ListLowStock(ctx)
	if err != nil {
		log.Printf("Failed to scan low stock products: %v", err)
		return err
	}

	for _, alert := range alerts {
		log.Printf("ALERT: product %s (%s) has %d on hand, minimum is %d",
			alert.ProductName, alert.ProductID, alert.StockOnHand, alert.MinStockLevel)
	}
	return nil
}

// JobNames returns the names of registered jobs.
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	return names
}
