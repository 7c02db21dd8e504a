package main

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/analytics"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/caching"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/common"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/handlers"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/jobs/background"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/middleware"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/models"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/repositories"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/services"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/pkg/database"
)

const version = "1.0.0"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"
	reportBucket := os.Getenv("REPORT_BUCKET")
	if reportBucket == "" {
		reportBucket = "manufacturing-reports"
	}

	minioSvc, err := services.NewMinioService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}

	// Create repositories
	productRepo := repositories.NewProductRepo(pool)
	bomRepo := repositories.NewBOMRepo(pool)
	moRepo := repositories.NewManufacturingOrderRepo(pool)
	woRepo := repositories.NewWorkOrderRepo(pool)
	ledgerRepo := repositories.NewStockLedgerRepo(pool)
	userRepo := repositories.NewUserProfileRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create services
	ledgerSvc := services.NewLedgerService(pool, ledgerRepo, productRepo)
	catalogSvc := services.NewCatalogService(pool, productRepo, bomRepo, userRepo)
	workflowSvc := services.NewWorkflowService(pool, moRepo, woRepo, bomRepo, productRepo, userRepo, ledgerSvc)
	analyticsSvc := analytics.NewService(productRepo, bomRepo, moRepo, woRepo, cacheSvc)
	reportSvc := services.NewReportService(ledgerSvc, minioSvc, cacheSvc, reportBucket)

	// Create handlers
	productHandlers := handlers.NewProductHandlers(catalogSvc)
	bomHandlers := handlers.NewBOMHandlers(catalogSvc)
	moHandlers := handlers.NewManufacturingOrderHandlers(workflowSvc)
	woHandlers := handlers.NewWorkOrderHandlers(workflowSvc)
	ledgerHandlers := handlers.NewStockLedgerHandlers(ledgerSvc)
	dashboardHandlers := handlers.NewDashboardHandlers(analyticsSvc)
	reportHandlers := handlers.NewReportHandlers(reportSvc)
	operatorHandlers := handlers.NewOperatorHandlers(catalogSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Background jobs
	scheduler, err := background.NewJobScheduler(analyticsSvc, productRepo)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop job scheduler: %v", err)
		}
	}()

	// Create Echo instance
	e := echo.New()
	e.Validator = common.NewRequestValidator()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/detailed", healthHandlers.DetailedHealthCheck)

	// Protected routes
	v1 := e.Group("/v1")
	v1.Use(middleware.JWTMiddleware(userRepo, jwtSecret))

	adminOnly := middleware.RequireRole(models.RoleAdmin)
	anyRole := middleware.RequireRole(models.RoleAdmin, models.RoleOperator)

	// Product routes
	v1.GET("/products", productHandlers.ListProducts, anyRole)
	v1.POST("/products", productHandlers.CreateProduct, adminOnly)
	v1.GET("/products/:id", productHandlers.GetProduct, anyRole)
	v1.PUT("/products/:id", productHandlers.UpdateProduct, adminOnly)
	v1.DELETE("/products/:id", productHandlers.DeleteProduct, adminOnly)

	// BOM routes
	v1.GET("/boms", bomHandlers.ListBOMs, anyRole)
	v1.POST("/boms", bomHandlers.CreateBOM, adminOnly)
	v1.GET("/boms/:id", bomHandlers.GetBOM, anyRole)
	v1.DELETE("/boms/:id", bomHandlers.DeleteBOM, adminOnly)

	// Manufacturing order routes
	v1.GET("/manufacturing-orders", moHandlers.ListManufacturingOrders, anyRole)
	v1.POST("/manufacturing-orders", moHandlers.CreateManufacturingOrder, adminOnly)
	v1.GET("/manufacturing-orders/:id", moHandlers.GetManufacturingOrder, anyRole)
	v1.POST("/manufacturing-orders/:id/confirm", moHandlers.ConfirmManufacturingOrder, adminOnly)
	v1.POST("/manufacturing-orders/:id/cancel", moHandlers.CancelManufacturingOrder, adminOnly)

	// Work order routes
	v1.GET("/work-orders", woHandlers.ListWorkOrders, anyRole)
	v1.PATCH("/work-orders/:id/start", woHandlers.StartWorkOrder, anyRole)
	v1.PATCH("/work-orders/:id/complete", woHandlers.CompleteWorkOrder, anyRole)
	v1.POST("/work-orders/:id/cancel", woHandlers.CancelWorkOrder, adminOnly)

	// Stock ledger routes
	v1.GET("/stock-ledger", ledgerHandlers.ListMovements, anyRole)
	v1.POST("/stock-ledger", ledgerHandlers.AppendMovement, adminOnly)

	// Dashboard routes
	v1.GET("/dashboard", dashboardHandlers.GetDashboard, anyRole)
	v1.POST("/dashboard/refresh", dashboardHandlers.RefreshDashboard, adminOnly)

	// Report routes
	v1.GET("/reports/stock-ledger/export", reportHandlers.ExportStockLedger, adminOnly)

	// Operator routes
	v1.GET("/operators", operatorHandlers.ListOperators, adminOnly)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Manufacturing operations server v%s starting on port %s", version, port)
	log.Fatal(e.Start(":" + port))
}
