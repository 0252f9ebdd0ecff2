package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/trace-warehouse/internal/application/analytics"
	"github.com/jhoicas/trace-warehouse/internal/application/auth"
	"github.com/jhoicas/trace-warehouse/internal/application/inventory"
	"github.com/jhoicas/trace-warehouse/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	StockUC   *inventory.StockUseCase
	ApplyUC   *inventory.ApplyMovementUseCase
	MetricsUC *appanalytics.MetricsUseCase
	HistoryUC *appanalytics.HistoryUseCase
	ExportUC  *appanalytics.ExportUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Usuarios (solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.AuthUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)

	// Stock (protegido)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC, deps.ApplyUC, deps.MetricsUC)
	stock.Get("/", stockHandler.List)
	stock.Get("/stats", stockHandler.Stats)
	stock.Post("/movements", stockHandler.RegisterMovement)
	stock.Put("/:id", stockHandler.Update)

	// Análisis de documentos (protegido)
	analyzeHandler := NewAnalyzeHandler(deps.ApplyUC)
	protected.Post("/analyze", analyzeHandler.Analyze)
	protected.Post("/analyze/confirm", analyzeHandler.Confirm)

	// Métricas y exportaciones (protegido)
	metrics := protected.Group("/metrics")
	metricsHandler := NewMetricsHandler(deps.MetricsUC, deps.HistoryUC, deps.ExportUC)
	metrics.Get("/", metricsHandler.Get)
	metrics.Get("/movements", metricsHandler.SearchMovements)
	metrics.Get("/companies", metricsHandler.TenantHealth)
	metrics.Get("/export/metrics", metricsHandler.ExportMetrics)
	metrics.Get("/export/history", metricsHandler.ExportHistory)
	metrics.Get("/export/report.pdf", metricsHandler.ExportReportPDF)
}
