package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/trace-warehouse/internal/application/analytics"
	"github.com/jhoicas/trace-warehouse/internal/application/dto"
)

// MetricsHandler snapshot de métricas, búsqueda de historial y exportaciones.
type MetricsHandler struct {
	metricsUC *analytics.MetricsUseCase
	historyUC *analytics.HistoryUseCase
	exportUC  *analytics.ExportUseCase
}

// NewMetricsHandler construye el handler de métricas.
func NewMetricsHandler(metricsUC *analytics.MetricsUseCase, historyUC *analytics.HistoryUseCase, exportUC *analytics.ExportUseCase) *MetricsHandler {
	return &MetricsHandler{metricsUC: metricsUC, historyUC: historyUC, exportUC: exportUC}
}

// Get godoc
// @Summary      Snapshot de métricas
// @Description  KPIs, serie diaria, top movers, actividad reciente,
//
//	predicciones de agotamiento y alertas, todo de una misma
//	vista de lectura.
//
// @Tags         metrics
// @Security     Bearer
// @Produce      json
// @Param        company  query  string  false  "Estrechar vista a una empresa (solo admin)"
// @Success      200  {object}  dto.MetricsSnapshot
// @Router       /api/metrics [get]
func (h *MetricsHandler) Get(c *fiber.Ctx) error {
	snap, err := h.metricsUC.ComputeMetrics(c.Context(), GetScope(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(snap)
}

// SearchMovements godoc
// @Summary      Buscar en el historial de movimientos
// @Tags         metrics
// @Security     Bearer
// @Produce      json
// @Param        search     query  string  false  "Texto en SKU o details"
// @Param        supplier   query  string  false  "Filtrar por supplier"
// @Param        type       query  string  false  "IN u OUT"
// @Param        startDate  query  string  false  "YYYY-MM-DD inclusivo"
// @Param        endDate    query  string  false  "YYYY-MM-DD inclusivo"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/metrics/movements [get]
func (h *MetricsHandler) SearchMovements(c *fiber.Ctx) error {
	var req dto.SearchMovementsRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	movs, err := h.historyUC.Search(c.Context(), GetScope(c), req)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(movs)
}

// TenantHealth godoc
// @Summary      Salud por empresa
// @Tags         metrics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TenantHealthDTO
// @Router       /api/metrics/companies [get]
func (h *MetricsHandler) TenantHealth(c *fiber.Ctx) error {
	health, err := h.metricsUC.TenantHealth(c.Context(), GetScope(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(health)
}

// ExportMetrics godoc
// @Summary      Exportar snapshot de stock a CSV
// @Tags         metrics
// @Security     Bearer
// @Produce      text/csv
// @Param        encoding  query  string  false  "latin1 para hojas de cálculo legadas"
// @Success      200  {string}  string
// @Router       /api/metrics/export/metrics [get]
func (h *MetricsHandler) ExportMetrics(c *fiber.Ctx) error {
	data, err := h.exportUC.StockSnapshotCSV(c.Context(), GetScope(c), c.Query("encoding") == "latin1")
	if err != nil {
		return writeDomainError(c, err)
	}
	return sendCSV(c, "stock_snapshot.csv", data)
}

// ExportHistory godoc
// @Summary      Exportar historial de movimientos a CSV
// @Tags         metrics
// @Security     Bearer
// @Produce      text/csv
// @Param        search     query  string  false  "Texto en SKU o details"
// @Param        supplier   query  string  false  "Filtrar por supplier"
// @Param        type       query  string  false  "IN u OUT"
// @Param        startDate  query  string  false  "YYYY-MM-DD inclusivo"
// @Param        endDate    query  string  false  "YYYY-MM-DD inclusivo"
// @Param        encoding   query  string  false  "latin1 para hojas de cálculo legadas"
// @Success      200  {string}  string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/metrics/export/history [get]
func (h *MetricsHandler) ExportHistory(c *fiber.Ctx) error {
	var req dto.SearchMovementsRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	data, err := h.exportUC.MovementHistoryCSV(c.Context(), GetScope(c), req, c.Query("encoding") == "latin1")
	if err != nil {
		return writeDomainError(c, err)
	}
	return sendCSV(c, "movement_history.csv", data)
}

// ExportReportPDF godoc
// @Summary      Reporte PDF del snapshot de stock
// @Tags         metrics
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {string}  string
// @Router       /api/metrics/export/report.pdf [get]
func (h *MetricsHandler) ExportReportPDF(c *fiber.Ctx) error {
	data, err := h.exportUC.StockSnapshotPDF(c.Context(), GetScope(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock_report.pdf"`)
	return c.Send(data)
}

func sendCSV(c *fiber.Ctx, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
