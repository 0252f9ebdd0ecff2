package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/trace-warehouse/internal/application/analytics"
	"github.com/jhoicas/trace-warehouse/internal/application/dto"
	"github.com/jhoicas/trace-warehouse/internal/application/inventory"
	"github.com/jhoicas/trace-warehouse/internal/domain/entity"
)

// StockHandler lecturas de la proyección, ocupación y registro de movimientos.
type StockHandler struct {
	stockUC   *inventory.StockUseCase
	applyUC   *inventory.ApplyMovementUseCase
	metricsUC *analytics.MetricsUseCase
}

// NewStockHandler construye el handler de stock.
func NewStockHandler(stockUC *inventory.StockUseCase, applyUC *inventory.ApplyMovementUseCase, metricsUC *analytics.MetricsUseCase) *StockHandler {
	return &StockHandler{stockUC: stockUC, applyUC: applyUC, metricsUC: metricsUC}
}

// List godoc
// @Summary      Listar stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        company  query  string  false  "Estrechar vista a una empresa (solo admin)"
// @Success      200  {array}   dto.StockRecordResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	records, err := h.stockUC.List(c.Context(), GetScope(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.StockRecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, stockResponse(rec))
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar ubicación y/o estado de un registro
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del registro"
// @Param        body  body  dto.UpdateStockRequest  true  "location y/o status"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [put]
func (h *StockHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Location == nil && in.Status == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "location o status son requeridos"})
	}
	err := h.stockUC.UpdateFields(c.Context(), GetScope(c), c.Params("id"), in.Location, in.Status)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "registro actualizado"})
}

// Stats godoc
// @Summary      Ocupación por zona física
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ZoneOccupancy
// @Router       /api/stock/stats [get]
func (h *StockHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.metricsUC.OccupancyStats(c.Context(), GetScope(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(stats)
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  Aplica un IN u OUT de forma atómica: append al ledger y
//
//	actualización de la proyección en una misma transacción.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "type, sku, quantity y campos auxiliares"
// @Success      201   {object}  dto.StockRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := inventory.MovementInput{
		Type:        in.Type,
		SKU:         in.SKU,
		Quantity:    in.Quantity,
		Description: in.Description,
		Location:    in.Location,
		Status:      in.Status,
		Supplier:    in.Supplier,
		DocumentRef: in.DocumentRef,
	}
	if in.EntryDate != "" {
		day, err := time.Parse("2006-01-02", in.EntryDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "entry_date inválida (YYYY-MM-DD)"})
		}
		input.EntryDate = &day
	}
	rec, err := h.applyUC.ApplyMovement(c.Context(), GetScope(c), input)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(stockResponse(rec))
}

func stockResponse(rec *entity.StockRecord) dto.StockRecordResponse {
	return dto.StockRecordResponse{
		ID:          rec.ID,
		SKU:         rec.SKU,
		Description: rec.Description,
		Quantity:    rec.Quantity,
		Location:    rec.Location,
		Status:      rec.Status,
		Supplier:    rec.Supplier,
		EntryDate:   rec.EntryDate,
		UpdatedAt:   rec.UpdatedAt,
	}
}
