package http

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/trace-warehouse/internal/application/dto"
	"github.com/jhoicas/trace-warehouse/internal/application/inventory"
	"github.com/jhoicas/trace-warehouse/internal/infrastructure/ingest"
)

// Tamaño máximo aceptado para documentos subidos (8 MiB).
const maxDocumentSize = 8 << 20

// AnalyzeHandler análisis de documentos de proveedores e importación confirmada.
type AnalyzeHandler struct {
	applyUC *inventory.ApplyMovementUseCase
}

// NewAnalyzeHandler construye el handler de análisis.
func NewAnalyzeHandler(applyUC *inventory.ApplyMovementUseCase) *AnalyzeHandler {
	return &AnalyzeHandler{applyUC: applyUC}
}

// Analyze godoc
// @Summary      Analizar documento de proveedor
// @Description  Extrae líneas candidatas de un remito XML o planilla CSV.
//
//	No persiste nada; las líneas vuelven al cliente para revisión.
//
// @Tags         analyze
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        document  formData  file  true  "Remito XML o planilla CSV"
// @Success      200  {object}  dto.AnalyzeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analyze [post]
func (h *AnalyzeHandler) Analyze(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("document")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "archivo 'document' requerido"})
	}
	if fileHeader.Size > maxDocumentSize {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "documento demasiado grande"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo abrir el documento"})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el documento"})
	}

	items, err := ingest.ParseDocument(fileHeader.Filename, data)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.AnalyzeResponse{
		Message: "análisis completado",
		Items:   items,
	})
}

// Confirm godoc
// @Summary      Confirmar importación
// @Description  Aplica un IN por cada línea revisada, todo o nada: si una
//
//	línea falla se revierte el lote completo.
//
// @Tags         analyze
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConfirmImportRequest  true  "líneas revisadas"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/analyze/confirm [post]
func (h *AnalyzeHandler) Confirm(c *fiber.Ctx) error {
	var in dto.ConfirmImportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.applyUC.ConfirmImport(c.Context(), GetScope(c), in.Items); err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "importación confirmada",
		"imported": len(in.Items),
	})
}
