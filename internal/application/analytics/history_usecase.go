package analytics

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/trace-warehouse/internal/application/dto"
	"github.com/jhoicas/trace-warehouse/internal/domain"
	"github.com/jhoicas/trace-warehouse/internal/domain/entity"
	"github.com/jhoicas/trace-warehouse/internal/domain/repository"
	"github.com/jhoicas/trace-warehouse/internal/domain/scope"
)

// HistoryUseCase búsquedas acotadas sobre el ledger de movimientos.
type HistoryUseCase struct {
	movRepo repository.MovementRepository
}

// NewHistoryUseCase construye el caso de uso de historial.
func NewHistoryUseCase(movRepo repository.MovementRepository) *HistoryUseCase {
	return &HistoryUseCase{movRepo: movRepo}
}

// Search filtra el historial por texto, supplier, tipo y rango de fechas.
// El resultado viene del más reciente al más antiguo, acotado a 100 filas.
func (uc *HistoryUseCase) Search(_ context.Context, sc scope.Scope, req dto.SearchMovementsRequest) ([]dto.MovementResponse, error) {
	return uc.search(sc, req, repository.MaxSearchRows)
}

func (uc *HistoryUseCase) search(sc scope.Scope, req dto.SearchMovementsRequest, limit int) ([]dto.MovementResponse, error) {
	filter, err := buildFilter(req, limit)
	if err != nil {
		return nil, err
	}
	movs, err := uc.movRepo.Search(sc, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, movementResponse(m))
	}
	return out, nil
}

// buildFilter valida los filtros de la petición y los traduce al filtro del
// repositorio. Las fechas son inclusivas en ambos extremos del día.
func buildFilter(req dto.SearchMovementsRequest, limit int) (repository.MovementFilter, error) {
	filter := repository.MovementFilter{
		Search:   strings.TrimSpace(req.Search),
		Supplier: strings.TrimSpace(req.Supplier),
		Limit:    limit,
	}
	if req.Type != "" {
		if !entity.ValidMovementType(req.Type) {
			return filter, domain.ErrInvalidInput
		}
		filter.Type = req.Type
	}
	if req.StartDate != "" {
		day, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return filter, domain.ErrInvalidInput
		}
		from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local)
		filter.From = &from
	}
	if req.EndDate != "" {
		day, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return filter, domain.ErrInvalidInput
		}
		to := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, time.Local)
		filter.To = &to
	}
	return filter, nil
}

func movementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          m.ID,
		Timestamp:   m.Timestamp,
		Type:        m.Type,
		Source:      m.Source,
		SKU:         m.SKU,
		Quantity:    m.Quantity,
		Tenant:      m.Tenant,
		Details:     m.Details,
		DocumentRef: m.DocumentRef,
	}
}
