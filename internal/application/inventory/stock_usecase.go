package inventory

import (
	"context"

	"github.com/jhoicas/trace-warehouse/internal/domain"
	"github.com/jhoicas/trace-warehouse/internal/domain/entity"
	"github.com/jhoicas/trace-warehouse/internal/domain/repository"
	"github.com/jhoicas/trace-warehouse/internal/domain/scope"
)

// StockUseCase lecturas de la proyección y actualización de campos auxiliares
// (ubicación/estado). La cantidad solo la muta el ApplyMovementUseCase.
type StockUseCase struct {
	stockRepo repository.StockRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(stockRepo repository.StockRepository) *StockUseCase {
	return &StockUseCase{stockRepo: stockRepo}
}

// List devuelve los registros de stock visibles bajo el scope.
func (uc *StockUseCase) List(_ context.Context, sc scope.Scope) ([]*entity.StockRecord, error) {
	return uc.stockRepo.ListByScope(sc)
}

// UpdateFields actualiza ubicación y/o estado de un registro. Falla con
// ErrNotFound si el id no existe y con ErrForbidden si el registro queda
// fuera del scope; en ambos casos sin efectos observables.
func (uc *StockUseCase) UpdateFields(_ context.Context, sc scope.Scope, id string, location, status *string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	if status != nil && !entity.ValidStatus(*status) {
		return domain.ErrInvalidInput
	}
	rec, err := uc.stockRepo.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return domain.ErrNotFound
	}
	if !sc.Allows(rec.Supplier) {
		return domain.ErrForbidden
	}
	return uc.stockRepo.UpdateFields(sc, id, location, status)
}
