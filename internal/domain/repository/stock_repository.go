package repository

import (
	"github.com/jhoicas/trace-warehouse/internal/domain/entity"
	"github.com/jhoicas/trace-warehouse/internal/domain/scope"
)

// StockRepository define el puerto de la proyección de stock (estado actual por SKU).
// Usado dentro de transacciones para garantizar consistencia con el ledger.
type StockRepository interface {
	// GetBySKU devuelve el registro del SKU o nil si no existe.
	GetBySKU(sku string) (*entity.StockRecord, error)
	// GetBySKUForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	// Devuelve nil si el SKU no tiene registro.
	GetBySKUForUpdate(sku string) (*entity.StockRecord, error)
	GetByID(id string) (*entity.StockRecord, error)
	ListByScope(sc scope.Scope) ([]*entity.StockRecord, error)
	Create(rec *entity.StockRecord) error
	Update(rec *entity.StockRecord) error
	// UpdateFields actualiza solo ubicación y/o estado (campos nil se conservan).
	// El scope se vuelve a aplicar en el UPDATE mismo: si el registro ya no
	// pertenece al tenant al momento de escribir, no se toca nada.
	UpdateFields(sc scope.Scope, id string, location, status *string) error
}
