package repository

import (
	"time"

	"github.com/jhoicas/trace-warehouse/internal/domain/entity"
	"github.com/jhoicas/trace-warehouse/internal/domain/scope"
)

// Topes de filas para lecturas del ledger.
const (
	MaxSearchRows = 100  // consultas interactivas
	MaxExportRows = 1000 // exportaciones
)

// MovementFilter criterios de búsqueda sobre el ledger.
// Supplier solo aplica con scope abierto; con scope restringido el tenant
// del scope manda siempre.
type MovementFilter struct {
	Search   string // substring sobre SKU, descripción y details (case-insensitive)
	Supplier string
	Type     string // IN u OUT; vacío = ambos
	From     *time.Time
	To       *time.Time
	Limit    int // lo acota el caso de uso; el repo aplica MaxSearchRows si viene en cero
}

// MovementRepository define el puerto del ledger append-only.
// No existen operaciones de update ni delete: los movimientos son inmutables.
type MovementRepository interface {
	// Append inserta el movimiento y devuelve su ID monótono asignado por la BD.
	Append(m *entity.Movement) (int64, error)
	// Search devuelve movimientos ordenados por timestamp descendente,
	// acotados por filter.Limit.
	Search(sc scope.Scope, filter MovementFilter) ([]*entity.Movement, error)
}
