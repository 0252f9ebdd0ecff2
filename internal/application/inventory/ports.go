package inventory

import (
	"context"

	"github.com/jhoicas/trace-warehouse/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el append al ledger y la
// actualización de la proyección de stock sean una sola unidad atómica:
// o ambas quedan persistidas o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error) error
}
