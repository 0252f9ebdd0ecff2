package analytics

import (
	"context"

	"github.com/jhoicas/trace-warehouse/internal/domain/repository"
)

// ReadRunner ejecuta una función de solo lectura sobre una vista consistente
// de la base (una misma transacción read-only). Todas las consultas hechas
// dentro de fn ven el mismo snapshot del ledger y la proyección.
type ReadRunner interface {
	Read(ctx context.Context, fn func(repo repository.AnalyticsRepository) error) error
}

// ReportGenerator genera el reporte PDF del snapshot de stock.
type ReportGenerator interface {
	GenerateSnapshotPDF(title string, rows []repository.StockMetricsRow) ([]byte, error)
}
