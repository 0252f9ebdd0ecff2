package repository

import (
	"context"
	"time"

	"github.com/jhoicas/trace-warehouse/internal/domain/scope"
	"github.com/shopspring/decimal"
)

// StockMetricsRow fila cruda de la proyección para cálculo de métricas.
// La produce la DB; el caso de uso la convierte en DTOs.
type StockMetricsRow struct {
	SKU         string
	Description string
	Quantity    int64
	Status      string
	Supplier    string
	Location    string
	EntryDate   *time.Time // nil si el registro no tiene fecha de ingreso
}

// DailyFlow total de entradas y salidas de un día calendario.
type DailyFlow struct {
	Date string // YYYY-MM-DD
	In   int64
	Out  int64
}

// SKUOutflow salida acumulada de un SKU en la ventana consultada.
// Quantity llega como NUMERIC de la BD; alimenta la rotación y el promedio
// diario de salidas, que son fraccionarios.
type SKUOutflow struct {
	SKU      string
	Quantity decimal.Decimal
}

// TopMover SKU con mayor volumen movido en la ventana consultada.
type TopMover struct {
	SKU         string
	Description string
	TotalMoved  int64
}

// RecentMovement movimiento reciente con la descripción actual del SKU
// (LEFT JOIN contra la proyección; vacía si el SKU ya no tiene registro).
type RecentMovement struct {
	Timestamp   time.Time
	Type        string
	SKU         string
	Description string
	Quantity    int64
	Details     string
}

// TenantTotals agregados por tenant para el indicador de salud.
// IssueQty es la cantidad en estado distinto de Released.
type TenantTotals struct {
	Tenant   string
	TotalQty int64
	IssueQty int64
}

// AnalyticsRepository define las consultas de lectura del agregador.
// Las implementaciones son read-only y deben ejecutarse sobre una vista
// consistente (misma transacción) cuando se combinan varias consultas.
type AnalyticsRepository interface {
	// StockRows devuelve las filas de la proyección visibles bajo el scope.
	StockRows(ctx context.Context, sc scope.Scope) ([]StockMetricsRow, error)

	// OutflowBySKU devuelve la salida total por SKU desde la fecha dada.
	OutflowBySKU(ctx context.Context, sc scope.Scope, since time.Time) ([]SKUOutflow, error)

	// DailyFlows devuelve entradas/salidas agrupadas por día desde la fecha
	// dada. Los días sin actividad no aparecen; el caso de uso los rellena.
	DailyFlows(ctx context.Context, sc scope.Scope, since time.Time) ([]DailyFlow, error)

	// TopMovers devuelve los `limit` SKUs con más cantidad movida desde la fecha dada.
	TopMovers(ctx context.Context, sc scope.Scope, since time.Time, limit int) ([]TopMover, error)

	// RecentMovements devuelve los últimos `limit` movimientos del scope.
	RecentMovements(ctx context.Context, sc scope.Scope, limit int) ([]RecentMovement, error)

	// TenantHealthTotals devuelve cantidad total y con incidencias por tenant.
	TenantHealthTotals(ctx context.Context, sc scope.Scope) ([]TenantTotals, error)
}
