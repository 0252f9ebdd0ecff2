package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/trace-warehouse/internal/domain/repository"
	"github.com/jhoicas/trace-warehouse/internal/domain/scope"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de agregación sobre PostgreSQL. Pensado para
// ejecutarse atado a una transacción read-only (ver TxRunner.Read) de modo
// que todas las consultas de un snapshot vean la misma vista.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// StockRows devuelve las filas de la proyección visibles bajo el scope.
func (r *AnalyticsRepo) StockRows(ctx context.Context, sc scope.Scope) ([]repository.StockMetricsRow, error) {
	query := `SELECT sku, description, quantity, status, supplier, location, entry_date FROM stock`
	var args []any
	if sc.Restricted() {
		query += ` WHERE supplier = $1`
		args = append(args, sc.Tenant())
	}
	query += ` ORDER BY sku`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("stock rows: %w", err)
	}
	defer rows.Close()

	var list []repository.StockMetricsRow
	for rows.Next() {
		var row repository.StockMetricsRow
		if err := rows.Scan(&row.SKU, &row.Description, &row.Quantity,
			&row.Status, &row.Supplier, &row.Location, &row.EntryDate); err != nil {
			return nil, fmt.Errorf("scan stock row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// OutflowBySKU devuelve la salida total por SKU desde la fecha dada.
// El total viaja como NUMERIC y se escanea a decimal vía el codec
// registrado en el pool (pgxdecimal).
func (r *AnalyticsRepo) OutflowBySKU(ctx context.Context, sc scope.Scope, since time.Time) ([]repository.SKUOutflow, error) {
	query := `
		SELECT sku, SUM(quantity)::numeric
		FROM movements
		WHERE type = 'OUT' AND ts >= $1`
	args := []any{since}
	if sc.Restricted() {
		query += ` AND tenant = $2`
		args = append(args, sc.Tenant())
	}
	query += ` GROUP BY sku`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("outflow by sku: %w", err)
	}
	defer rows.Close()

	var list []repository.SKUOutflow
	for rows.Next() {
		var o repository.SKUOutflow
		if err := rows.Scan(&o.SKU, &o.Quantity); err != nil {
			return nil, fmt.Errorf("scan outflow: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// DailyFlows devuelve entradas y salidas agrupadas por día calendario.
func (r *AnalyticsRepo) DailyFlows(ctx context.Context, sc scope.Scope, since time.Time) ([]repository.DailyFlow, error) {
	query := `
		SELECT to_char(ts, 'YYYY-MM-DD') AS day,
		       COALESCE(SUM(quantity) FILTER (WHERE type = 'IN'), 0),
		       COALESCE(SUM(quantity) FILTER (WHERE type = 'OUT'), 0)
		FROM movements
		WHERE ts >= $1`
	args := []any{since}
	if sc.Restricted() {
		query += ` AND tenant = $2`
		args = append(args, sc.Tenant())
	}
	query += ` GROUP BY day ORDER BY day`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("daily flows: %w", err)
	}
	defer rows.Close()

	var list []repository.DailyFlow
	for rows.Next() {
		var f repository.DailyFlow
		if err := rows.Scan(&f.Date, &f.In, &f.Out); err != nil {
			return nil, fmt.Errorf("scan daily flow: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

// TopMovers devuelve los SKUs con más cantidad movida desde la fecha dada.
func (r *AnalyticsRepo) TopMovers(ctx context.Context, sc scope.Scope, since time.Time, limit int) ([]repository.TopMover, error) {
	query := `
		SELECT m.sku, COALESCE(s.description, ''), SUM(m.quantity) AS total_moved
		FROM movements m
		LEFT JOIN stock s ON s.sku = m.sku
		WHERE m.ts >= $1`
	args := []any{since}
	pos := 2
	if sc.Restricted() {
		query += fmt.Sprintf(" AND m.tenant = $%d", pos)
		args = append(args, sc.Tenant())
		pos++
	}
	query += fmt.Sprintf(" GROUP BY m.sku, s.description ORDER BY total_moved DESC LIMIT $%d", pos)
	args = append(args, limit)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("top movers: %w", err)
	}
	defer rows.Close()

	var list []repository.TopMover
	for rows.Next() {
		var t repository.TopMover
		if err := rows.Scan(&t.SKU, &t.Description, &t.TotalMoved); err != nil {
			return nil, fmt.Errorf("scan top mover: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// RecentMovements devuelve los últimos movimientos con la descripción actual del SKU.
func (r *AnalyticsRepo) RecentMovements(ctx context.Context, sc scope.Scope, limit int) ([]repository.RecentMovement, error) {
	query := `
		SELECT m.ts, m.type, m.sku, COALESCE(s.description, ''), m.quantity, m.details
		FROM movements m
		LEFT JOIN stock s ON s.sku = m.sku`
	var args []any
	pos := 1
	if sc.Restricted() {
		query += fmt.Sprintf(" WHERE m.tenant = $%d", pos)
		args = append(args, sc.Tenant())
		pos++
	}
	query += fmt.Sprintf(" ORDER BY m.ts DESC, m.id DESC LIMIT $%d", pos)
	args = append(args, limit)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("recent movements: %w", err)
	}
	defer rows.Close()

	var list []repository.RecentMovement
	for rows.Next() {
		var m repository.RecentMovement
		if err := rows.Scan(&m.Timestamp, &m.Type, &m.SKU, &m.Description, &m.Quantity, &m.Details); err != nil {
			return nil, fmt.Errorf("scan recent movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// TenantHealthTotals devuelve cantidad total y con incidencias por tenant.
func (r *AnalyticsRepo) TenantHealthTotals(ctx context.Context, sc scope.Scope) ([]repository.TenantTotals, error) {
	query := `
		SELECT supplier,
		       SUM(quantity),
		       COALESCE(SUM(quantity) FILTER (WHERE status <> 'Released'), 0)
		FROM stock`
	var args []any
	if sc.Restricted() {
		query += ` WHERE supplier = $1`
		args = append(args, sc.Tenant())
	}
	query += ` GROUP BY supplier ORDER BY supplier`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("tenant health totals: %w", err)
	}
	defer rows.Close()

	var list []repository.TenantTotals
	for rows.Next() {
		var t repository.TenantTotals
		if err := rows.Scan(&t.Tenant, &t.TotalQty, &t.IssueQty); err != nil {
			return nil, fmt.Errorf("scan tenant totals: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
