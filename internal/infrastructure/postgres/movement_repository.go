package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/trace-warehouse/internal/domain/entity"
	"github.com/jhoicas/trace-warehouse/internal/domain/repository"
	"github.com/jhoicas/trace-warehouse/internal/domain/scope"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// El ledger es append-only: nunca se actualizan ni borran filas.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append inserta un movimiento y devuelve el ID asignado por la secuencia.
func (r *MovementRepo) Append(m *entity.Movement) (int64, error) {
	query := `
		INSERT INTO movements (type, source, sku, quantity, tenant, details, document_ref, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		m.Type, m.Source, m.SKU, m.Quantity, m.Tenant, m.Details, m.DocumentRef, m.Timestamp,
	).Scan(&m.ID)
	if err != nil {
		return 0, fmt.Errorf("append movement: %w", err)
	}
	return m.ID, nil
}

// Search filtra el ledger del más reciente al más antiguo. El scope se aplica
// sobre la columna tenant; las filas históricas sin tenant estructural caen
// al texto de details como respaldo.
func (r *MovementRepo) Search(sc scope.Scope, filter repository.MovementFilter) ([]*entity.Movement, error) {
	query := `
		SELECT id, type, source, sku, quantity, tenant, details, document_ref, ts
		FROM movements WHERE 1=1`
	var args []any
	pos := 1

	if sc.Restricted() {
		query += fmt.Sprintf(" AND (tenant = $%d OR (tenant = '' AND details ILIKE '%%' || $%d || '%%'))", pos, pos)
		args = append(args, sc.Tenant())
		pos++
	}
	if filter.Supplier != "" {
		query += fmt.Sprintf(" AND (tenant = $%d OR (tenant = '' AND details ILIKE '%%' || $%d || '%%'))", pos, pos)
		args = append(args, filter.Supplier)
		pos++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (sku ILIKE '%%' || $%d || '%%' OR details ILIKE '%%' || $%d || '%%')", pos, pos)
		args = append(args, filter.Search)
		pos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND ts >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND ts <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}

	limit := filter.Limit
	if limit <= 0 || limit > repository.MaxExportRows {
		limit = repository.MaxSearchRows
	}
	query += fmt.Sprintf(" ORDER BY ts DESC, id DESC LIMIT $%d", pos)
	args = append(args, limit)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("search movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.Type, &m.Source, &m.SKU, &m.Quantity,
			&m.Tenant, &m.Details, &m.DocumentRef, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
