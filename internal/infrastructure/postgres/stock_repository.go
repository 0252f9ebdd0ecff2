package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/trace-warehouse/internal/domain"
	"github.com/jhoicas/trace-warehouse/internal/domain/entity"
	"github.com/jhoicas/trace-warehouse/internal/domain/repository"
	"github.com/jhoicas/trace-warehouse/internal/domain/scope"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `id, sku, description, quantity, location, status, supplier, entry_date, updated_at`

// GetBySKU obtiene el registro de un SKU, o nil si no existe.
func (r *StockRepo) GetBySKU(sku string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE sku = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, sku))
}

// GetBySKUForUpdate obtiene el registro de un SKU bloqueando la fila
// (SELECT FOR UPDATE) hasta el fin de la transacción. Nil si no existe.
func (r *StockRepo) GetBySKUForUpdate(sku string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE sku = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, sku))
}

// GetByID obtiene un registro por ID, o nil si no existe.
func (r *StockRepo) GetByID(id string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// ListByScope lista los registros visibles bajo el scope, ordenados por SKU.
func (r *StockRepo) ListByScope(sc scope.Scope) ([]*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock`
	var args []any
	if sc.Restricted() {
		query += ` WHERE supplier = $1`
		args = append(args, sc.Tenant())
	}
	query += ` ORDER BY sku`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockRecord
	for rows.Next() {
		rec, err := scanStock(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// Create persiste un registro nuevo.
func (r *StockRepo) Create(rec *entity.StockRecord) error {
	query := `
		INSERT INTO stock (id, sku, description, quantity, location, status, supplier, entry_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.SKU, rec.Description, rec.Quantity, rec.Location,
		rec.Status, rec.Supplier, nullableTime(rec.EntryDate), rec.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create stock record: %w", err)
	}
	return nil
}

// Update sobrescribe todos los campos mutables de un registro.
func (r *StockRepo) Update(rec *entity.StockRecord) error {
	query := `
		UPDATE stock
		SET description = $2, quantity = $3, location = $4, status = $5,
		    supplier = $6, entry_date = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.Description, rec.Quantity, rec.Location, rec.Status,
		rec.Supplier, nullableTime(rec.EntryDate), rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateFields actualiza ubicación y/o estado; los punteros nil no cambian
// nada. Con scope restringido el WHERE repite el predicado de supplier, de
// modo que un cambio de supplier concurrente entre el chequeo del caso de
// uso y este UPDATE no deja pasar la escritura.
func (r *StockRepo) UpdateFields(sc scope.Scope, id string, location, status *string) error {
	query := `
		UPDATE stock
		SET location = COALESCE($2, location),
		    status = COALESCE($3, status),
		    updated_at = now()
		WHERE id = $1`
	args := []any{id, location, status}
	if sc.Restricted() {
		query += ` AND supplier = $4`
		args = append(args, sc.Tenant())
	}
	tag, err := r.q.Exec(context.Background(), query, args...)
	if err != nil {
		return fmt.Errorf("update stock fields: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Los registros nunca se borran: cero filas con scope restringido
		// significa que el registro quedó fuera del tenant.
		if sc.Restricted() {
			return domain.ErrForbidden
		}
		return domain.ErrNotFound
	}
	return nil
}

func (r *StockRepo) scanOne(row pgx.Row) (*entity.StockRecord, error) {
	rec, err := scanStock(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func scanStock(row pgx.Row) (*entity.StockRecord, error) {
	var rec entity.StockRecord
	var entryDate *time.Time
	err := row.Scan(&rec.ID, &rec.SKU, &rec.Description, &rec.Quantity,
		&rec.Location, &rec.Status, &rec.Supplier, &entryDate, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan stock record: %w", err)
	}
	if entryDate != nil {
		rec.EntryDate = *entryDate
	}
	return &rec, nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
