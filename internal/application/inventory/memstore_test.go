package inventory_test

import (
	"context"
	"sync"

	"github.com/jhoicas/trace-warehouse/internal/domain"
	"github.com/jhoicas/trace-warehouse/internal/domain/entity"
	"github.com/jhoicas/trace-warehouse/internal/domain/repository"
	"github.com/jhoicas/trace-warehouse/internal/domain/scope"
)

// memStore estado compartido de los fakes en memoria. El TxRunner de test
// serializa las transacciones con un mutex y restaura un snapshot ante error,
// imitando el Commit/Rollback con bloqueo de fila de la implementación real.
type memStore struct {
	mu        sync.Mutex
	bySKU     map[string]*entity.StockRecord
	movements []*entity.Movement
	nextMovID int64
}

func newMemStore() *memStore {
	return &memStore{bySKU: make(map[string]*entity.StockRecord)}
}

func (s *memStore) snapshot() (map[string]*entity.StockRecord, int) {
	stock := make(map[string]*entity.StockRecord, len(s.bySKU))
	for sku, rec := range s.bySKU {
		stock[sku] = copyRecord(rec)
	}
	return stock, len(s.movements)
}

func (s *memStore) restore(stock map[string]*entity.StockRecord, movCount int) {
	s.bySKU = stock
	s.movements = s.movements[:movCount]
}

func copyRecord(rec *entity.StockRecord) *entity.StockRecord {
	c := *rec
	return &c
}

// memTxRunner implementa inventory.TxRunner sobre el memStore.
type memTxRunner struct {
	s *memStore
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stock, movCount := r.s.snapshot()
	err := fn(&memMovementRepo{s: r.s}, &memStockRepo{s: r.s})
	if err != nil {
		r.s.restore(stock, movCount)
		return err
	}
	return nil
}

// memStockRepo implementa repository.StockRepository. Solo se usa dentro del
// memTxRunner, que ya tiene el lock tomado.
type memStockRepo struct {
	s *memStore
}

func (r *memStockRepo) GetBySKU(sku string) (*entity.StockRecord, error) {
	rec, ok := r.s.bySKU[sku]
	if !ok {
		return nil, nil
	}
	return copyRecord(rec), nil
}

func (r *memStockRepo) GetBySKUForUpdate(sku string) (*entity.StockRecord, error) {
	return r.GetBySKU(sku)
}

func (r *memStockRepo) GetByID(id string) (*entity.StockRecord, error) {
	for _, rec := range r.s.bySKU {
		if rec.ID == id {
			return copyRecord(rec), nil
		}
	}
	return nil, nil
}

func (r *memStockRepo) ListByScope(sc scope.Scope) ([]*entity.StockRecord, error) {
	var list []*entity.StockRecord
	for _, rec := range r.s.bySKU {
		if sc.Allows(rec.Supplier) {
			list = append(list, copyRecord(rec))
		}
	}
	return list, nil
}

func (r *memStockRepo) Create(rec *entity.StockRecord) error {
	r.s.bySKU[rec.SKU] = copyRecord(rec)
	return nil
}

func (r *memStockRepo) Update(rec *entity.StockRecord) error {
	r.s.bySKU[rec.SKU] = copyRecord(rec)
	return nil
}

func (r *memStockRepo) UpdateFields(sc scope.Scope, id string, location, status *string) error {
	for _, rec := range r.s.bySKU {
		if rec.ID == id {
			// Como en la implementación real, el scope se reaplica al escribir.
			if !sc.Allows(rec.Supplier) {
				return domain.ErrForbidden
			}
			if location != nil {
				rec.Location = *location
			}
			if status != nil {
				rec.Status = *status
			}
			return nil
		}
	}
	if sc.Restricted() {
		return domain.ErrForbidden
	}
	return domain.ErrNotFound
}

// memMovementRepo implementa repository.MovementRepository sobre el memStore.
type memMovementRepo struct {
	s *memStore
}

func (r *memMovementRepo) Append(m *entity.Movement) (int64, error) {
	r.s.nextMovID++
	m.ID = r.s.nextMovID
	c := *m
	r.s.movements = append(r.s.movements, &c)
	return m.ID, nil
}

func (r *memMovementRepo) Search(sc scope.Scope, filter repository.MovementFilter) ([]*entity.Movement, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = repository.MaxSearchRows
	}
	var list []*entity.Movement
	for i := len(r.s.movements) - 1; i >= 0 && len(list) < limit; i-- {
		m := r.s.movements[i]
		if !sc.Allows(m.Tenant) {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		c := *m
		list = append(list, &c)
	}
	return list, nil
}
