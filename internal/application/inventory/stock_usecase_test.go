package inventory_test

import (
	"context"
	"testing"

	"github.com/jhoicas/trace-warehouse/internal/application/inventory"
	"github.com/jhoicas/trace-warehouse/internal/domain"
	"github.com/jhoicas/trace-warehouse/internal/domain/entity"
	"github.com/jhoicas/trace-warehouse/internal/domain/scope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRecord(store *memStore, id, sku, supplier string) {
	store.bySKU[sku] = &entity.StockRecord{
		ID: id, SKU: sku, Quantity: 10,
		Location: "Zone A-1", Status: entity.StatusReleased, Supplier: supplier,
	}
}

func TestStockList_FiltraPorScope(t *testing.T) {
	store := newMemStore()
	seedRecord(store, "id-1", "SKU-1", "ACME Corp")
	seedRecord(store, "id-2", "SKU-2", "Globex")
	uc := inventory.NewStockUseCase(&memStockRepo{s: store})

	all, err := uc.List(context.Background(), scope.Open())
	require.NoError(t, err)
	assert.Len(t, all, 2, "el scope abierto ve todo")

	mine, err := uc.List(context.Background(), scope.ForTenant("ACME Corp"))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "SKU-1", mine[0].SKU)
}

func TestStockUpdateFields(t *testing.T) {
	store := newMemStore()
	seedRecord(store, "id-1", "SKU-1", "ACME Corp")
	uc := inventory.NewStockUseCase(&memStockRepo{s: store})
	ctx := context.Background()

	loc := "Zone B-2"
	status := entity.StatusRetained
	require.NoError(t, uc.UpdateFields(ctx, scope.Open(), "id-1", &loc, &status))

	rec := store.bySKU["SKU-1"]
	assert.Equal(t, "Zone B-2", rec.Location)
	assert.Equal(t, entity.StatusRetained, rec.Status)
	assert.Equal(t, int64(10), rec.Quantity, "la cantidad nunca se toca por esta vía")
}

func TestStockUpdateFields_Errores(t *testing.T) {
	store := newMemStore()
	seedRecord(store, "id-1", "SKU-1", "ACME Corp")
	uc := inventory.NewStockUseCase(&memStockRepo{s: store})
	ctx := context.Background()
	loc := "Zone C-1"

	err := uc.UpdateFields(ctx, scope.Open(), "", &loc, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "id vacío")

	bad := "Lost"
	err = uc.UpdateFields(ctx, scope.Open(), "id-1", nil, &bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "status desconocido")

	err = uc.UpdateFields(ctx, scope.Open(), "id-missing", &loc, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = uc.UpdateFields(ctx, scope.ForTenant("Globex"), "id-1", &loc, nil)
	assert.ErrorIs(t, err, domain.ErrForbidden, "registro de otro tenant")
	assert.Equal(t, "Zone A-1", store.bySKU["SKU-1"].Location, "sin efectos al fallar")
}

// flipSupplierRepo simula una carrera: tras el chequeo de scope (GetByID),
// otro actor cambia el supplier del registro antes del UPDATE.
type flipSupplierRepo struct {
	*memStockRepo
	flipTo string
}

func (r *flipSupplierRepo) GetByID(id string) (*entity.StockRecord, error) {
	rec, err := r.memStockRepo.GetByID(id)
	if rec != nil {
		r.s.bySKU[rec.SKU].Supplier = r.flipTo
	}
	return rec, err
}

// Un cambio de supplier entre el chequeo de scope y el UPDATE no deja pasar
// la escritura: el predicado de tenant se reaplica al escribir.
func TestStockUpdateFields_SupplierCambiaEntreChequeoYUpdate(t *testing.T) {
	store := newMemStore()
	seedRecord(store, "id-1", "SKU-1", "ACME Corp")
	repo := &flipSupplierRepo{memStockRepo: &memStockRepo{s: store}, flipTo: "Globex"}
	uc := inventory.NewStockUseCase(repo)

	loc := "Zone B-2"
	err := uc.UpdateFields(context.Background(), scope.ForTenant("ACME Corp"), "id-1", &loc, nil)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, "Zone A-1", store.bySKU["SKU-1"].Location, "el registro ajeno queda intacto")
}
