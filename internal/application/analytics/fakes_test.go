package analytics_test

import (
	"context"
	"time"

	"github.com/jhoicas/trace-warehouse/internal/domain/entity"
	"github.com/jhoicas/trace-warehouse/internal/domain/repository"
	"github.com/jhoicas/trace-warehouse/internal/domain/scope"
)

// fakeAnalyticsRepo devuelve datos fijos; los tests arman el escenario y el
// caso de uso hace la aritmética.
type fakeAnalyticsRepo struct {
	rows     []repository.StockMetricsRow
	outflows []repository.SKUOutflow
	flows    []repository.DailyFlow
	top      []repository.TopMover
	recent   []repository.RecentMovement
	totals   []repository.TenantTotals
}

func (f *fakeAnalyticsRepo) StockRows(context.Context, scope.Scope) ([]repository.StockMetricsRow, error) {
	return f.rows, nil
}

func (f *fakeAnalyticsRepo) OutflowBySKU(context.Context, scope.Scope, time.Time) ([]repository.SKUOutflow, error) {
	return f.outflows, nil
}

func (f *fakeAnalyticsRepo) DailyFlows(context.Context, scope.Scope, time.Time) ([]repository.DailyFlow, error) {
	return f.flows, nil
}

func (f *fakeAnalyticsRepo) TopMovers(context.Context, scope.Scope, time.Time, int) ([]repository.TopMover, error) {
	return f.top, nil
}

func (f *fakeAnalyticsRepo) RecentMovements(context.Context, scope.Scope, int) ([]repository.RecentMovement, error) {
	return f.recent, nil
}

func (f *fakeAnalyticsRepo) TenantHealthTotals(context.Context, scope.Scope) ([]repository.TenantTotals, error) {
	return f.totals, nil
}

// fakeReadRunner ejecuta el callback directo contra el fake, sin transacción.
type fakeReadRunner struct {
	repo repository.AnalyticsRepository
}

func (r fakeReadRunner) Read(_ context.Context, fn func(repo repository.AnalyticsRepository) error) error {
	return fn(r.repo)
}

// fakeMovementRepo captura el filtro recibido y devuelve movimientos fijos.
type fakeMovementRepo struct {
	movements  []*entity.Movement
	lastScope  scope.Scope
	lastFilter repository.MovementFilter
}

func (f *fakeMovementRepo) Append(*entity.Movement) (int64, error) {
	panic("el ledger no se escribe desde analytics")
}

func (f *fakeMovementRepo) Search(sc scope.Scope, filter repository.MovementFilter) ([]*entity.Movement, error) {
	f.lastScope = sc
	f.lastFilter = filter
	if filter.Limit < len(f.movements) {
		return f.movements[:filter.Limit], nil
	}
	return f.movements, nil
}
