package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/jhoicas/trace-warehouse/internal/application/dto"
	"github.com/jhoicas/trace-warehouse/internal/domain/entity"
	"github.com/jhoicas/trace-warehouse/internal/domain/repository"
	"github.com/jhoicas/trace-warehouse/internal/domain/scope"
	"github.com/jhoicas/trace-warehouse/internal/domain/warehouse"
	"github.com/shopspring/decimal"
)

// Ventanas y límites de los agregados.
const (
	turnoverWindowDays  = 30
	seriesDays          = 7
	topMoversLimit      = 5
	recentActivityLimit = 10
	deadStockDays       = 90
)

// MetricsUseCase arma la fotografía de métricas del scope. Todas las
// consultas de un snapshot corren dentro de un mismo ReadRunner.Read para
// que los agregados sean consistentes entre sí.
type MetricsUseCase struct {
	reads         ReadRunner
	zones         warehouse.ZoneTable
	totalCapacity int64
}

// NewMetricsUseCase construye el caso de uso de métricas.
func NewMetricsUseCase(reads ReadRunner, zones warehouse.ZoneTable, totalCapacity int64) *MetricsUseCase {
	return &MetricsUseCase{reads: reads, zones: zones, totalCapacity: totalCapacity}
}

// ComputeMetrics calcula el snapshot completo: totales por estado, rotación,
// ocupación, serie diaria de 7 días, top movers, actividad reciente,
// predicciones de agotamiento y alertas.
func (uc *MetricsUseCase) ComputeMetrics(ctx context.Context, sc scope.Scope) (*dto.MetricsSnapshot, error) {
	var snap *dto.MetricsSnapshot
	err := uc.reads.Read(ctx, func(repo repository.AnalyticsRepository) error {
		now := time.Now()
		since30 := now.AddDate(0, 0, -turnoverWindowDays)
		since7 := startOfDay(now).AddDate(0, 0, -(seriesDays - 1))

		rows, err := repo.StockRows(ctx, sc)
		if err != nil {
			return err
		}
		outflows, err := repo.OutflowBySKU(ctx, sc, since30)
		if err != nil {
			return err
		}
		flows, err := repo.DailyFlows(ctx, sc, since7)
		if err != nil {
			return err
		}
		top, err := repo.TopMovers(ctx, sc, since30, topMoversLimit)
		if err != nil {
			return err
		}
		recent, err := repo.RecentMovements(ctx, sc, recentActivityLimit)
		if err != nil {
			return err
		}

		snap = uc.buildSnapshot(now, rows, outflows, flows, top, recent)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// OccupancyStats agrupa el stock por zona física y devuelve la ocupación
// contra la capacidad configurada de cada zona.
func (uc *MetricsUseCase) OccupancyStats(ctx context.Context, sc scope.Scope) ([]dto.ZoneOccupancy, error) {
	var out []dto.ZoneOccupancy
	err := uc.reads.Read(ctx, func(repo repository.AnalyticsRepository) error {
		rows, err := repo.StockRows(ctx, sc)
		if err != nil {
			return err
		}
		used := make(map[string]int64)
		for _, r := range rows {
			zone := uc.zones.Match(r.Location)
			used[zone.Name] += r.Quantity
		}
		out = make([]dto.ZoneOccupancy, 0, len(uc.zones.Zones)+1)
		for _, z := range append(uc.zones.Zones, uc.zones.Default) {
			qty, ok := used[z.Name]
			if !ok {
				continue
			}
			out = append(out, dto.ZoneOccupancy{
				Name:    z.Name,
				Used:    qty,
				Max:     z.Max,
				Percent: warehouse.Percent(qty, z.Max),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// TenantHealth calcula el índice de salud por tenant:
// 100 menos el porcentaje redondeado de unidades con incidencias.
func (uc *MetricsUseCase) TenantHealth(ctx context.Context, sc scope.Scope) ([]dto.TenantHealthDTO, error) {
	var out []dto.TenantHealthDTO
	err := uc.reads.Read(ctx, func(repo repository.AnalyticsRepository) error {
		totals, err := repo.TenantHealthTotals(ctx, sc)
		if err != nil {
			return err
		}
		out = make([]dto.TenantHealthDTO, 0, len(totals))
		for _, t := range totals {
			out = append(out, dto.TenantHealthDTO{
				Name:     t.Tenant,
				TotalQty: t.TotalQty,
				Health:   healthIndex(t.TotalQty, t.IssueQty),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *MetricsUseCase) buildSnapshot(
	now time.Time,
	rows []repository.StockMetricsRow,
	outflows []repository.SKUOutflow,
	flows []repository.DailyFlow,
	top []repository.TopMover,
	recent []repository.RecentMovement,
) *dto.MetricsSnapshot {
	snap := &dto.MetricsSnapshot{
		StatusDistribution: make([]dto.StatusCount, 0),
		MovementStats:      make([]dto.DailyMovement, 0, seriesDays),
		TopMovers:          make([]dto.TopMoverDTO, 0, len(top)),
		SupplierStats:      make([]dto.SupplierStat, 0),
		RecentActivity:     make([]dto.RecentMovementDTO, 0, len(recent)),
		Predictions:        make([]dto.Prediction, 0),
		Alerts:             make([]dto.Alert, 0),
	}

	statusTotals := make(map[string]int64)
	supplierTotals := make(map[string]int64)
	var weightedDays int64
	for _, r := range rows {
		snap.TotalStock += r.Quantity
		statusTotals[r.Status] += r.Quantity
		if r.Status == entity.StatusReleased {
			snap.ReleasedItems += r.Quantity
		} else if r.Status == entity.StatusRetained {
			snap.RetainedItems += r.Quantity
		}
		supplier := r.Supplier
		if supplier == "" {
			supplier = "Unknown"
		}
		supplierTotals[supplier] += r.Quantity

		if r.EntryDate != nil {
			age := daysBetween(*r.EntryDate, now)
			weightedDays += age * r.Quantity
			if age > deadStockDays {
				snap.DeadStockCount++
				snap.Alerts = append(snap.Alerts, dto.Alert{
					Type:    "warning",
					Message: fmt.Sprintf("Dead Stock: %d units from %s (In stock %d days)", r.Quantity, r.SKU, age),
				})
			}
		}
	}

	for _, name := range sortedKeys(statusTotals) {
		snap.StatusDistribution = append(snap.StatusDistribution, dto.StatusCount{Name: name, Value: statusTotals[name]})
	}
	for _, name := range sortedKeys(supplierTotals) {
		snap.SupplierStats = append(snap.SupplierStats, dto.SupplierStat{Name: name, Value: supplierTotals[name]})
	}

	totalOut := decimal.Zero
	outflowBySKU := make(map[string]decimal.Decimal, len(outflows))
	for _, o := range outflows {
		outflowBySKU[o.SKU] = o.Quantity
		totalOut = totalOut.Add(o.Quantity)
	}

	if snap.TotalStock > 0 {
		snap.RetainedPercentage = ratePercent(snap.RetainedItems, snap.TotalStock, 1)
		snap.AvgStorageTime = decimal.NewFromInt(weightedDays).
			Div(decimal.NewFromInt(snap.TotalStock)).Round(1)
		snap.TurnoverRate = totalOut.
			Div(decimal.NewFromInt(snap.TotalStock)).Round(2)
	}
	if uc.totalCapacity > 0 {
		snap.OccupancyRate = ratePercent(snap.TotalStock, uc.totalCapacity, 1)
	}

	snap.MovementStats = fillDailySeries(now, flows)

	for _, t := range top {
		snap.TopMovers = append(snap.TopMovers, dto.TopMoverDTO{
			SKU:         t.SKU,
			Description: t.Description,
			TotalMoved:  t.TotalMoved,
		})
	}
	for _, m := range recent {
		snap.RecentActivity = append(snap.RecentActivity, dto.RecentMovementDTO{
			Timestamp:   m.Timestamp,
			Type:        m.Type,
			SKU:         m.SKU,
			Description: m.Description,
			Quantity:    m.Quantity,
			Details:     m.Details,
		})
	}

	predictions, stockoutAlerts := predictDepletion(rows, outflowBySKU)
	snap.Predictions = predictions
	snap.Alerts = append(snap.Alerts, stockoutAlerts...)

	return snap
}

// fillDailySeries proyecta los flujos sobre los últimos 7 días calendario,
// rellenando con ceros los días sin actividad, en orden cronológico.
func fillDailySeries(now time.Time, flows []repository.DailyFlow) []dto.DailyMovement {
	byDate := make(map[string]repository.DailyFlow, len(flows))
	for _, f := range flows {
		byDate[f.Date] = f
	}
	series := make([]dto.DailyMovement, 0, seriesDays)
	start := startOfDay(now).AddDate(0, 0, -(seriesDays - 1))
	for i := 0; i < seriesDays; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		f := byDate[date]
		series = append(series, dto.DailyMovement{Date: date, In: f.In, Out: f.Out})
	}
	return series
}

// healthIndex 100 menos el porcentaje redondeado de unidades con incidencias,
// con piso en cero. Sin stock el tenant se considera sano.
func healthIndex(total, issue int64) int {
	if total <= 0 {
		return 100
	}
	pct := int((issue*100 + total/2) / total)
	h := 100 - pct
	if h < 0 {
		return 0
	}
	return h
}

// ratePercent devuelve part/whole como porcentaje decimal con `places` decimales.
func ratePercent(part, whole int64, places int32) decimal.Decimal {
	if whole <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(part).Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(whole)).Round(places)
}

// daysBetween días transcurridos entre dos instantes; una fracción de día
// ya cuenta como día completo (90 días y una hora en bodega son 91 días).
func daysBetween(from, to time.Time) int64 {
	d := to.Sub(from)
	if d < 0 {
		return 0
	}
	return int64(math.Ceil(d.Hours() / 24))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
