package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/trace-warehouse/internal/application/analytics"
	"github.com/jhoicas/trace-warehouse/internal/application/dto"
	"github.com/jhoicas/trace-warehouse/internal/domain/entity"
	"github.com/jhoicas/trace-warehouse/internal/domain/repository"
	"github.com/jhoicas/trace-warehouse/internal/domain/scope"
	"github.com/jhoicas/trace-warehouse/internal/domain/warehouse"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCapacity = 5000

func newMetricsUseCase(repo *fakeAnalyticsRepo) *analytics.MetricsUseCase {
	return analytics.NewMetricsUseCase(fakeReadRunner{repo: repo}, warehouse.DefaultTable(), testCapacity)
}

// daysAgo fecha de ingreso hace n días. Deja una hora de margen para que la
// edad (que redondea fracciones hacia arriba) no sume un día extra por los
// instantes que pasan entre armar el escenario y calcular el snapshot.
func daysAgo(n int) *time.Time {
	t := time.Now().Add(-time.Duration(n)*24*time.Hour + time.Hour)
	return &t
}

// KPIs del snapshot: totales por estado, porcentaje retenido, rotación,
// ocupación y tiempo medio de almacenaje.
func TestComputeMetrics_KPIs(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		rows: []repository.StockMetricsRow{
			{SKU: "SKU-A", Description: "Bearings", Quantity: 5, Status: entity.StatusReleased, Supplier: "ACME Corp", EntryDate: daysAgo(10)},
			{SKU: "SKU-B", Description: "Plates", Quantity: 5, Status: entity.StatusRetained, Supplier: "Globex", EntryDate: daysAgo(50)},
		},
		outflows: []repository.SKUOutflow{{SKU: "SKU-A", Quantity: decimal.NewFromInt(30)}},
	}
	uc := newMetricsUseCase(repo)

	snap, err := uc.ComputeMetrics(context.Background(), scope.Open())
	require.NoError(t, err)

	assert.Equal(t, int64(10), snap.TotalStock)
	assert.Equal(t, int64(5), snap.ReleasedItems)
	assert.Equal(t, int64(5), snap.RetainedItems)
	assert.Equal(t, "50", snap.RetainedPercentage.String(), "5 de 10 retenidas")
	assert.Equal(t, "3", snap.TurnoverRate.String(), "30 salidas sobre 10 en stock")
	assert.Equal(t, "0.2", snap.OccupancyRate.String(), "10 de 5000 de capacidad")
	// (10*5 + 50*5) / 10 = 30 días promedio ponderado
	assert.Equal(t, "30", snap.AvgStorageTime.String())
	assert.Zero(t, snap.DeadStockCount)
}

// Con stock vacío todos los KPIs quedan en cero, sin divisiones por cero.
func TestComputeMetrics_StockVacio(t *testing.T) {
	uc := newMetricsUseCase(&fakeAnalyticsRepo{})

	snap, err := uc.ComputeMetrics(context.Background(), scope.Open())
	require.NoError(t, err)

	assert.Zero(t, snap.TotalStock)
	assert.True(t, snap.TurnoverRate.IsZero())
	assert.True(t, snap.RetainedPercentage.IsZero())
	assert.True(t, snap.AvgStorageTime.IsZero())
	assert.Len(t, snap.MovementStats, 7, "la serie diaria siempre trae 7 puntos")
	assert.Empty(t, snap.Predictions)
	assert.Empty(t, snap.Alerts)
}

// Dead stock: más de 90 días sin que la fecha de ingreso se renueve cuenta
// y alerta; 90 exactos todavía no. Una fracción de día ya cuenta como día
// completo: 90 días y medio en bodega son 91 días.
func TestComputeMetrics_DeadStockFrontera(t *testing.T) {
	halfDayOver := time.Now().Add(-(90*24 + 12) * time.Hour)
	repo := &fakeAnalyticsRepo{
		rows: []repository.StockMetricsRow{
			{SKU: "SKU-OLD", Description: "Foam", Quantity: 9, Status: entity.StatusReleased, EntryDate: daysAgo(91)},
			{SKU: "SKU-HALF", Description: "Straps", Quantity: 6, Status: entity.StatusReleased, EntryDate: &halfDayOver},
			{SKU: "SKU-EDGE", Description: "Seals", Quantity: 4, Status: entity.StatusReleased, EntryDate: daysAgo(90)},
		},
	}
	uc := newMetricsUseCase(repo)

	snap, err := uc.ComputeMetrics(context.Background(), scope.Open())
	require.NoError(t, err)

	assert.Equal(t, 2, snap.DeadStockCount, "91 días y 90 días y medio son dead stock; 90 justos no")
	require.Len(t, snap.Alerts, 2)
	assert.Contains(t, snap.Alerts[0].Message, "Dead Stock: 9 units from SKU-OLD")
	assert.Contains(t, snap.Alerts[1].Message, "Dead Stock: 6 units from SKU-HALF (In stock 91 days)")
}

// La serie diaria rellena con ceros los días sin actividad y mantiene orden
// cronológico terminando hoy.
func TestComputeMetrics_SerieDiariaRellena(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	threeAgo := time.Now().AddDate(0, 0, -3).Format("2006-01-02")
	repo := &fakeAnalyticsRepo{
		flows: []repository.DailyFlow{
			{Date: threeAgo, In: 12, Out: 4},
			{Date: today, In: 7, Out: 2},
		},
	}
	uc := newMetricsUseCase(repo)

	snap, err := uc.ComputeMetrics(context.Background(), scope.Open())
	require.NoError(t, err)

	require.Len(t, snap.MovementStats, 7)
	assert.Equal(t, today, snap.MovementStats[6].Date, "la serie termina hoy")
	assert.Equal(t, int64(7), snap.MovementStats[6].In)
	assert.Equal(t, int64(2), snap.MovementStats[6].Out)
	assert.Equal(t, int64(12), snap.MovementStats[3].In)
	for _, i := range []int{0, 1, 2, 4, 5} {
		assert.Zero(t, snap.MovementStats[i].In, "día %d sin actividad", i)
		assert.Zero(t, snap.MovementStats[i].Out, "día %d sin actividad", i)
	}
}

// Predicciones de agotamiento: <7 días High con alerta de error, <14 Medium,
// el resto sin predicción.
func TestComputeMetrics_Predicciones(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		rows: []repository.StockMetricsRow{
			{SKU: "SKU-HIGH", Description: "Pumps", Quantity: 6, Status: entity.StatusReleased},
			{SKU: "SKU-MED", Description: "Valves", Quantity: 13, Status: entity.StatusReleased},
			{SKU: "SKU-EDGE", Description: "Coils", Quantity: 7, Status: entity.StatusReleased},
			{SKU: "SKU-OK", Description: "Plates", Quantity: 14, Status: entity.StatusReleased},
			{SKU: "SKU-QUIET", Description: "Foam", Quantity: 2, Status: entity.StatusReleased},
		},
		outflows: []repository.SKUOutflow{
			{SKU: "SKU-HIGH", Quantity: decimal.NewFromInt(30)}, // 1/día → 6 días
			{SKU: "SKU-MED", Quantity: decimal.NewFromInt(30)},  // 1/día → 13 días
			{SKU: "SKU-EDGE", Quantity: decimal.NewFromInt(30)}, // 1/día → 7 días justos
			{SKU: "SKU-OK", Quantity: decimal.NewFromInt(30)},   // 1/día → 14 días justos
			// SKU-QUIET sin salidas: no se predice
		},
	}
	uc := newMetricsUseCase(repo)

	snap, err := uc.ComputeMetrics(context.Background(), scope.Open())
	require.NoError(t, err)

	byName := make(map[string]dto.Prediction)
	for _, p := range snap.Predictions {
		byName[p.SKU] = p
	}
	require.Len(t, byName, 3)
	assert.Equal(t, "High", byName["SKU-HIGH"].Risk)
	assert.Equal(t, 6, byName["SKU-HIGH"].DaysLeft)
	assert.Equal(t, "Medium", byName["SKU-MED"].Risk)
	assert.Equal(t, "Medium", byName["SKU-EDGE"].Risk, "7 días justos ya no es High")
	assert.NotContains(t, byName, "SKU-OK", "14 días justos no genera predicción")
	assert.NotContains(t, byName, "SKU-QUIET")

	require.Len(t, snap.Alerts, 1, "solo el riesgo High alerta")
	assert.Equal(t, "error", snap.Alerts[0].Type)
	assert.Contains(t, snap.Alerts[0].Message, "Low Stock Risk: Pumps will run out in ~6 days.")
}

// Agregados por supplier y estado ordenados por nombre, supplier vacío
// agrupa como Unknown.
func TestComputeMetrics_Distribuciones(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		rows: []repository.StockMetricsRow{
			{SKU: "A", Quantity: 3, Status: entity.StatusReleased, Supplier: "Globex"},
			{SKU: "B", Quantity: 2, Status: entity.StatusQuarantine, Supplier: "ACME Corp"},
			{SKU: "C", Quantity: 1, Status: entity.StatusReleased, Supplier: ""},
		},
	}
	uc := newMetricsUseCase(repo)

	snap, err := uc.ComputeMetrics(context.Background(), scope.Open())
	require.NoError(t, err)

	require.Len(t, snap.StatusDistribution, 2)
	assert.Equal(t, dto.StatusCount{Name: entity.StatusQuarantine, Value: 2}, snap.StatusDistribution[0])
	assert.Equal(t, dto.StatusCount{Name: entity.StatusReleased, Value: 4}, snap.StatusDistribution[1])

	require.Len(t, snap.SupplierStats, 3)
	assert.Equal(t, dto.SupplierStat{Name: "ACME Corp", Value: 2}, snap.SupplierStats[0])
	assert.Equal(t, dto.SupplierStat{Name: "Globex", Value: 3}, snap.SupplierStats[1])
	assert.Equal(t, dto.SupplierStat{Name: "Unknown", Value: 1}, snap.SupplierStats[2])
}

// Ocupación por zona: las sububicaciones suman a su zona, lo desconocido a
// General, y las zonas sin stock no aparecen.
func TestOccupancyStats(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		rows: []repository.StockMetricsRow{
			{SKU: "A", Quantity: 300, Location: "Zone A-1"},
			{SKU: "B", Quantity: 200, Location: "Zone A-2"},
			{SKU: "C", Quantity: 100, Location: "Dock 4"},
		},
	}
	uc := newMetricsUseCase(repo)

	stats, err := uc.OccupancyStats(context.Background(), scope.Open())
	require.NoError(t, err)

	require.Len(t, stats, 2)
	assert.Equal(t, dto.ZoneOccupancy{Name: "Zone A", Used: 500, Max: 1000, Percent: 50}, stats[0])
	assert.Equal(t, dto.ZoneOccupancy{Name: "General", Used: 100, Max: 2000, Percent: 5}, stats[1])
}

// Salud por tenant: 100 menos el porcentaje redondeado con incidencias.
func TestTenantHealth(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		totals: []repository.TenantTotals{
			{Tenant: "ACME Corp", TotalQty: 100, IssueQty: 0},
			{Tenant: "Globex", TotalQty: 100, IssueQty: 25},
			{Tenant: "Initech", TotalQty: 0, IssueQty: 0},
			{Tenant: "Umbrella", TotalQty: 3, IssueQty: 3},
		},
	}
	uc := newMetricsUseCase(repo)

	health, err := uc.TenantHealth(context.Background(), scope.Open())
	require.NoError(t, err)

	require.Len(t, health, 4)
	assert.Equal(t, 100, health[0].Health)
	assert.Equal(t, 75, health[1].Health)
	assert.Equal(t, 100, health[2].Health, "sin stock el tenant se considera sano")
	assert.Equal(t, 0, health[3].Health, "todo con incidencias es salud cero")
}
