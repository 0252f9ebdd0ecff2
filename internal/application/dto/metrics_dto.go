package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Alert aviso operativo derivado de las métricas.
// Type: "warning" (dead stock) o "error" (riesgo de quiebre de stock).
type Alert struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Prediction proyección de agotamiento de un SKU.
type Prediction struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	DaysLeft int    `json:"daysLeft"`
	Risk     string `json:"risk"` // High | Medium
}

// StatusCount cantidad acumulada por estado.
type StatusCount struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// DailyMovement punto de la serie de 7 días (días sin actividad van en cero).
type DailyMovement struct {
	Date string `json:"date"`
	In   int64  `json:"IN"`
	Out  int64  `json:"OUT"`
}

// TopMoverDTO SKU con más cantidad movida en los últimos 30 días.
type TopMoverDTO struct {
	SKU         string `json:"sku"`
	Description string `json:"description"`
	TotalMoved  int64  `json:"total_moved"`
}

// SupplierStat cantidad en stock agrupada por supplier.
type SupplierStat struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// RecentMovementDTO entrada del listado de actividad reciente.
type RecentMovementDTO struct {
	Timestamp   time.Time `json:"timestamp"`
	Type        string    `json:"type"`
	SKU         string    `json:"sku"`
	Description string    `json:"description"`
	Quantity    int64     `json:"quantity"`
	Details     string    `json:"details"`
}

// MetricsSnapshot fotografía completa de métricas del scope.
// Todos los agregados salen de una misma vista de lectura.
type MetricsSnapshot struct {
	TotalStock         int64               `json:"totalStock"`
	RetainedItems      int64               `json:"retainedItems"`
	ReleasedItems      int64               `json:"releasedItems"`
	RetainedPercentage decimal.Decimal     `json:"retainedPercentage"`
	StatusDistribution []StatusCount       `json:"statusDistribution"`
	TurnoverRate       decimal.Decimal     `json:"turnoverRate"`
	OccupancyRate      decimal.Decimal     `json:"occupancyRate"`
	AvgStorageTime     decimal.Decimal     `json:"avgStorageTime"`
	DeadStockCount     int                 `json:"deadStockCount"`
	MovementStats      []DailyMovement     `json:"movementStats"`
	TopMovers          []TopMoverDTO       `json:"topMovers"`
	SupplierStats      []SupplierStat      `json:"supplierStats"`
	RecentActivity     []RecentMovementDTO `json:"recentActivity"`
	Predictions        []Prediction        `json:"predictions"`
	Alerts             []Alert             `json:"alerts"`
}

// ZoneOccupancy ocupación de una zona física.
type ZoneOccupancy struct {
	Name    string `json:"name"`
	Used    int64  `json:"used"`
	Max     int64  `json:"max"`
	Percent int    `json:"percent"`
}

// TenantHealthDTO salud de un tenant: 100 − round(issueQty/totalQty × 100).
type TenantHealthDTO struct {
	Name     string `json:"name"`
	TotalQty int64  `json:"total_qty"`
	Health   int    `json:"health"`
}

// MovementResponse movimiento del ledger para búsquedas y exportación.
type MovementResponse struct {
	ID          int64     `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Type        string    `json:"type"`
	Source      string    `json:"source"`
	SKU         string    `json:"sku"`
	Quantity    int64     `json:"quantity"`
	Tenant      string    `json:"tenant,omitempty"`
	Details     string    `json:"details"`
	DocumentRef string    `json:"document_ref"`
}

// SearchMovementsRequest filtros de GET /api/metrics/movements.
type SearchMovementsRequest struct {
	Search    string `query:"search"`
	Supplier  string `query:"supplier"`
	Type      string `query:"type"`
	StartDate string `query:"startDate"` // YYYY-MM-DD, inclusivo
	EndDate   string `query:"endDate"`   // YYYY-MM-DD, inclusivo
}
