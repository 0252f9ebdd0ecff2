package analytics

import (
	"fmt"

	"github.com/jhoicas/trace-warehouse/internal/application/dto"
	"github.com/jhoicas/trace-warehouse/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Umbrales de clasificación de riesgo de quiebre, en días restantes.
const (
	riskHighDays   = 7
	riskMediumDays = 14
)

// predictDepletion proyecta el agotamiento por SKU a partir del promedio
// diario de salidas de los últimos 30 días. SKUs sin salidas en la ventana
// no generan predicción. Riesgo High agrega además una alerta de error.
func predictDepletion(rows []repository.StockMetricsRow, outflow map[string]decimal.Decimal) ([]dto.Prediction, []dto.Alert) {
	predictions := make([]dto.Prediction, 0)
	alerts := make([]dto.Alert, 0)
	for _, r := range rows {
		out := outflow[r.SKU]
		if !out.IsPositive() {
			continue
		}
		dailyAvg := out.Div(decimal.NewFromInt(turnoverWindowDays))
		daysLeft := int(decimal.NewFromInt(r.Quantity).Div(dailyAvg).Floor().IntPart())
		switch {
		case daysLeft < riskHighDays:
			predictions = append(predictions, dto.Prediction{
				SKU:      r.SKU,
				Name:     r.Description,
				DaysLeft: daysLeft,
				Risk:     "High",
			})
			alerts = append(alerts, dto.Alert{
				Type:    "error",
				Message: fmt.Sprintf("Low Stock Risk: %s will run out in ~%d days.", r.Description, daysLeft),
			})
		case daysLeft < riskMediumDays:
			predictions = append(predictions, dto.Prediction{
				SKU:      r.SKU,
				Name:     r.Description,
				DaysLeft: daysLeft,
				Risk:     "Medium",
			})
		}
	}
	return predictions, alerts
}
