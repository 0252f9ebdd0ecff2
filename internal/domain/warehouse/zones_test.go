package warehouse_test

import (
	"testing"

	"github.com/jhoicas/trace-warehouse/internal/domain/warehouse"
	"github.com/stretchr/testify/assert"
)

// Las sububicaciones de una zona suman a la zona madre por prefijo.
func TestMatch_SububicacionesCaenEnLaZona(t *testing.T) {
	table := warehouse.DefaultTable()

	assert.Equal(t, "Zone A", table.Match("Zone A-1").Name)
	assert.Equal(t, "Zone A", table.Match("Zone A-2").Name)
	assert.Equal(t, "Zone C", table.Match("Zone C-3").Name)
}

// Ubicaciones sin zona conocida caen en la zona por defecto.
func TestMatch_UbicacionDesconocidaCaeEnDefault(t *testing.T) {
	table := warehouse.DefaultTable()

	zone := table.Match("Dock 4")
	assert.Equal(t, "General", zone.Name)
	assert.Equal(t, int64(2000), zone.Max)
}

// El nombre de la zona debe ir al inicio de la ubicación; mencionarla en
// medio del texto no la asigna.
func TestMatch_NombreDeZonaEnMedioNoCuenta(t *testing.T) {
	table := warehouse.DefaultTable()

	assert.Equal(t, "General", table.Match("Overflow Zone A").Name)
	assert.Equal(t, "General", table.Match("Anexo a Zone B-1").Name)
	assert.Equal(t, "Zone A", table.Match("Zone A").Name, "el nombre exacto sí")
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 50, warehouse.Percent(500, 1000))
	assert.Equal(t, 0, warehouse.Percent(0, 1000))
	assert.Equal(t, 33, warehouse.Percent(1, 3), "redondeo al entero más cercano")
	assert.Equal(t, 67, warehouse.Percent(2, 3))
	assert.Equal(t, 120, warehouse.Percent(600, 500), "la sobreocupación supera el 100")
	assert.Equal(t, 0, warehouse.Percent(10, 0), "capacidad cero no divide")
}
