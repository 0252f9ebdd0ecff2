// Package warehouse contiene la tabla de zonas físicas y el cálculo de ocupación.
package warehouse

import "strings"

// ZoneCapacity capacidad configurada de una zona física.
type ZoneCapacity struct {
	Name string
	Max  int64
}

// ZoneTable mapea ubicaciones de texto libre a zonas por coincidencia de
// prefijo: "Zone A-1" y "Zone A-2" suman ambas a "Zone A". Las ubicaciones
// sin zona conocida caen en Default.
type ZoneTable struct {
	Zones   []ZoneCapacity
	Default ZoneCapacity
}

// DefaultTable devuelve la tabla de zonas con las capacidades de fábrica.
func DefaultTable() ZoneTable {
	return ZoneTable{
		Zones: []ZoneCapacity{
			{Name: "Zone A", Max: 1000},
			{Name: "Zone B", Max: 800},
			{Name: "Zone C", Max: 1200},
			{Name: "Zone D", Max: 500},
		},
		Default: ZoneCapacity{Name: "General", Max: 2000},
	}
}

// Match devuelve la zona a la que pertenece una ubicación. La ubicación debe
// empezar por el nombre de la zona; mencionarla en medio del texto no cuenta.
func (t ZoneTable) Match(location string) ZoneCapacity {
	for _, z := range t.Zones {
		if strings.HasPrefix(location, z.Name) {
			return z
		}
	}
	return t.Default
}

// Percent ocupación en porcentaje entero (redondeo al más cercano).
func Percent(used, max int64) int {
	if max <= 0 {
		return 0
	}
	return int((used*100 + max/2) / max)
}
