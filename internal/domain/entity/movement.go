package entity

import "time"

// Tipos de movimiento del ledger.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// Orígenes de un movimiento.
const (
	SourceManual = "MANUAL"
	SourceAI     = "AI" // importación desde documento analizado
)

// ValidMovementType indica si t es un tipo de movimiento conocido.
func ValidMovementType(t string) bool {
	return t == MovementTypeIN || t == MovementTypeOUT
}

// Movement es una entrada inmutable del ledger append-only.
// ID es monótono y lo asigna la base de datos en el insert; no existe
// update ni delete sobre movimientos.
type Movement struct {
	ID          int64
	Type        string // IN u OUT
	Source      string // MANUAL o AI
	SKU         string
	Quantity    int64  // magnitud positiva; el signo lo da Type
	Tenant      string // atribución estructural de tenant, escrita en el append
	Details     string // contexto legible (supplier, ubicación)
	DocumentRef string
	Timestamp   time.Time
}
