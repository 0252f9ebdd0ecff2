package entity

import "time"

// Estados de un registro de stock (value object conceptual).
const (
	StatusReleased   = "Released"
	StatusRetained   = "Retained"
	StatusQuarantine = "Quarantine"
)

// ValidStatus indica si s es un estado de stock conocido.
func ValidStatus(s string) bool {
	switch s {
	case StatusReleased, StatusRetained, StatusQuarantine:
		return true
	}
	return false
}

// StockRecord representa el estado actual de un SKU en bodega (proyección materializada del ledger).
// Se crea con el primer movimiento IN del SKU y lo muta únicamente el Movement Applier.
// Nunca se borra: una salida total deja Quantity en cero.
type StockRecord struct {
	ID          string
	SKU         string // único dentro del scope del tenant
	Description string
	Quantity    int64
	Location    string // texto libre, mapeado a zona por prefijo
	Status      string // Released, Retained, Quarantine
	Supplier    string // también actúa como clave de tenant
	EntryDate   time.Time
	UpdatedAt   time.Time
}
