package dto

import "time"

// StockRecordResponse registro de la proyección de stock.
type StockRecordResponse struct {
	ID          string    `json:"id"`
	SKU         string    `json:"sku"`
	Description string    `json:"description"`
	Quantity    int64     `json:"quantity"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
	Supplier    string    `json:"supplier"`
	EntryDate   time.Time `json:"entry_date"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RegisterMovementRequest cuerpo de POST /api/stock/movements.
// Los campos auxiliares (description, location, status, supplier, entry_date)
// solo se aplican sobre la proyección en movimientos IN.
type RegisterMovementRequest struct {
	Type        string `json:"type"`
	SKU         string `json:"sku"`
	Quantity    int64  `json:"quantity"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Status      string `json:"status"`
	Supplier    string `json:"supplier"`
	EntryDate   string `json:"entry_date"` // YYYY-MM-DD
	DocumentRef string `json:"document_ref"`
}

// UpdateStockRequest cuerpo de PUT /api/stock/:id. Campos omitidos no cambian.
type UpdateStockRequest struct {
	Location *string `json:"location"`
	Status   *string `json:"status"`
}

// ImportItem línea candidata producida por el análisis de un documento.
// La consume confirmImport; el motor no vuelve a parsear el documento.
type ImportItem struct {
	SKU         string `json:"sku"`
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	Supplier    string `json:"supplier"`
	Location    string `json:"location"`
}

// ConfirmImportRequest cuerpo de POST /api/analyze/confirm.
type ConfirmImportRequest struct {
	Items []ImportItem `json:"items"`
}

// AnalyzeResponse resultado del análisis de un documento subido.
type AnalyzeResponse struct {
	Message string       `json:"message"`
	Items   []ImportItem `json:"items"`
}
