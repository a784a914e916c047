package dto

import "time"

// RecordStockEntryRequest entrada para registrar una entrada de stock en el ledger.
type RecordStockEntryRequest struct {
	ProductID     string `json:"product_id" validate:"required"`
	QuantityAdded int    `json:"quantity_added" validate:"required,gt=0"`
	Notes         string `json:"notes" validate:"max=500"`
}

// StockEntryResponse una entrada del ledger. entry_date y entry_time se derivan
// de created_at para el formato que espera la UI.
type StockEntryResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	QuantityAdded int       `json:"quantity_added"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	EnteredBy     string    `json:"entered_by"`
	Notes         string    `json:"notes,omitempty"`
	EntryDate     string    `json:"entry_date"` // YYYY-MM-DD
	EntryTime     string    `json:"entry_time"` // HH:MM:SS
	CreatedAt     time.Time `json:"created_at"`
}

// StockHistoryResponse historial del ledger de un producto, más reciente primero.
type StockHistoryResponse struct {
	ProductID string               `json:"product_id"`
	Entries   []StockEntryResponse `json:"entries"`
}

// StockSummaryResponse agregados derivados del historial (sin cache).
type StockSummaryResponse struct {
	ProductID          string  `json:"product_id"`
	TotalQuantityAdded int     `json:"total_quantity_added"`
	EntriesCount       int     `json:"entries_count"`
	AveragePerEntry    float64 `json:"average_per_entry"`
}
