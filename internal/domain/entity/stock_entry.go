package entity

import "time"

// StockEntry es un registro inmutable del ledger de entradas de stock.
// Invariante: NewStock = PreviousStock + QuantityAdded, y PreviousStock es el
// stock del producto inmediatamente antes de esta entrada. Nunca se actualiza ni borra.
type StockEntry struct {
	ID            string
	ProductID     string
	QuantityAdded int // > 0
	PreviousStock int
	NewStock      int
	EnteredBy     string // UserID
	Notes         string
	CreatedAt     time.Time
}
