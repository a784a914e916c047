package repository

import (
	"context"

	"github.com/itmco/inventory-api/internal/domain/entity"
)

// StockEntryRepository puerto del ledger de entradas de stock (append-only).
// No expone Update ni Delete: las entradas son inmutables.
type StockEntryRepository interface {
	Create(ctx context.Context, entry *entity.StockEntry) error
	// ListByProduct devuelve las entradas del producto, más recientes primero.
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockEntry, error)
}
