package repository

import (
	"context"

	"github.com/itmco/inventory-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStockCAS actualiza stock solo si la versión coincide (compare-and-swap).
	// Devuelve false sin error cuando otro writer incrementó la versión primero.
	UpdateStockCAS(ctx context.Context, id string, newStock int, expectedVersion int64) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
