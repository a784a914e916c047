package repository

import (
	"context"

	"github.com/itmco/inventory-api/internal/domain/entity"
)

// IssuanceRepository puerto de persistencia para salidas de stock.
type IssuanceRepository interface {
	Create(ctx context.Context, issuance *entity.Issuance) error
	List(ctx context.Context, limit, offset int) ([]*entity.Issuance, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Issuance, error)
}
