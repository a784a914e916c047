package issuance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/itmco/inventory-api/internal/application/dto"
	"github.com/itmco/inventory-api/internal/domain"
	"github.com/itmco/inventory-api/internal/domain/entity"
	"github.com/itmco/inventory-api/internal/domain/repository"
	"github.com/itmco/inventory-api/pkg/validator"
)

const casMaxAttempts = 3

// UseCase registra salidas de stock (entregas a cliente/sucursal).
// El descuento del agregado Product.Stock usa el mismo compare-and-swap sobre
// version que el ledger de entradas, con chequeo de stock suficiente en cada intento.
type UseCase struct {
	products  repository.ProductRepository
	issuances repository.IssuanceRepository
	now       func() time.Time
}

// NewUseCase construye el caso de uso de salidas.
func NewUseCase(products repository.ProductRepository, issuances repository.IssuanceRepository) *UseCase {
	return &UseCase{products: products, issuances: issuances, now: time.Now}
}

// Create valida la salida, descuenta stock de forma condicional y persiste la salida.
// Stock insuficiente retorna ErrInsufficientStock sin mutar nada.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateIssuanceRequest) (*dto.IssuanceResponse, error) {
	if res := validator.Validate(in); !res.Success {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(res.Errors, "; "))
	}
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	confirmed := false
	for attempt := 0; attempt < casMaxAttempts && !confirmed; attempt++ {
		product, err := uc.products.GetByID(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.Stock < in.Quantity {
			return nil, domain.ErrInsufficientStock
		}
		ok, err := uc.products.UpdateStockCAS(ctx, product.ID, product.Stock-in.Quantity, product.Version)
		if err != nil {
			return nil, err
		}
		confirmed = ok
	}
	if !confirmed {
		return nil, domain.ErrConflict
	}

	iss := &entity.Issuance{
		ID:           uuid.New().String(),
		ProductID:    in.ProductID,
		Quantity:     in.Quantity,
		CustomerName: in.CustomerName,
		Branch:       in.Branch,
		Engineer:     in.Engineer,
		SerialNumber: in.SerialNumber,
		IssuedBy:     userID,
		CreatedAt:    uc.now(),
	}
	if err := uc.issuances.Create(ctx, iss); err != nil {
		return nil, fmt.Errorf("stock descontado pero no se pudo persistir la salida: %w", err)
	}
	return toIssuanceResponse(iss), nil
}

// List lista salidas con paginación.
func (uc *UseCase) List(ctx context.Context, limit, offset int) (*dto.IssuanceListResponse, error) {
	list, err := uc.issuances.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.IssuanceResponse, 0, len(list))
	for _, i := range list {
		items = append(items, *toIssuanceResponse(i))
	}
	return &dto.IssuanceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListByProduct devuelve las salidas de un producto, más recientes primero.
func (uc *UseCase) ListByProduct(ctx context.Context, productID string) (*dto.ProductIssuancesResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.issuances.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.IssuanceResponse, 0, len(list))
	for _, i := range list {
		items = append(items, *toIssuanceResponse(i))
	}
	return &dto.ProductIssuancesResponse{ProductID: productID, Items: items}, nil
}

func toIssuanceResponse(i *entity.Issuance) *dto.IssuanceResponse {
	return &dto.IssuanceResponse{
		ID:           i.ID,
		ProductID:    i.ProductID,
		Quantity:     i.Quantity,
		CustomerName: i.CustomerName,
		Branch:       i.Branch,
		Engineer:     i.Engineer,
		SerialNumber: i.SerialNumber,
		IssuedBy:     i.IssuedBy,
		CreatedAt:    i.CreatedAt,
	}
}
