package stock

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

// casMaxAttempts intentos de compare-and-swap antes de rendirse con ErrConflict.
const casMaxAttempts = 3

// LedgerUseCase mantiene el ledger append-only de entradas de stock.
// El update del agregado Product.Stock es condicional sobre la columna version
// (compare-and-swap con reintentos acotados): dos entradas concurrentes sobre el
// mismo producto nunca se pisan el delta en silencio.
type LedgerUseCase struct {
	products repository.ProductRepository
	entries  repository.StockEntryRepository
	now      func() time.Time
}

// NewLedgerUseCase construye el caso de uso del ledger.
func NewLedgerUseCase(products repository.ProductRepository, entries repository.StockEntryRepository) *LedgerUseCase {
	return &LedgerUseCase{products: products, entries: entries, now: time.Now}
}

// RecordEntry registra una entrada de stock: lee el stock actual como previousStock,
// calcula newStock = previousStock + quantityAdded, confirma el nuevo stock en el
// producto (CAS sobre version) y recién entonces apendea la entrada al ledger.
// Si la lectura del producto falla no se crea entrada alguna.
func (uc *LedgerUseCase) RecordEntry(ctx context.Context, userID string, in dto.RecordStockEntryRequest) (*dto.StockEntryResponse, error) {
	if res := validator.Validate(in); !res.Success {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(res.Errors, "; "))
	}
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	var previousStock, newStock int
	confirmed := false
	for attempt := 0; attempt < casMaxAttempts && !confirmed; attempt++ {
		product, err := uc.products.GetByID(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		previousStock = product.Stock
		newStock = previousStock + in.QuantityAdded

		ok, err := uc.products.UpdateStockCAS(ctx, product.ID, newStock, product.Version)
		if err != nil {
			return nil, err
		}
		confirmed = ok
		// !ok: otro writer incrementó version entre la lectura y el update; releer y reintentar
	}
	if !confirmed {
		return nil, domain.ErrConflict
	}

	entry := &entity.StockEntry{
		ID:            uuid.New().String(),
		ProductID:     in.ProductID,
		QuantityAdded: in.QuantityAdded,
		PreviousStock: previousStock,
		NewStock:      newStock,
		EnteredBy:     userID,
		Notes:         in.Notes,
		CreatedAt:     uc.now(),
	}
	if err := uc.entries.Create(ctx, entry); err != nil {
		// El stock ya quedó confirmado en el producto: el ledger divergió.
		return nil, fmt.Errorf("stock actualizado pero no se pudo apendear la entrada al ledger: %w", err)
	}
	return toStockEntryResponse(entry), nil
}

// GetHistory devuelve las entradas del producto, más recientes primero.
func (uc *LedgerUseCase) GetHistory(ctx context.Context, productID string) (*dto.StockHistoryResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.entries.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toStockEntryResponse(e))
	}
	return &dto.StockHistoryResponse{ProductID: productID, Entries: items}, nil
}

// GetSummary deriva los agregados del historial; no hay cache intermedio.
func (uc *LedgerUseCase) GetSummary(ctx context.Context, productID string) (*dto.StockSummaryResponse, error) {
	history, err := uc.GetHistory(ctx, productID)
	if err != nil {
		return nil, err
	}
	summary := &dto.StockSummaryResponse{ProductID: productID}
	for _, e := range history.Entries {
		summary.TotalQuantityAdded += e.QuantityAdded
	}
	summary.EntriesCount = len(history.Entries)
	if summary.EntriesCount > 0 {
		summary.AveragePerEntry = float64(summary.TotalQuantityAdded) / float64(summary.EntriesCount)
	}
	return summary, nil
}

func toStockEntryResponse(e *entity.StockEntry) *dto.StockEntryResponse {
	return &dto.StockEntryResponse{
		ID:            e.ID,
		ProductID:     e.ProductID,
		QuantityAdded: e.QuantityAdded,
		PreviousStock: e.PreviousStock,
		NewStock:      e.NewStock,
		EnteredBy:     e.EnteredBy,
		Notes:         e.Notes,
		EntryDate:     e.CreatedAt.Format("2006-01-02"),
		EntryTime:     e.CreatedAt.Format("15:04:05"),
		CreatedAt:     e.CreatedAt,
	}
}
