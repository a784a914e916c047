package postgres

import (
	"context"
	"fmt"

	"github.com/itmco/inventory-api/internal/domain/entity"
	"github.com/itmco/inventory-api/internal/domain/repository"
)

var _ repository.StockEntryRepository = (*StockEntryRepo)(nil)

// StockEntryRepo persistencia del ledger de entradas (append-only: solo INSERT y SELECT).
type StockEntryRepo struct {
	q Querier
}

// NewStockEntryRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewStockEntryRepository(q Querier) *StockEntryRepo {
	return &StockEntryRepo{q: q}
}

// Create apendea una entrada al ledger. Las entradas nunca se actualizan ni borran.
func (r *StockEntryRepo) Create(ctx context.Context, entry *entity.StockEntry) error {
	query := `
		INSERT INTO stock_entries (id, product_id, quantity_added, previous_stock, new_stock, entered_by, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.ProductID, entry.QuantityAdded, entry.PreviousStock,
		entry.NewStock, entry.EnteredBy, entry.Notes, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock entry: %w", err)
	}
	return nil
}

// ListByProduct devuelve las entradas del producto, más recientes primero.
func (r *StockEntryRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockEntry, error) {
	query := `
		SELECT id, product_id, quantity_added, previous_stock, new_stock, entered_by, notes, created_at
		FROM stock_entries WHERE product_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockEntry
	for rows.Next() {
		var e entity.StockEntry
		if err := rows.Scan(&e.ID, &e.ProductID, &e.QuantityAdded, &e.PreviousStock,
			&e.NewStock, &e.EnteredBy, &e.Notes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
