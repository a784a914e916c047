package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/itmco/inventory-api/internal/domain/entity"
	"github.com/itmco/inventory-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para reportes de inventario.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// InventorySummary totales de productos, unidades, valor (stock × price) y stock bajo.
func (r *AnalyticsRepo) InventorySummary(ctx context.Context) (*repository.InventorySummary, error) {
	const query = `
	SELECT
	    COUNT(*)                                            AS total_products,
	    COALESCE(SUM(stock), 0)                             AS total_units,
	    COALESCE(SUM(stock * price), 0)                     AS total_value,
	    COUNT(*) FILTER (WHERE stock <= min_stock)          AS low_stock_count
	FROM products`
	var s repository.InventorySummary
	err := r.q.QueryRow(ctx, query).Scan(&s.TotalProducts, &s.TotalUnits, &s.TotalValue, &s.LowStockCount)
	if err != nil {
		return nil, fmt.Errorf("analytics.InventorySummary: %w", err)
	}
	return &s, nil
}

// LowStockProducts productos en o por debajo de su umbral, los más críticos primero.
func (r *AnalyticsRepo) LowStockProducts(ctx context.Context) ([]*entity.Product, error) {
	const query = `
	SELECT id, name, brand, model, category, price, stock, min_stock, notes, version, created_at, updated_at
	FROM products
	WHERE stock <= min_stock
	ORDER BY (min_stock - stock) DESC, name ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.LowStockProducts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Brand, &p.Model, &p.Category, &p.Price,
			&p.Stock, &p.MinStock, &p.Notes, &p.Version, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("analytics: scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// IssuanceTotals cantidad y unidades de salidas desde `since`.
func (r *AnalyticsRepo) IssuanceTotals(ctx context.Context, since time.Time) (*repository.IssuanceTotals, error) {
	const query = `
	SELECT COUNT(*), COALESCE(SUM(quantity), 0)
	FROM issuances WHERE created_at >= $1`
	var t repository.IssuanceTotals
	if err := r.q.QueryRow(ctx, query, since).Scan(&t.Count, &t.Units); err != nil {
		return nil, fmt.Errorf("analytics.IssuanceTotals: %w", err)
	}
	return &t, nil
}
