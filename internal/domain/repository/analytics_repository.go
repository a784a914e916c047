package repository

import (
	"context"
	"time"

	"github.com/itmco/inventory-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InventorySummary agregados de inventario para el reporte.
type InventorySummary struct {
	TotalProducts int
	TotalUnits    int
	TotalValue    decimal.Decimal // sum(stock * price)
	LowStockCount int
}

// IssuanceTotals agregados de salidas en una ventana de tiempo.
type IssuanceTotals struct {
	Count int
	Units int
}

// AnalyticsRepository consultas de solo lectura para reportes.
type AnalyticsRepository interface {
	InventorySummary(ctx context.Context) (*InventorySummary, error)
	LowStockProducts(ctx context.Context) ([]*entity.Product, error)
	IssuanceTotals(ctx context.Context, since time.Time) (*IssuanceTotals, error)
}
