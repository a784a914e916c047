package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryReportResponse reporte de inventario: agregados + productos en stock bajo.
type InventoryReportResponse struct {
	GeneratedAt   time.Time         `json:"generated_at"`
	TotalProducts int               `json:"total_products"`
	TotalUnits    int               `json:"total_units"`
	TotalValue    decimal.Decimal   `json:"total_value"`
	LowStockCount int               `json:"low_stock_count"`
	LowStock      []ProductResponse `json:"low_stock"`
	Issuances30d  IssuanceTotalsDTO `json:"issuances_30d"`
}

// IssuanceTotalsDTO agregados de salidas en una ventana.
type IssuanceTotalsDTO struct {
	Count int `json:"count"`
	Units int `json:"units"`
}
