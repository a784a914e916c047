package reports

import (
	"context"
	"time"

	"github.com/itmco/inventory-api/internal/application/dto"
	"github.com/itmco/inventory-api/internal/domain/entity"
	"github.com/itmco/inventory-api/internal/domain/repository"
)

// PDFGenerator puerto de salida para la representación PDF del reporte.
type PDFGenerator interface {
	GenerateInventoryReport(report *dto.InventoryReportResponse) ([]byte, error)
}

// ReportUseCase arma el reporte de inventario desde las consultas de analítica.
type ReportUseCase struct {
	analytics repository.AnalyticsRepository
	pdf       PDFGenerator
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(analytics repository.AnalyticsRepository, pdf PDFGenerator) *ReportUseCase {
	return &ReportUseCase{analytics: analytics, pdf: pdf, now: time.Now}
}

// InventoryReport agregados de inventario + productos en stock bajo + salidas de los últimos 30 días.
func (uc *ReportUseCase) InventoryReport(ctx context.Context) (*dto.InventoryReportResponse, error) {
	summary, err := uc.analytics.InventorySummary(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.analytics.LowStockProducts(ctx)
	if err != nil {
		return nil, err
	}
	since := uc.now().AddDate(0, 0, -30)
	issuances, err := uc.analytics.IssuanceTotals(ctx, since)
	if err != nil {
		return nil, err
	}

	report := &dto.InventoryReportResponse{
		GeneratedAt:   uc.now(),
		TotalProducts: summary.TotalProducts,
		TotalUnits:    summary.TotalUnits,
		TotalValue:    summary.TotalValue,
		LowStockCount: summary.LowStockCount,
		LowStock:      make([]dto.ProductResponse, 0, len(lowStock)),
		Issuances30d:  dto.IssuanceTotalsDTO{Count: issuances.Count, Units: issuances.Units},
	}
	for _, p := range lowStock {
		report.LowStock = append(report.LowStock, toReportProduct(p))
	}
	return report, nil
}

// InventoryReportPDF versión PDF descargable del reporte.
func (uc *ReportUseCase) InventoryReportPDF(ctx context.Context) ([]byte, error) {
	report, err := uc.InventoryReport(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateInventoryReport(report)
}

func toReportProduct(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Brand:     p.Brand,
		Model:     p.Model,
		Category:  p.Category,
		Price:     p.Price,
		Stock:     p.Stock,
		MinStock:  p.MinStock,
		LowStock:  true,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
