package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un equipo o repuesto del inventario.
// Stock es un agregado cacheado: lo mantienen los flujos de entradas (stock ledger)
// y salidas (issuances), cada uno con update condicional sobre Version.
type Product struct {
	ID        string
	Name      string
	Brand     string
	Model     string
	Category  string
	Price     decimal.Decimal // precio de referencia
	Stock     int             // agregado derivado, >= 0
	MinStock  int             // umbral de alerta de stock bajo
	Notes     string
	Version   int64 // columna de concurrencia optimista para compare-and-swap
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLowStock indica si el producto está en o por debajo del umbral de reposición.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}
