package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Stock inicia en 0 y
// solo se mueve vía entradas (ledger) y salidas (issuances).
type CreateProductRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Brand    string          `json:"brand" validate:"required,min=1,max=100"`
	Model    string          `json:"model" validate:"max=100"`
	Category string          `json:"category" validate:"required,min=1,max=100"`
	Price    decimal.Decimal `json:"price"`
	MinStock int             `json:"min_stock" validate:"gte=0"`
	Notes    string          `json:"notes"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Stock: se maneja vía movimientos).
type UpdateProductRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Brand    *string          `json:"brand" validate:"omitempty,min=1,max=100"`
	Model    *string          `json:"model" validate:"omitempty,max=100"`
	Category *string          `json:"category" validate:"omitempty,min=1,max=100"`
	Price    *decimal.Decimal `json:"price"`
	MinStock *int             `json:"min_stock" validate:"omitempty,gte=0"`
	Notes    *string          `json:"notes"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	Model     string          `json:"model"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	MinStock  int             `json:"min_stock"`
	LowStock  bool            `json:"low_stock"`
	Notes     string          `json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
