package dto

import "time"

// CreateIssuanceRequest entrada para registrar una salida de stock.
type CreateIssuanceRequest struct {
	ProductID    string `json:"product_id" validate:"required"`
	Quantity     int    `json:"quantity" validate:"required,gt=0"`
	CustomerName string `json:"customer_name" validate:"required,min=1,max=200"`
	Branch       string `json:"branch" validate:"required,min=1,max=100"`
	Engineer     string `json:"engineer" validate:"max=100"`
	SerialNumber string `json:"serial_number" validate:"max=100"`
}

// IssuanceResponse salida de stock registrada.
type IssuanceResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	Quantity     int       `json:"quantity"`
	CustomerName string    `json:"customer_name"`
	Branch       string    `json:"branch"`
	Engineer     string    `json:"engineer,omitempty"`
	SerialNumber string    `json:"serial_number,omitempty"`
	IssuedBy     string    `json:"issued_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// IssuanceListResponse lista paginada de salidas.
type IssuanceListResponse struct {
	Items []IssuanceResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ProductIssuancesResponse salidas de un producto, más recientes primero.
type ProductIssuancesResponse struct {
	ProductID string             `json:"product_id"`
	Items     []IssuanceResponse `json:"items"`
}
