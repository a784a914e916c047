package entity

import "time"

// Issuance representa una salida de stock entregada a un cliente/sucursal.
// Consume stock del producto; el descuento se hace con update condicional (Version).
type Issuance struct {
	ID           string
	ProductID    string
	Quantity     int // > 0
	CustomerName string
	Branch       string
	Engineer     string
	SerialNumber string
	IssuedBy     string // UserID
	CreatedAt    time.Time
}
