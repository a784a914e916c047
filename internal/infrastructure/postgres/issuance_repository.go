package postgres

import (
	"context"
	"fmt"

	"github.com/itmco/inventory-api/internal/domain"
	"github.com/itmco/inventory-api/internal/domain/entity"
	"github.com/itmco/inventory-api/internal/domain/repository"
	"github.com/jackc/pgx/v5"
)

var _ repository.IssuanceRepository = (*IssuanceRepo)(nil)

// IssuanceRepo persistencia de salidas de stock.
type IssuanceRepo struct {
	q Querier
}

// NewIssuanceRepository construye el adaptador de salidas. Pasar pool o tx (Querier).
func NewIssuanceRepository(q Querier) *IssuanceRepo {
	return &IssuanceRepo{q: q}
}

// Create persiste una salida.
func (r *IssuanceRepo) Create(ctx context.Context, issuance *entity.Issuance) error {
	query := `
		INSERT INTO issuances (id, product_id, quantity, customer_name, branch, engineer, serial_number, issued_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		issuance.ID, issuance.ProductID, issuance.Quantity, issuance.CustomerName,
		issuance.Branch, issuance.Engineer, issuance.SerialNumber, issuance.IssuedBy, issuance.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert issuance: %w", err)
	}
	return nil
}

// List lista salidas con paginación, más recientes primero.
func (r *IssuanceRepo) List(ctx context.Context, limit, offset int) ([]*entity.Issuance, error) {
	query := `
		SELECT id, product_id, quantity, customer_name, branch, engineer, serial_number, issued_by, created_at
		FROM issuances ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list issuances: %w", err)
	}
	defer rows.Close()
	return scanIssuances(rows)
}

// ListByProduct salidas de un producto, más recientes primero.
func (r *IssuanceRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Issuance, error) {
	query := `
		SELECT id, product_id, quantity, customer_name, branch, engineer, serial_number, issued_by, created_at
		FROM issuances WHERE product_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list issuances by product: %w", err)
	}
	defer rows.Close()
	return scanIssuances(rows)
}

func scanIssuances(rows pgx.Rows) ([]*entity.Issuance, error) {
	var list []*entity.Issuance
	for rows.Next() {
		var i entity.Issuance
		if err := rows.Scan(&i.ID, &i.ProductID, &i.Quantity, &i.CustomerName,
			&i.Branch, &i.Engineer, &i.SerialNumber, &i.IssuedBy, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan issuance: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}
