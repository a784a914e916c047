package repository

import "context"

// TableGateway acceso genérico tipado-por-mapa a tablas nominadas del store.
// Cada operación es una sola llamada remota; los inserts multi-fila son una
// sola sentencia pero no hay transacciones entre llamadas (el caller no debe
// asumir atomicidad entre tablas).
type TableGateway interface {
	Select(ctx context.Context, table string, filter map[string]any) ([]map[string]any, error)
	// SelectAllOrdered devuelve todas las filas ordenadas por created_at ascendente.
	SelectAllOrdered(ctx context.Context, table string) ([]map[string]any, error)
	Insert(ctx context.Context, table string, record map[string]any) error
	// InsertMany inserta todas las filas en una sola sentencia. Devuelve filas insertadas.
	InsertMany(ctx context.Context, table string, records []map[string]any) (int, error)
	Update(ctx context.Context, table string, id string, patch map[string]any) error
	Delete(ctx context.Context, table string, id string) error
}
