package postgres

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/itmco/inventory-api/internal/domain"
	"github.com/itmco/inventory-api/internal/domain/repository"
	"github.com/jackc/pgx/v5"
)

var _ repository.TableGateway = (*TableGateway)(nil)

// identPattern nombres de tabla/columna admisibles para interpolar en SQL.
// La allow-list de negocio vive en el motor de respaldos; esto solo cierra la
// puerta a inyección vía identificadores.
var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]{0,62}$`)

// TableGateway acceso genérico a tablas nominadas: filas como map[string]any.
// Cada método es una sola llamada remota; no hay transacciones entre llamadas.
type TableGateway struct {
	q Querier
}

// NewTableGateway construye el gateway. Pasar pool o tx (Querier).
func NewTableGateway(q Querier) *TableGateway {
	return &TableGateway{q: q}
}

// Select devuelve las filas que cumplen el filtro de igualdad (nil = todas).
func (g *TableGateway) Select(ctx context.Context, table string, filter map[string]any) ([]map[string]any, error) {
	if err := checkIdent(table); err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT * FROM %s`, table)
	args := make([]any, 0, len(filter))
	if len(filter) > 0 {
		cols := sortedKeys(filter)
		conds := make([]string, 0, len(cols))
		for _, c := range cols {
			if err := checkIdent(c); err != nil {
				return nil, err
			}
			args = append(args, filter[c])
			conds = append(conds, fmt.Sprintf("%s = $%d", c, len(args)))
		}
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	rows, err := g.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	defer rows.Close()
	return collectRows(table, rows)
}

// SelectAllOrdered devuelve todas las filas ordenadas por created_at ascendente
// (orden de creación, el contrato que esperan los snapshots).
func (g *TableGateway) SelectAllOrdered(ctx context.Context, table string) ([]map[string]any, error) {
	if err := checkIdent(table); err != nil {
		return nil, err
	}
	rows, err := g.q.Query(ctx, fmt.Sprintf(`SELECT * FROM %s ORDER BY created_at ASC`, table))
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	defer rows.Close()
	return collectRows(table, rows)
}

// Insert inserta una fila.
func (g *TableGateway) Insert(ctx context.Context, table string, record map[string]any) error {
	_, err := g.InsertMany(ctx, table, []map[string]any{record})
	return err
}

// InsertMany inserta todas las filas en una sola sentencia multi-VALUES.
// Las columnas son la unión de las claves de todas las filas; las ausentes van NULL.
// No es atómico respecto a otras tablas, solo dentro de la sentencia.
func (g *TableGateway) InsertMany(ctx context.Context, table string, records []map[string]any) (int, error) {
	if err := checkIdent(table); err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	colSet := make(map[string]struct{})
	for _, rec := range records {
		for c := range rec {
			colSet[c] = struct{}{}
		}
	}
	cols := make([]string, 0, len(colSet))
	for c := range colSet {
		if err := checkIdent(c); err != nil {
			return 0, err
		}
		cols = append(cols, c)
	}
	sort.Strings(cols)

	args := make([]any, 0, len(records)*len(cols))
	valueRows := make([]string, 0, len(records))
	for _, rec := range records {
		placeholders := make([]string, 0, len(cols))
		for _, c := range cols {
			args = append(args, rec[c])
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		valueRows = append(valueRows, "("+strings.Join(placeholders, ", ")+")")
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		table, strings.Join(cols, ", "), strings.Join(valueRows, ", "))

	tag, err := g.q.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert %s: %w", table, domain.ErrDuplicate)
		}
		return 0, fmt.Errorf("insert %s: %w", table, err)
	}
	return int(tag.RowsAffected()), nil
}

// Update aplica un patch parcial a la fila identificada por id.
func (g *TableGateway) Update(ctx context.Context, table string, id string, patch map[string]any) error {
	if err := checkIdent(table); err != nil {
		return err
	}
	if len(patch) == 0 {
		return fmt.Errorf("%w: patch vacío", domain.ErrInvalidInput)
	}
	args := []any{id}
	cols := sortedKeys(patch)
	sets := make([]string, 0, len(cols))
	for _, c := range cols {
		if err := checkIdent(c); err != nil {
			return err
		}
		args = append(args, patch[c])
		sets = append(sets, fmt.Sprintf("%s = $%d", c, len(args)))
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $1", table, strings.Join(sets, ", "))
	tag, err := g.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la fila identificada por id.
func (g *TableGateway) Delete(ctx context.Context, table string, id string) error {
	if err := checkIdent(table); err != nil {
		return err
	}
	_, err := g.q.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}

// collectRows materializa pgx.Rows como mapas columna -> valor.
func collectRows(table string, rows pgx.Rows) ([]map[string]any, error) {
	fields := rows.FieldDescriptions()
	out := make([]map[string]any, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		rec := make(map[string]any, len(fields))
		for i, f := range fields {
			rec[f.Name] = values[i]
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows %s: %w", table, err)
	}
	return out, nil
}

func checkIdent(name string) error {
	if !identPattern.MatchString(name) {
		return fmt.Errorf("%w: identificador %q", domain.ErrInvalidInput, name)
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
