package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/itmco/inventory-api/internal/domain/entity"
	"github.com/itmco/inventory-api/internal/domain/repository"
	"github.com/jackc/pgx/v5"
)

var _ repository.BackupHistoryRepository = (*BackupHistoryRepo)(nil)

// BackupHistoryRepo persistencia del historial de respaldos.
// record_counts se guarda como JSONB.
type BackupHistoryRepo struct {
	q Querier
}

// NewBackupHistoryRepository construye el adaptador de historial. Pasar pool o tx (Querier).
func NewBackupHistoryRepository(q Querier) *BackupHistoryRepo {
	return &BackupHistoryRepo{q: q}
}

// Create persiste un registro de historial.
func (r *BackupHistoryRepo) Create(ctx context.Context, record *entity.BackupRecord) error {
	counts, err := json.Marshal(record.RecordCounts)
	if err != nil {
		return fmt.Errorf("marshal record counts: %w", err)
	}
	query := `
		INSERT INTO backup_history (id, created_at, type, record_counts, size_bytes, status)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.q.Exec(ctx, query,
		record.ID, record.CreatedAt, record.Type, counts, record.SizeBytes, record.Status,
	)
	if err != nil {
		return fmt.Errorf("insert backup record: %w", err)
	}
	return nil
}

// Latest devuelve el registro más reciente, o nil si el historial está vacío.
func (r *BackupHistoryRepo) Latest(ctx context.Context) (*entity.BackupRecord, error) {
	query := `
		SELECT id, created_at, type, record_counts, size_bytes, status
		FROM backup_history ORDER BY created_at DESC LIMIT 1`
	rec, err := scanBackupRecord(r.q.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest backup record: %w", err)
	}
	return rec, nil
}

// List devuelve hasta limit registros, más recientes primero.
func (r *BackupHistoryRepo) List(ctx context.Context, limit int) ([]*entity.BackupRecord, error) {
	query := `
		SELECT id, created_at, type, record_counts, size_bytes, status
		FROM backup_history ORDER BY created_at DESC LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list backup records: %w", err)
	}
	defer rows.Close()
	var list []*entity.BackupRecord
	for rows.Next() {
		rec, err := scanBackupRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan backup record: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// PruneBeyondCount elimina los registros que exceden los `keep` más recientes.
func (r *BackupHistoryRepo) PruneBeyondCount(ctx context.Context, keep int) (int, error) {
	query := `
		DELETE FROM backup_history
		WHERE id NOT IN (
			SELECT id FROM backup_history ORDER BY created_at DESC LIMIT $1
		)`
	tag, err := r.q.Exec(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("prune backup history by count: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// PruneOlderThan elimina los registros anteriores a cutoff.
func (r *BackupHistoryRepo) PruneOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM backup_history WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune backup history by age: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func scanBackupRecord(row pgx.Row) (*entity.BackupRecord, error) {
	var rec entity.BackupRecord
	var counts []byte
	if err := row.Scan(&rec.ID, &rec.CreatedAt, &rec.Type, &counts, &rec.SizeBytes, &rec.Status); err != nil {
		return nil, err
	}
	if len(counts) > 0 {
		if err := json.Unmarshal(counts, &rec.RecordCounts); err != nil {
			return nil, fmt.Errorf("unmarshal record counts: %w", err)
		}
	}
	return &rec, nil
}
