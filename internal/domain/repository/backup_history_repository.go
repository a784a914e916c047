package repository

import (
	"context"
	"time"

	"github.com/itmco/inventory-api/internal/domain/entity"
)

// BackupHistoryRepository puerto del historial de respaldos.
// El historial en DB es la fuente de verdad para el due-check y la retención;
// cualquier cache de UI es una proyección, nunca autoritativa.
type BackupHistoryRepository interface {
	Create(ctx context.Context, record *entity.BackupRecord) error
	// Latest devuelve el registro más reciente, o nil si el historial está vacío.
	Latest(ctx context.Context) (*entity.BackupRecord, error)
	List(ctx context.Context, limit int) ([]*entity.BackupRecord, error)
	// PruneBeyondCount elimina los registros que exceden los `keep` más recientes.
	PruneBeyondCount(ctx context.Context, keep int) (int, error)
	// PruneOlderThan elimina los registros anteriores a cutoff.
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
