package backup

import (
	"context"
	"time"

	"github.com/itmco/inventory-api/internal/application/dto"
	"github.com/itmco/inventory-api/internal/domain/entity"
	"github.com/itmco/inventory-api/internal/domain/repository"
	"github.com/itmco/inventory-api/pkg/logger"
)

// SchedulerConfig política del controlador de respaldos programados.
type SchedulerConfig struct {
	Interval       time.Duration // tiempo mínimo entre respaldos automáticos
	RetentionCount int           // máximo de registros de historial a conservar (0 = sin límite)
	RetentionAge   time.Duration // edad máxima de un registro (0 = sin límite)
	DefaultTables  []string      // tablas del respaldo automático
}

// Scheduler decide si un respaldo está vencido a partir del registro de
// historial más reciente, dispara el motor y poda el historial según retención.
// Dos estados implícitos: NOT_DUE y DUE; la transición de vuelta a NOT_DUE la
// produce el timestamp del nuevo registro de historial.
type Scheduler struct {
	engine  *Engine
	history repository.BackupHistoryRepository
	cfg     SchedulerConfig
	log     *logger.Logger
	now     func() time.Time
}

// NewScheduler construye el controlador programado.
func NewScheduler(engine *Engine, history repository.BackupHistoryRepository, cfg SchedulerConfig, log *logger.Logger) *Scheduler {
	return &Scheduler{engine: engine, history: history, cfg: cfg, log: log, now: time.Now}
}

// IsBackupDue true cuando now - lastBackupTimestamp >= Interval.
// Historial vacío cuenta como vencido (nunca se ha respaldado).
func (s *Scheduler) IsBackupDue(ctx context.Context) (bool, error) {
	last, err := s.history.Latest(ctx)
	if err != nil {
		return false, err
	}
	if last == nil {
		return true, nil
	}
	return s.now().Sub(last.CreatedAt) >= s.cfg.Interval, nil
}

// RunCycle ejecuta el ciclo due-check → respaldo automático → limpieza.
// La limpieza corre después de cada ciclo vencido; su fallo no anula el respaldo.
func (s *Scheduler) RunCycle(ctx context.Context) (*dto.ScheduledCycleResponse, error) {
	due, err := s.IsBackupDue(ctx)
	if err != nil {
		return nil, err
	}
	res := &dto.ScheduledCycleResponse{Due: due}
	if !due {
		res.Message = "respaldo no vencido"
		return res, nil
	}

	snap, err := s.engine.CreateBackup(ctx, s.cfg.DefaultTables, entity.BackupTypeAuto)
	if err != nil {
		return nil, err
	}
	res.Ran = true
	res.BackupID = snap.Metadata.BackupID
	res.Message = "respaldo automático creado"

	pruned, err := s.CleanupOldBackups(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("limpieza de historial falló después del respaldo")
		res.Message = "respaldo automático creado; limpieza de historial falló"
		return res, nil
	}
	res.Pruned = pruned
	return res, nil
}

// CleanupOldBackups poda el historial según retención por cantidad y por edad.
// Es un paso de mantenimiento independiente: también se puede invocar solo.
func (s *Scheduler) CleanupOldBackups(ctx context.Context) (int, error) {
	total := 0
	if s.cfg.RetentionCount > 0 {
		n, err := s.history.PruneBeyondCount(ctx, s.cfg.RetentionCount)
		if err != nil {
			return total, err
		}
		total += n
	}
	if s.cfg.RetentionAge > 0 {
		cutoff := s.now().Add(-s.cfg.RetentionAge)
		n, err := s.history.PruneOlderThan(ctx, cutoff)
		if err != nil {
			return total, err
		}
		total += n
	}
	if total > 0 {
		s.log.Info().Int("pruned", total).Msg("historial de respaldos podado")
	}
	return total, nil
}
