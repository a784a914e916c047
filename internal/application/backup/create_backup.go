package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/itmco/inventory-api/internal/domain"
	"github.com/itmco/inventory-api/internal/domain/entity"
	"github.com/itmco/inventory-api/internal/domain/repository"
	"github.com/itmco/inventory-api/pkg/logger"
)

// Versión del formato del documento de respaldo y nombre del sistema emisor.
const (
	snapshotVersion = "2.0"
	systemName      = "ITMCO Inventory Management System"
)

// Engine produce documentos de respaldo a partir del Table Gateway.
// El snapshot es todo-o-nada: el primer error de lectura de tabla aborta la
// operación completa aunque cada lectura sea una llamada remota independiente.
// Nota: las lecturas por tabla son secuenciales y sin fence de consistencia;
// un respaldo tomado con escrituras en vuelo puede no ser point-in-time entre tablas.
type Engine struct {
	gateway repository.TableGateway
	history repository.BackupHistoryRepository
	log     *logger.Logger
	now     func() time.Time
}

// NewEngine construye el motor de respaldos.
func NewEngine(gateway repository.TableGateway, history repository.BackupHistoryRepository, log *logger.Logger) *Engine {
	return &Engine{gateway: gateway, history: history, log: log, now: time.Now}
}

// CreateBackup valida las tablas contra la allow-list, lee cada tabla en orden
// (created_at ascendente) y arma el documento versionado con metadatos.
// Sobre éxito persiste un registro de historial; si esa persistencia falla, el
// snapshot ya producido se devuelve igual (solo se pierde el registro).
func (e *Engine) CreateBackup(ctx context.Context, tables []string, backupType string) (*entity.Snapshot, error) {
	if backupType == "" {
		backupType = entity.BackupTypeManual
	}
	if backupType != entity.BackupTypeManual && backupType != entity.BackupTypeAuto {
		return nil, fmt.Errorf("%w: tipo de respaldo %q", domain.ErrInvalidInput, backupType)
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("%w: lista de tablas vacía", domain.ErrInvalidInput)
	}
	// Allow-list primero: ante una tabla no permitida no se ejecuta ninguna lectura.
	for _, t := range tables {
		if !IsTableAllowed(t) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTableNotAllowed, t)
		}
	}

	data := make(map[string][]map[string]any, len(tables))
	counts := make(map[string]int, len(tables))
	for _, t := range tables {
		rows, err := e.gateway.SelectAllOrdered(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("leer tabla %s: %w", t, err)
		}
		if rows == nil {
			rows = []map[string]any{}
		}
		data[t] = rows
		counts[t] = len(rows)
	}

	snap := &entity.Snapshot{
		Metadata: entity.SnapshotMetadata{
			Timestamp:    e.now().UTC(),
			Version:      snapshotVersion,
			System:       systemName,
			Tables:       append([]string(nil), tables...),
			RecordCounts: counts,
			BackupID:     uuid.New().String(),
		},
		Data: data,
	}

	record := &entity.BackupRecord{
		ID:           snap.Metadata.BackupID,
		CreatedAt:    snap.Metadata.Timestamp,
		Type:         backupType,
		RecordCounts: counts,
		SizeBytes:    snapshotSize(snap),
		Status:       entity.BackupStatusCompleted,
	}
	if err := e.history.Create(ctx, record); err != nil {
		// El snapshot ya existe y se devuelve al caller; se pierde solo el historial.
		e.log.Warn().Err(err).Str("backup_id", record.ID).Msg("no se pudo persistir el historial del respaldo")
	}

	e.log.Info().
		Str("backup_id", record.ID).
		Str("type", backupType).
		Int("tables", len(tables)).
		Int64("size_bytes", record.SizeBytes).
		Msg("respaldo creado")

	return snap, nil
}

// snapshotSize tamaño en bytes del documento serializado (0 si no serializa).
func snapshotSize(snap *entity.Snapshot) int64 {
	raw, err := json.Marshal(snap)
	if err != nil {
		return 0
	}
	return int64(len(raw))
}
