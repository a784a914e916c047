package backup

import (
	"context"
	"sort"

	"github.com/itmco/inventory-api/internal/domain"
	"github.com/itmco/inventory-api/internal/domain/entity"
	"github.com/itmco/inventory-api/internal/domain/repository"
	"github.com/itmco/inventory-api/pkg/logger"
)

// TableRestoreInfo resultado por tabla restaurada.
type TableRestoreInfo struct {
	Records int    `json:"records"`
	Status  string `json:"status"` // restored | empty
}

// TableRestoreError fallo por tabla, sin abortar el resto.
type TableRestoreError struct {
	Error   string `json:"error"`
	Records int    `json:"records"`
}

// RestoreSummary agregados del resultado de restauración.
type RestoreSummary struct {
	TotalTables      int `json:"total_tables"`
	SuccessfulTables int `json:"successful_tables"`
	FailedTables     int `json:"failed_tables"`
	TotalRecords     int `json:"total_records"`
	RestoredRecords  int `json:"restored_records"`
}

// RestoreResult resultado agregado: éxito global solo si ninguna tabla falló.
type RestoreResult struct {
	Success  bool                         `json:"success"`
	Restored map[string]TableRestoreInfo  `json:"restored"`
	Errors   map[string]TableRestoreError `json:"errors"`
	Summary  RestoreSummary               `json:"summary"`
}

// Restorer reinyecta las filas de un documento de respaldo vía Table Gateway.
// La restauración es puramente aditiva: nunca borra filas existentes antes de
// insertar. Reaplicar el mismo documento contra constraints de id único produce
// conflictos de clave duplicada por tabla — política deliberadamente no
// idempotente a cambio de no ser destructiva.
type Restorer struct {
	gateway repository.TableGateway
	log     *logger.Logger
}

// NewRestorer construye el motor de restauración.
func NewRestorer(gateway repository.TableGateway, log *logger.Logger) *Restorer {
	return &Restorer{gateway: gateway, log: log}
}

// Restore valida la forma del documento (metadata y data presentes) y procesa
// cada tabla de data de forma independiente: una sola sentencia de insert por
// tabla; el error de una tabla se registra sin bloquear a las demás.
func (r *Restorer) Restore(ctx context.Context, snap *entity.Snapshot) (*RestoreResult, error) {
	if snap == nil || snap.Data == nil || !hasMetadata(snap) {
		return nil, domain.ErrInvalidSnapshot
	}

	result := &RestoreResult{
		Restored: make(map[string]TableRestoreInfo),
		Errors:   make(map[string]TableRestoreError),
	}

	// Orden determinístico para logs y tests reproducibles.
	tables := make([]string, 0, len(snap.Data))
	for t := range snap.Data {
		tables = append(tables, t)
	}
	sort.Strings(tables)

	for _, t := range tables {
		rows := snap.Data[t]
		result.Summary.TotalTables++
		result.Summary.TotalRecords += len(rows)

		if !IsTableAllowed(t) {
			result.Errors[t] = TableRestoreError{Error: domain.ErrTableNotAllowed.Error(), Records: len(rows)}
			continue
		}
		if len(rows) == 0 {
			result.Restored[t] = TableRestoreInfo{Records: 0, Status: "empty"}
			continue
		}
		n, err := r.gateway.InsertMany(ctx, t, rows)
		if err != nil {
			r.log.Warn().Err(err).Str("table", t).Int("records", len(rows)).Msg("tabla no restaurada")
			result.Errors[t] = TableRestoreError{Error: err.Error(), Records: len(rows)}
			continue
		}
		result.Restored[t] = TableRestoreInfo{Records: n, Status: "restored"}
		result.Summary.RestoredRecords += n
	}

	result.Summary.FailedTables = len(result.Errors)
	result.Summary.SuccessfulTables = result.Summary.TotalTables - result.Summary.FailedTables
	result.Success = result.Summary.FailedTables == 0

	r.log.Info().
		Str("backup_id", snap.Metadata.BackupID).
		Int("tables", result.Summary.TotalTables).
		Int("failed", result.Summary.FailedTables).
		Int("restored_records", result.Summary.RestoredRecords).
		Msg("restauración procesada")

	return result, nil
}

// hasMetadata exige que el bloque metadata traiga al menos un campo identificante.
func hasMetadata(snap *entity.Snapshot) bool {
	m := snap.Metadata
	return m.BackupID != "" || !m.Timestamp.IsZero() || len(m.Tables) > 0 || m.Version != ""
}
