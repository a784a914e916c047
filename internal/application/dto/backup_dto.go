package dto

import "time"

// CreateBackupRequest entrada para crear un respaldo. Tables vacío usa la lista por defecto.
type CreateBackupRequest struct {
	Type   string   `json:"type" validate:"omitempty,oneof=manual auto"`
	Tables []string `json:"tables"`
}

// BackupRecordResponse un registro del historial de respaldos.
type BackupRecordResponse struct {
	BackupID     string         `json:"backup_id"`
	Timestamp    time.Time      `json:"timestamp"`
	Type         string         `json:"type"`
	RecordCounts map[string]int `json:"record_counts"`
	SizeBytes    int64          `json:"size_bytes"`
	Status       string         `json:"status"`
}

// ScheduledCycleResponse resumen del ciclo due-check/backup/cleanup.
type ScheduledCycleResponse struct {
	Due      bool   `json:"due"`
	Ran      bool   `json:"ran"`
	BackupID string `json:"backup_id,omitempty"`
	Pruned   int    `json:"pruned"`
	Message  string `json:"message"`
}
