package entity

import "time"

// Tipos de respaldo.
const (
	BackupTypeManual = "manual"
	BackupTypeAuto   = "auto"
)

// Estado de un respaldo en el historial.
const (
	BackupStatusCompleted = "completed"
	BackupStatusFailed    = "failed"
)

// SnapshotMetadata metadatos del documento de respaldo.
type SnapshotMetadata struct {
	Timestamp    time.Time      `json:"timestamp"`
	Version      string         `json:"version"`
	System       string         `json:"system"`
	Tables       []string       `json:"tables"`
	RecordCounts map[string]int `json:"recordCounts"`
	BackupID     string         `json:"backupId"`
}

// Snapshot documento versionado con las filas de las tablas seleccionadas.
// Inmutable una vez producido; lo consume el motor de restauración o un humano.
type Snapshot struct {
	Metadata SnapshotMetadata            `json:"metadata"`
	Data     map[string][]map[string]any `json:"data"`
}

// BackupRecord registro de historial de un respaldo exitoso.
// Es la fuente de verdad para "último respaldo" y para la política de retención.
type BackupRecord struct {
	ID           string
	CreatedAt    time.Time
	Type         string // manual | auto
	RecordCounts map[string]int
	SizeBytes    int64
	Status       string // completed | failed
}
