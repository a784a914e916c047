package entity

import "time"

// Settings configuración de la organización (fila única en la tabla settings).
// Se accede vía Table Gateway; BackupIntervalHours en 0 usa el valor de config.
type Settings struct {
	ID                  string
	OrgName             string
	MinStockAlert       int
	BackupIntervalHours int
	UpdatedAt           time.Time
}
