package dto

import "time"

// UpdateSettingsRequest entrada para actualizar la configuración de la organización.
type UpdateSettingsRequest struct {
	OrgName             string `json:"org_name" validate:"required,min=1,max=200"`
	MinStockAlert       int    `json:"min_stock_alert" validate:"gte=0"`
	BackupIntervalHours int    `json:"backup_interval_hours" validate:"gte=0,lte=720"`
}

// SettingsResponse configuración vigente.
type SettingsResponse struct {
	OrgName             string    `json:"org_name"`
	MinStockAlert       int       `json:"min_stock_alert"`
	BackupIntervalHours int       `json:"backup_interval_hours"`
	UpdatedAt           time.Time `json:"updated_at"`
}
