package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/itmco/inventory-api/internal/application/dto"
	"github.com/itmco/inventory-api/internal/domain"
	"github.com/itmco/inventory-api/internal/domain/repository"
	"github.com/itmco/inventory-api/pkg/validator"
)

// settingsRowID la tabla settings tiene una sola fila con id fijo.
const settingsRowID = "org"

// SettingsUseCase lee y actualiza la configuración de la organización.
// Accede a la tabla settings a través del Table Gateway genérico (la misma vía
// que usan los motores de respaldo), no de un repositorio dedicado.
type SettingsUseCase struct {
	gateway repository.TableGateway
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(gateway repository.TableGateway) *SettingsUseCase {
	return &SettingsUseCase{gateway: gateway}
}

// Get devuelve la configuración vigente; si la fila no existe aún, valores por defecto.
func (uc *SettingsUseCase) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	rows, err := uc.gateway.Select(ctx, "settings", map[string]any{"id": settingsRowID})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &dto.SettingsResponse{OrgName: "ITMCO"}, nil
	}
	return rowToSettings(rows[0]), nil
}

// Update valida y persiste la configuración (insert si la fila no existe).
func (uc *SettingsUseCase) Update(ctx context.Context, in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	if res := validator.Validate(in); !res.Success {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(res.Errors, "; "))
	}
	now := time.Now()
	record := map[string]any{
		"org_name":              in.OrgName,
		"min_stock_alert":       in.MinStockAlert,
		"backup_interval_hours": in.BackupIntervalHours,
		"updated_at":            now,
	}

	existing, err := uc.gateway.Select(ctx, "settings", map[string]any{"id": settingsRowID})
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		record["id"] = settingsRowID
		record["created_at"] = now
		if err := uc.gateway.Insert(ctx, "settings", record); err != nil {
			return nil, err
		}
	} else if err := uc.gateway.Update(ctx, "settings", settingsRowID, record); err != nil {
		return nil, err
	}

	return &dto.SettingsResponse{
		OrgName:             in.OrgName,
		MinStockAlert:       in.MinStockAlert,
		BackupIntervalHours: in.BackupIntervalHours,
		UpdatedAt:           now,
	}, nil
}

func rowToSettings(row map[string]any) *dto.SettingsResponse {
	out := &dto.SettingsResponse{}
	if v, ok := row["org_name"].(string); ok {
		out.OrgName = v
	}
	out.MinStockAlert = asInt(row["min_stock_alert"])
	out.BackupIntervalHours = asInt(row["backup_interval_hours"])
	if v, ok := row["updated_at"].(time.Time); ok {
		out.UpdatedAt = v
	}
	return out
}

// asInt normaliza los anchos de entero que puede devolver el driver.
func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int16:
		return int(n)
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
