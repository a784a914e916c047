package http

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/itmco/inventory-api/internal/application/backup"
	"github.com/itmco/inventory-api/internal/application/dto"
	"github.com/itmco/inventory-api/internal/domain/entity"
	"github.com/itmco/inventory-api/internal/domain/repository"
)

// BackupHandler maneja respaldos, restauración, historial y el trigger programado.
type BackupHandler struct {
	engine        *backup.Engine
	restorer      *backup.Restorer
	scheduler     *backup.Scheduler
	history       repository.BackupHistoryRepository
	sharedSecret  string
	defaultTables []string
}

// NewBackupHandler construye el handler.
func NewBackupHandler(
	engine *backup.Engine,
	restorer *backup.Restorer,
	scheduler *backup.Scheduler,
	history repository.BackupHistoryRepository,
	sharedSecret string,
	defaultTables []string,
) *BackupHandler {
	return &BackupHandler{
		engine:        engine,
		restorer:      restorer,
		scheduler:     scheduler,
		history:       history,
		sharedSecret:  sharedSecret,
		defaultTables: defaultTables,
	}
}

// Create godoc
// @Summary      Crear respaldo
// @Description  Respaldo manual de las tablas indicadas (o la lista por defecto).
// @Tags         backups
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBackupRequest  false  "type (manual|auto) y tables opcionales"
// @Success      200   {object}  entity.Snapshot
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/backups [post]
func (h *BackupHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBackupRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	tables := in.Tables
	if len(tables) == 0 {
		tables = h.defaultTables
	}
	snap, err := h.engine.CreateBackup(c.Context(), tables, in.Type)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(snap)
}

// Download godoc
// @Summary      Descargar respaldo
// @Description  Produce un respaldo completo y lo entrega como archivo JSON descargable.
// @Tags         backups
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.Snapshot
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/backups/download [get]
func (h *BackupHandler) Download(c *fiber.Ctx) error {
	snap, err := h.engine.CreateBackup(c.Context(), h.defaultTables, entity.BackupTypeManual)
	if err != nil {
		return failWith(c, err)
	}
	filename := fmt.Sprintf("itmco-backup-%s.json", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.JSON(snap)
}

// Restore godoc
// @Summary      Restaurar respaldo
// @Description  Reinyecta las filas del documento; resultado por tabla. Siempre HTTP 200
//
//	con success a nivel de cuerpo: el éxito parcial es un resultado válido.
//
// @Tags         backups
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  entity.Snapshot  true  "Documento de respaldo"
// @Success      200   {object}  backup.RestoreResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/backups/restore [post]
func (h *BackupHandler) Restore(c *fiber.Ctx) error {
	var snap entity.Snapshot
	if err := c.BodyParser(&snap); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.restorer.Restore(c.Context(), &snap)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(result)
}

// History godoc
// @Summary      Historial de respaldos
// @Tags         backups
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de registros"  default(10)
// @Success      200    {array}  dto.BackupRecordResponse
// @Router       /api/backups/history [get]
func (h *BackupHandler) History(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	records, err := h.history.List(c.Context(), limit)
	if err != nil {
		return failWith(c, err)
	}
	out := make([]dto.BackupRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.BackupRecordResponse{
			BackupID:     r.ID,
			Timestamp:    r.CreatedAt,
			Type:         r.Type,
			RecordCounts: r.RecordCounts,
			SizeBytes:    r.SizeBytes,
			Status:       r.Status,
		})
	}
	return c.JSON(out)
}

// Scheduled godoc
// @Summary      Trigger de respaldo programado
// @Description  Gateado por secreto compartido en query param; corre el ciclo
//
//	due-check → respaldo automático → limpieza de retención.
//
// @Tags         backups
// @Produce      json
// @Param        secret  query  string  true  "Secreto compartido"
// @Success      200     {object}  dto.ScheduledCycleResponse
// @Failure      401     {object}  dto.ErrorResponse
// @Router       /api/backups/scheduled [get]
func (h *BackupHandler) Scheduled(c *fiber.Ctx) error {
	secret := c.Query("secret")
	if h.sharedSecret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(h.sharedSecret)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "BAD_SECRET", Message: "secreto inválido"})
	}
	res, err := h.scheduler.RunCycle(c.Context())
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(res)
}
