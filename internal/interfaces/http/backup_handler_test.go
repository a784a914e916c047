package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itmco/inventory-api/internal/application/backup"
	"github.com/itmco/inventory-api/internal/domain/entity"
	apphttp "github.com/itmco/inventory-api/internal/interfaces/http"
	"github.com/itmco/inventory-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de los puertos del motor de respaldos
// ──────────────────────────────────────────────────────────────────────────────

type memGateway struct {
	tables map[string][]map[string]any
}

func (g *memGateway) Select(_ context.Context, table string, _ map[string]any) ([]map[string]any, error) {
	return g.tables[table], nil
}

func (g *memGateway) SelectAllOrdered(_ context.Context, table string) ([]map[string]any, error) {
	return g.tables[table], nil
}

func (g *memGateway) Insert(_ context.Context, table string, record map[string]any) error {
	g.tables[table] = append(g.tables[table], record)
	return nil
}

func (g *memGateway) InsertMany(_ context.Context, table string, records []map[string]any) (int, error) {
	g.tables[table] = append(g.tables[table], records...)
	return len(records), nil
}

func (g *memGateway) Update(_ context.Context, _ string, _ string, _ map[string]any) error {
	return nil
}

func (g *memGateway) Delete(_ context.Context, _ string, _ string) error {
	return nil
}

type memHistory struct {
	records []*entity.BackupRecord
}

func (h *memHistory) Create(_ context.Context, r *entity.BackupRecord) error {
	h.records = append([]*entity.BackupRecord{r}, h.records...)
	return nil
}

func (h *memHistory) Latest(_ context.Context) (*entity.BackupRecord, error) {
	if len(h.records) == 0 {
		return nil, nil
	}
	return h.records[0], nil
}

func (h *memHistory) List(_ context.Context, limit int) ([]*entity.BackupRecord, error) {
	if limit > len(h.records) {
		limit = len(h.records)
	}
	return h.records[:limit], nil
}

func (h *memHistory) PruneBeyondCount(_ context.Context, keep int) (int, error) {
	if len(h.records) <= keep {
		return 0, nil
	}
	pruned := len(h.records) - keep
	h.records = h.records[:keep]
	return pruned, nil
}

func (h *memHistory) PruneOlderThan(_ context.Context, _ time.Time) (int, error) {
	return 0, nil
}

const schedulerSecret = "super-secreto-de-cron"

// buildBackupApp registra las rutas de respaldo sin middleware de auth:
// aquí se prueba la puerta por secreto compartido y el contrato HTTP.
func buildBackupApp(sharedSecret string) (*fiber.App, *memHistory) {
	gw := &memGateway{tables: map[string][]map[string]any{
		"products": {{"id": "p1", "name": "Compresor"}},
	}}
	history := &memHistory{}
	log := logger.New(logger.Config{Env: "development", Level: "error"})

	engine := backup.NewEngine(gw, history, log)
	restorer := backup.NewRestorer(gw, log)
	scheduler := backup.NewScheduler(engine, history, backup.SchedulerConfig{
		Interval:       24 * time.Hour,
		RetentionCount: 30,
		DefaultTables:  []string{"products"},
	}, log)

	handler := apphttp.NewBackupHandler(engine, restorer, scheduler, history, sharedSecret, []string{"products"})

	app := fiber.New()
	app.Get("/api/backups/scheduled", handler.Scheduled)
	app.Post("/api/backups/restore", handler.Restore)
	return app, history
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/backups/scheduled — gate por secreto compartido
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: sin secreto → 401 BAD_SECRET, sin respaldo.
func TestScheduled_SinSecreto_Retorna401(t *testing.T) {
	app, history := buildBackupApp(schedulerSecret)

	req := httptest.NewRequest(http.MethodGet, "/api/backups/scheduled", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "BAD_SECRET", body["code"])
	assert.Empty(t, history.records, "sin secreto válido no debe correr ningún respaldo")
}

// Caso 2: secreto incorrecto → 401.
func TestScheduled_SecretoIncorrecto_Retorna401(t *testing.T) {
	app, history := buildBackupApp(schedulerSecret)

	req := httptest.NewRequest(http.MethodGet, "/api/backups/scheduled?secret=adivinando", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, history.records)
}

// Caso 3: secreto correcto con historial vacío → corre el ciclo y reporta el respaldo.
func TestScheduled_SecretoCorrecto_CorreCiclo(t *testing.T) {
	app, history := buildBackupApp(schedulerSecret)

	req := httptest.NewRequest(http.MethodGet, "/api/backups/scheduled?secret="+schedulerSecret, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["due"])
	assert.Equal(t, true, body["ran"])
	assert.NotEmpty(t, body["backup_id"])

	require.Len(t, history.records, 1)
	assert.Equal(t, entity.BackupTypeAuto, history.records[0].Type)
}

// Caso 4: segundo disparo inmediato → 200 con due=false, sin nuevo respaldo.
func TestScheduled_SegundoDisparoNoVencido(t *testing.T) {
	app, history := buildBackupApp(schedulerSecret)

	url := "/api/backups/scheduled?secret=" + schedulerSecret
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, url, nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, url, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["due"])
	assert.Len(t, history.records, 1, "el segundo disparo no debe crear otro respaldo")
}

// Caso 5: secreto no configurado en el servidor → la ruta queda cerrada (401 siempre).
func TestScheduled_SecretoNoConfigurado_RutaCerrada(t *testing.T) {
	app, _ := buildBackupApp("")

	req := httptest.NewRequest(http.MethodGet, "/api/backups/scheduled?secret=", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"sin BACKUP_SHARED_SECRET configurado nadie puede disparar el ciclo")
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/backups/restore — contrato HTTP
// ──────────────────────────────────────────────────────────────────────────────

// Documento sin forma de snapshot → 400 INVALID_SNAPSHOT.
func TestRestore_DocumentoInvalido_Retorna400(t *testing.T) {
	app, _ := buildBackupApp(schedulerSecret)

	req := httptest.NewRequest(http.MethodPost, "/api/backups/restore", bytes.NewBufferString(`{"foo": 1}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INVALID_SNAPSHOT", body["code"])
}

// Éxito parcial (tabla no permitida en el documento) → HTTP 200 con success=false.
func TestRestore_ExitoParcialRetorna200(t *testing.T) {
	app, _ := buildBackupApp(schedulerSecret)

	snap := entity.Snapshot{
		Metadata: entity.SnapshotMetadata{
			BackupID:  "bk-test",
			Version:   "2.0",
			Timestamp: time.Now().UTC(),
			Tables:    []string{"products", "pg_shadow"},
		},
		Data: map[string][]map[string]any{
			"products":  {{"id": "p9", "name": "Bomba de vacío"}},
			"pg_shadow": {{"id": "x"}},
		},
	}
	raw, err := json.Marshal(snap)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/backups/restore", bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"el éxito parcial es un resultado válido, no un error HTTP")

	var result backup.RestoreResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.False(t, result.Success)
	assert.Equal(t, "restored", result.Restored["products"].Status)
	assert.Contains(t, result.Errors, "pg_shadow")
	assert.Equal(t, 1, result.Summary.FailedTables)
}
