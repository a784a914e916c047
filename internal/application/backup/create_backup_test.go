package backup

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itmco/inventory-api/internal/domain"
	"github.com/itmco/inventory-api/internal/domain/entity"
)

func row(id string) map[string]any {
	return map[string]any{"id": id, "name": "fila " + id}
}

// Caso 1: snapshot completo → metadatos versionados y conteos que coinciden con
// las filas reales de cada tabla.
func TestCreateBackup_SnapshotCompleto(t *testing.T) {
	gw := newFakeGateway()
	gw.tables["products"] = []map[string]any{row("p1"), row("p2")}
	gw.tables["warehouses"] = []map[string]any{row("w1")}
	history := &fakeHistory{}

	engine := NewEngine(gw, history, testLogger())
	ts := time.Date(2026, 5, 10, 3, 0, 0, 0, time.UTC)
	engine.now = func() time.Time { return ts }

	snap, err := engine.CreateBackup(context.Background(), []string{"products", "warehouses"}, entity.BackupTypeManual)
	require.NoError(t, err)

	assert.Equal(t, "2.0", snap.Metadata.Version)
	assert.Equal(t, "ITMCO Inventory Management System", snap.Metadata.System)
	assert.Equal(t, ts, snap.Metadata.Timestamp)
	assert.NotEmpty(t, snap.Metadata.BackupID)
	assert.Equal(t, []string{"products", "warehouses"}, snap.Metadata.Tables)

	assert.Equal(t, 2, snap.Metadata.RecordCounts["products"])
	assert.Equal(t, 1, snap.Metadata.RecordCounts["warehouses"])
	assert.Len(t, snap.Data["products"], 2)
	assert.Len(t, snap.Data["warehouses"], 1)
}

// Caso 2: tabla fuera de la allow-list → rechazo ANTES de ejecutar lectura alguna.
func TestCreateBackup_TablaNoPermitidaSinLecturas(t *testing.T) {
	gw := newFakeGateway()
	gw.tables["products"] = []map[string]any{row("p1")}
	engine := NewEngine(gw, &fakeHistory{}, testLogger())

	_, err := engine.CreateBackup(context.Background(), []string{"products", "pg_shadow"}, entity.BackupTypeManual)
	assert.ErrorIs(t, err, domain.ErrTableNotAllowed)
	assert.Empty(t, gw.selectCalls, "ninguna tabla debe leerse si alguna no está permitida")
}

// Caso 3: todo-o-nada. Un error de lectura en la segunda tabla aborta el snapshot
// completo; no se devuelve documento parcial.
func TestCreateBackup_ErrorDeLecturaAbortaTodo(t *testing.T) {
	gw := newFakeGateway()
	gw.tables["products"] = []map[string]any{row("p1")}
	gw.failOn["issuances"] = errRemote
	history := &fakeHistory{}
	engine := NewEngine(gw, history, testLogger())

	snap, err := engine.CreateBackup(context.Background(), []string{"products", "issuances"}, entity.BackupTypeManual)
	require.Error(t, err)
	assert.ErrorIs(t, err, errRemote)
	assert.Nil(t, snap, "ante fallo de lectura no hay snapshot parcial")
	assert.Empty(t, history.records, "un respaldo fallido no genera registro de historial")
}

// Caso 4: tabla vacía es válida; aparece con slice vacío y conteo cero.
func TestCreateBackup_TablaVaciaEsValida(t *testing.T) {
	gw := newFakeGateway()
	engine := NewEngine(gw, &fakeHistory{}, testLogger())

	snap, err := engine.CreateBackup(context.Background(), []string{"settings"}, entity.BackupTypeManual)
	require.NoError(t, err)
	require.NotNil(t, snap.Data["settings"])
	assert.Empty(t, snap.Data["settings"])
	assert.Equal(t, 0, snap.Metadata.RecordCounts["settings"])
}

// Caso 5: si la persistencia del historial falla, el snapshot ya producido se
// devuelve igual al caller.
func TestCreateBackup_FalloDeHistorialNoAnulaSnapshot(t *testing.T) {
	gw := newFakeGateway()
	gw.tables["products"] = []map[string]any{row("p1")}
	history := &fakeHistory{createErr: errRemote}
	engine := NewEngine(gw, history, testLogger())

	snap, err := engine.CreateBackup(context.Background(), []string{"products"}, entity.BackupTypeManual)
	require.NoError(t, err, "el fallo de historial no debe propagarse")
	require.NotNil(t, snap)
	assert.Empty(t, history.records)
}

// Caso 6: respaldo exitoso persiste un registro de historial con tipo y estado.
func TestCreateBackup_PersisteHistorial(t *testing.T) {
	gw := newFakeGateway()
	gw.tables["products"] = []map[string]any{row("p1")}
	history := &fakeHistory{}
	engine := NewEngine(gw, history, testLogger())

	snap, err := engine.CreateBackup(context.Background(), []string{"products"}, entity.BackupTypeAuto)
	require.NoError(t, err)
	require.Len(t, history.records, 1)

	rec := history.records[0]
	assert.Equal(t, snap.Metadata.BackupID, rec.ID)
	assert.Equal(t, entity.BackupTypeAuto, rec.Type)
	assert.Equal(t, entity.BackupStatusCompleted, rec.Status)
	assert.Greater(t, rec.SizeBytes, int64(0))
}

// Caso 7: tipo de respaldo desconocido y lista vacía se rechazan como entrada inválida.
func TestCreateBackup_EntradasInvalidas(t *testing.T) {
	engine := NewEngine(newFakeGateway(), &fakeHistory{}, testLogger())

	_, err := engine.CreateBackup(context.Background(), []string{"products"}, "semanal")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = engine.CreateBackup(context.Background(), nil, entity.BackupTypeManual)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
