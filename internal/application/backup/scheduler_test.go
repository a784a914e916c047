package backup

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itmco/inventory-api/internal/domain/entity"
)

func newTestScheduler(gw *fakeGateway, history *fakeHistory, cfg SchedulerConfig) *Scheduler {
	engine := NewEngine(gw, history, testLogger())
	return NewScheduler(engine, history, cfg, testLogger())
}

// Caso 1: historial vacío → siempre vencido (nunca se ha respaldado).
func TestIsBackupDue_HistorialVacio(t *testing.T) {
	s := newTestScheduler(newFakeGateway(), &fakeHistory{}, SchedulerConfig{Interval: 24 * time.Hour})

	due, err := s.IsBackupDue(context.Background())
	require.NoError(t, err)
	assert.True(t, due)
}

// Caso 2: la transición DUE → NOT_DUE la produce el timestamp del último
// registro; pasado el intervalo vuelve a estar vencido.
func TestIsBackupDue_RespetaIntervalo(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	history := &fakeHistory{records: []*entity.BackupRecord{
		{ID: "bk-1", CreatedAt: now.Add(-23 * time.Hour), Type: entity.BackupTypeAuto},
	}}
	s := newTestScheduler(newFakeGateway(), history, SchedulerConfig{Interval: 24 * time.Hour})
	s.now = func() time.Time { return now }

	due, err := s.IsBackupDue(context.Background())
	require.NoError(t, err)
	assert.False(t, due, "a las 23h de un intervalo de 24h no está vencido")

	s.now = func() time.Time { return now.Add(2 * time.Hour) }
	due, err = s.IsBackupDue(context.Background())
	require.NoError(t, err)
	assert.True(t, due, "a las 25h ya está vencido")
}

// Caso 3: ciclo no vencido → no corre respaldo ni limpieza.
func TestRunCycle_NoVencidoNoHaceNada(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	gw := newFakeGateway()
	history := &fakeHistory{records: []*entity.BackupRecord{
		{ID: "bk-1", CreatedAt: now.Add(-time.Hour), Type: entity.BackupTypeAuto},
	}}
	s := newTestScheduler(gw, history, SchedulerConfig{
		Interval:      24 * time.Hour,
		DefaultTables: []string{"products"},
	})
	s.now = func() time.Time { return now }

	res, err := s.RunCycle(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Due)
	assert.False(t, res.Ran)
	assert.Empty(t, gw.selectCalls, "sin vencimiento no hay lecturas")
}

// Caso 4: ciclo vencido → respaldo automático con las tablas por defecto y
// nuevo registro en el historial, que deja al scheduler en NOT_DUE.
func TestRunCycle_VencidoCorreRespaldo(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	gw := newFakeGateway()
	gw.tables["products"] = []map[string]any{row("p1")}
	history := &fakeHistory{}
	s := newTestScheduler(gw, history, SchedulerConfig{
		Interval:      24 * time.Hour,
		DefaultTables: []string{"products", "settings"},
	})
	s.now = func() time.Time { return now }
	s.engine.now = func() time.Time { return now }

	res, err := s.RunCycle(context.Background())
	require.NoError(t, err)

	assert.True(t, res.Due)
	assert.True(t, res.Ran)
	assert.NotEmpty(t, res.BackupID)
	assert.Equal(t, []string{"products", "settings"}, gw.selectCalls)

	require.Len(t, history.records, 1)
	assert.Equal(t, entity.BackupTypeAuto, history.records[0].Type)

	due, err := s.IsBackupDue(context.Background())
	require.NoError(t, err)
	assert.False(t, due, "el nuevo registro devuelve al scheduler a NOT_DUE")
}

// Caso 5: retención por cantidad y por edad; la poda corre tras el respaldo.
func TestCleanupOldBackups_Retencion(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	history := &fakeHistory{}
	// 5 registros: el más viejo con 100 días, el resto recientes.
	for i := 4; i >= 0; i-- {
		age := time.Duration(i) * time.Hour
		if i == 4 {
			age = 100 * 24 * time.Hour
		}
		_ = history.Create(context.Background(), &entity.BackupRecord{
			ID:        "bk",
			CreatedAt: now.Add(-age),
			Type:      entity.BackupTypeAuto,
		})
	}
	s := newTestScheduler(newFakeGateway(), history, SchedulerConfig{
		Interval:       24 * time.Hour,
		RetentionCount: 3,
		RetentionAge:   90 * 24 * time.Hour,
	})
	s.now = func() time.Time { return now }

	pruned, err := s.CleanupOldBackups(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, pruned, "uno por exceso de cantidad y el centenario ya cayó en ese corte")
	assert.Len(t, history.records, 3)
}
