package backup

import (
	"context"
	"errors"
	"time"

	"github.com/itmco/inventory-api/internal/domain/entity"
	"github.com/itmco/inventory-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes compartidos por los tests del paquete
// ──────────────────────────────────────────────────────────────────────────────

// fakeGateway Table Gateway en memoria. failOn hace fallar la lectura o el
// insert de una tabla puntual para simular errores remotos por tabla.
type fakeGateway struct {
	tables      map[string][]map[string]any
	failOn      map[string]error
	selectCalls []string
	inserted    map[string][]map[string]any
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		tables:   make(map[string][]map[string]any),
		failOn:   make(map[string]error),
		inserted: make(map[string][]map[string]any),
	}
}

func (g *fakeGateway) Select(_ context.Context, table string, _ map[string]any) ([]map[string]any, error) {
	return g.tables[table], nil
}

func (g *fakeGateway) SelectAllOrdered(_ context.Context, table string) ([]map[string]any, error) {
	g.selectCalls = append(g.selectCalls, table)
	if err, ok := g.failOn[table]; ok {
		return nil, err
	}
	return g.tables[table], nil
}

func (g *fakeGateway) Insert(_ context.Context, table string, record map[string]any) error {
	g.inserted[table] = append(g.inserted[table], record)
	return nil
}

func (g *fakeGateway) InsertMany(_ context.Context, table string, records []map[string]any) (int, error) {
	if err, ok := g.failOn[table]; ok {
		return 0, err
	}
	g.inserted[table] = append(g.inserted[table], records...)
	return len(records), nil
}

func (g *fakeGateway) Update(_ context.Context, _ string, _ string, _ map[string]any) error {
	return nil
}

func (g *fakeGateway) Delete(_ context.Context, _ string, _ string) error {
	return nil
}

// fakeHistory historial en memoria, más reciente primero.
type fakeHistory struct {
	records   []*entity.BackupRecord
	createErr error
}

func (h *fakeHistory) Create(_ context.Context, r *entity.BackupRecord) error {
	if h.createErr != nil {
		return h.createErr
	}
	h.records = append([]*entity.BackupRecord{r}, h.records...)
	return nil
}

func (h *fakeHistory) Latest(_ context.Context) (*entity.BackupRecord, error) {
	if len(h.records) == 0 {
		return nil, nil
	}
	return h.records[0], nil
}

func (h *fakeHistory) List(_ context.Context, limit int) ([]*entity.BackupRecord, error) {
	if limit > len(h.records) {
		limit = len(h.records)
	}
	return h.records[:limit], nil
}

func (h *fakeHistory) PruneBeyondCount(_ context.Context, keep int) (int, error) {
	if len(h.records) <= keep {
		return 0, nil
	}
	pruned := len(h.records) - keep
	h.records = h.records[:keep]
	return pruned, nil
}

func (h *fakeHistory) PruneOlderThan(_ context.Context, cutoff time.Time) (int, error) {
	kept := h.records[:0]
	pruned := 0
	for _, r := range h.records {
		if r.CreatedAt.Before(cutoff) {
			pruned++
			continue
		}
		kept = append(kept, r)
	}
	h.records = kept
	return pruned, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

var errRemote = errors.New("llamada remota falló")
