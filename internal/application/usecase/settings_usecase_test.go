package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itmco/inventory-api/internal/application/dto"
	"github.com/itmco/inventory-api/internal/domain"
)

// settingsGateway Table Gateway en memoria limitado a la tabla settings.
type settingsGateway struct {
	rows map[string]map[string]any
}

func newSettingsGateway() *settingsGateway {
	return &settingsGateway{rows: make(map[string]map[string]any)}
}

func (g *settingsGateway) Select(_ context.Context, _ string, filter map[string]any) ([]map[string]any, error) {
	id, _ := filter["id"].(string)
	row, ok := g.rows[id]
	if !ok {
		return nil, nil
	}
	return []map[string]any{row}, nil
}

func (g *settingsGateway) SelectAllOrdered(_ context.Context, _ string) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(g.rows))
	for _, r := range g.rows {
		out = append(out, r)
	}
	return out, nil
}

func (g *settingsGateway) Insert(_ context.Context, _ string, record map[string]any) error {
	id, _ := record["id"].(string)
	g.rows[id] = record
	return nil
}

func (g *settingsGateway) InsertMany(_ context.Context, _ string, records []map[string]any) (int, error) {
	for _, r := range records {
		id, _ := r["id"].(string)
		g.rows[id] = r
	}
	return len(records), nil
}

func (g *settingsGateway) Update(_ context.Context, _ string, id string, patch map[string]any) error {
	row, ok := g.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	for k, v := range patch {
		row[k] = v
	}
	return nil
}

func (g *settingsGateway) Delete(_ context.Context, _ string, id string) error {
	delete(g.rows, id)
	return nil
}

// Sin fila persistida aún → valores por defecto.
func TestSettingsGet_SinFilaDevuelveDefaults(t *testing.T) {
	uc := NewSettingsUseCase(newSettingsGateway())

	out, err := uc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ITMCO", out.OrgName)
	assert.Equal(t, 0, out.MinStockAlert)
}

// Primer update inserta la fila única; el get posterior la lee de vuelta.
func TestSettingsUpdate_InsertaYLuegoLee(t *testing.T) {
	gw := newSettingsGateway()
	uc := NewSettingsUseCase(gw)

	in := dto.UpdateSettingsRequest{
		OrgName:             "ITMCO Medellín",
		MinStockAlert:       5,
		BackupIntervalHours: 24,
	}
	out, err := uc.Update(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "ITMCO Medellín", out.OrgName)

	got, err := uc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ITMCO Medellín", got.OrgName)
	assert.Equal(t, 5, got.MinStockAlert)
	assert.Equal(t, 24, got.BackupIntervalHours)
}

// El segundo update actualiza la misma fila en vez de insertar otra.
func TestSettingsUpdate_SegundaVezActualiza(t *testing.T) {
	gw := newSettingsGateway()
	uc := NewSettingsUseCase(gw)

	_, err := uc.Update(context.Background(), dto.UpdateSettingsRequest{OrgName: "ITMCO", MinStockAlert: 3})
	require.NoError(t, err)
	_, err = uc.Update(context.Background(), dto.UpdateSettingsRequest{OrgName: "ITMCO", MinStockAlert: 7})
	require.NoError(t, err)

	assert.Len(t, gw.rows, 1, "la tabla settings mantiene una sola fila")

	got, err := uc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, got.MinStockAlert)
}

// Entrada inválida → VALIDATION sin tocar el gateway.
func TestSettingsUpdate_EntradaInvalida(t *testing.T) {
	gw := newSettingsGateway()
	uc := NewSettingsUseCase(gw)

	_, err := uc.Update(context.Background(), dto.UpdateSettingsRequest{OrgName: "", MinStockAlert: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, gw.rows)
}

// El driver puede devolver enteros de distinto ancho; se normalizan todos.
func TestAsInt_NormalizaAnchos(t *testing.T) {
	assert.Equal(t, 5, asInt(5))
	assert.Equal(t, 5, asInt(int16(5)))
	assert.Equal(t, 5, asInt(int32(5)))
	assert.Equal(t, 5, asInt(int64(5)))
	assert.Equal(t, 5, asInt(float64(5)))
	assert.Equal(t, 0, asInt("cinco"))
}
