package stock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itmco/inventory-api/internal/application/dto"
	"github.com/itmco/inventory-api/internal/domain"
	"github.com/itmco/inventory-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeProductRepo repositorio de productos en memoria con CAS real sobre Version.
// conflictsBeforeOK simula writers concurrentes: cada llamada a UpdateStockCAS
// incrementa la versión por fuera antes de aplicar, forzando un reintento.
type fakeProductRepo struct {
	products          map[string]*entity.Product
	conflictsBeforeOK int
	casCalls          int
	getErr            error
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	m := make(map[string]*entity.Product)
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeProductRepo{products: m}
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) UpdateStockCAS(_ context.Context, id string, newStock int, expectedVersion int64) (bool, error) {
	f.casCalls++
	p, ok := f.products[id]
	if !ok {
		return false, nil
	}
	if f.conflictsBeforeOK > 0 {
		// Otro writer ganó la carrera: versión avanzada, CAS falla.
		f.conflictsBeforeOK--
		p.Version++
		return false, nil
	}
	if p.Version != expectedVersion {
		return false, nil
	}
	p.Stock = newStock
	p.Version++
	return true, nil
}

func (f *fakeProductRepo) List(_ context.Context, _, _ int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(f.products, id)
	return nil
}

// fakeEntryRepo ledger en memoria; prepende para devolver más recientes primero.
type fakeEntryRepo struct {
	entries   []*entity.StockEntry
	createErr error
}

func (f *fakeEntryRepo) Create(_ context.Context, e *entity.StockEntry) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.entries = append([]*entity.StockEntry{e}, f.entries...)
	return nil
}

func (f *fakeEntryRepo) ListByProduct(_ context.Context, productID string) ([]*entity.StockEntry, error) {
	out := make([]*entity.StockEntry, 0)
	for _, e := range f.entries {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out, nil
}

func testProduct(stock int) *entity.Product {
	return &entity.Product{
		ID:      "prod-1",
		Name:    "Compresor 3HP",
		Stock:   stock,
		Version: 1,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordEntry
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: entrada válida → previous_stock = S, new_stock = S + Q y el producto
// queda con el agregado confirmado.
func TestRecordEntry_ActualizaStockYApendea(t *testing.T) {
	products := newFakeProductRepo(testProduct(10))
	entries := &fakeEntryRepo{}
	uc := NewLedgerUseCase(products, entries)
	uc.now = func() time.Time { return time.Date(2026, 3, 15, 14, 30, 5, 0, time.UTC) }

	out, err := uc.RecordEntry(context.Background(), "user-1", dto.RecordStockEntryRequest{
		ProductID:     "prod-1",
		QuantityAdded: 7,
		Notes:         "reposición mensual",
	})
	require.NoError(t, err)

	assert.Equal(t, 10, out.PreviousStock)
	assert.Equal(t, 17, out.NewStock)
	assert.Equal(t, "user-1", out.EnteredBy)
	assert.Equal(t, "2026-03-15", out.EntryDate, "entry_date se deriva de created_at")
	assert.Equal(t, "14:30:05", out.EntryTime, "entry_time se deriva de created_at")

	assert.Equal(t, 17, products.products["prod-1"].Stock, "el agregado del producto debe quedar confirmado")
	require.Len(t, entries.entries, 1, "debe apendearse exactamente una entrada")
}

// Caso 2: cantidad cero o negativa → rechazo sin tocar producto ni ledger.
func TestRecordEntry_CantidadNoPositivaRechazada(t *testing.T) {
	for _, q := range []int{0, -5} {
		products := newFakeProductRepo(testProduct(10))
		entries := &fakeEntryRepo{}
		uc := NewLedgerUseCase(products, entries)

		_, err := uc.RecordEntry(context.Background(), "user-1", dto.RecordStockEntryRequest{
			ProductID:     "prod-1",
			QuantityAdded: q,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Equal(t, 0, products.casCalls, "no debe intentarse ningún update")
		assert.Empty(t, entries.entries, "no debe apendearse nada al ledger")
	}
}

// Caso 3: producto inexistente → ErrNotFound sin entrada.
func TestRecordEntry_ProductoInexistente(t *testing.T) {
	products := newFakeProductRepo()
	entries := &fakeEntryRepo{}
	uc := NewLedgerUseCase(products, entries)

	_, err := uc.RecordEntry(context.Background(), "user-1", dto.RecordStockEntryRequest{
		ProductID:     "no-existe",
		QuantityAdded: 3,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, entries.entries)
}

// Caso 4: un conflicto CAS se resuelve releyendo y reintentando; el delta se
// aplica sobre el stock fresco, no sobre la lectura vieja.
func TestRecordEntry_ConflictoCASReintenta(t *testing.T) {
	products := newFakeProductRepo(testProduct(10))
	products.conflictsBeforeOK = 1
	entries := &fakeEntryRepo{}
	uc := NewLedgerUseCase(products, entries)

	out, err := uc.RecordEntry(context.Background(), "user-1", dto.RecordStockEntryRequest{
		ProductID:     "prod-1",
		QuantityAdded: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, products.casCalls, "primer intento falla, segundo confirma")
	assert.Equal(t, 15, out.NewStock)
}

// Caso 5: conflicto persistente agota los reintentos → ErrConflict, ledger intacto.
func TestRecordEntry_ConflictoPersistenteAgotaIntentos(t *testing.T) {
	products := newFakeProductRepo(testProduct(10))
	products.conflictsBeforeOK = 100
	entries := &fakeEntryRepo{}
	uc := NewLedgerUseCase(products, entries)

	_, err := uc.RecordEntry(context.Background(), "user-1", dto.RecordStockEntryRequest{
		ProductID:     "prod-1",
		QuantityAdded: 5,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, casMaxAttempts, products.casCalls)
	assert.Empty(t, entries.entries, "sin confirmación no hay entrada en el ledger")
}

// Caso 6: el stock queda confirmado pero el append al ledger falla → error
// explícito de divergencia (sin rollback del agregado).
func TestRecordEntry_FalloDeAppendReportaDivergencia(t *testing.T) {
	products := newFakeProductRepo(testProduct(10))
	entries := &fakeEntryRepo{createErr: errors.New("conexión perdida")}
	uc := NewLedgerUseCase(products, entries)

	_, err := uc.RecordEntry(context.Background(), "user-1", dto.RecordStockEntryRequest{
		ProductID:     "prod-1",
		QuantityAdded: 5,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ledger")
	assert.Equal(t, 15, products.products["prod-1"].Stock, "el agregado ya quedó confirmado")
}

// ──────────────────────────────────────────────────────────────────────────────
// GetHistory / GetSummary
// ──────────────────────────────────────────────────────────────────────────────

// El historial respeta el orden del repositorio (más reciente primero).
func TestGetHistory_MasRecientePrimero(t *testing.T) {
	products := newFakeProductRepo(testProduct(0))
	entries := &fakeEntryRepo{}
	uc := NewLedgerUseCase(products, entries)

	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	for i, q := range []int{3, 5, 2} {
		uc.now = func() time.Time { return base.Add(time.Duration(i) * time.Hour) }
		_, err := uc.RecordEntry(context.Background(), "user-1", dto.RecordStockEntryRequest{
			ProductID:     "prod-1",
			QuantityAdded: q,
		})
		require.NoError(t, err)
	}

	hist, err := uc.GetHistory(context.Background(), "prod-1")
	require.NoError(t, err)
	require.Len(t, hist.Entries, 3)
	assert.Equal(t, 2, hist.Entries[0].QuantityAdded, "la última entrada registrada va primero")
	assert.Equal(t, 3, hist.Entries[2].QuantityAdded)
}

// El resumen se deriva del historial en cada llamada: total, conteo y promedio.
func TestGetSummary_DerivaDelHistorial(t *testing.T) {
	products := newFakeProductRepo(testProduct(0))
	entries := &fakeEntryRepo{}
	uc := NewLedgerUseCase(products, entries)

	for _, q := range []int{4, 6, 8} {
		_, err := uc.RecordEntry(context.Background(), "user-1", dto.RecordStockEntryRequest{
			ProductID:     "prod-1",
			QuantityAdded: q,
		})
		require.NoError(t, err)
	}

	sum, err := uc.GetSummary(context.Background(), "prod-1")
	require.NoError(t, err)
	assert.Equal(t, 18, sum.TotalQuantityAdded)
	assert.Equal(t, 3, sum.EntriesCount)
	assert.InDelta(t, 6.0, sum.AveragePerEntry, 0.0001)
}

// Producto sin entradas: resumen en ceros, sin división por cero.
func TestGetSummary_SinEntradas(t *testing.T) {
	uc := NewLedgerUseCase(newFakeProductRepo(), &fakeEntryRepo{})

	sum, err := uc.GetSummary(context.Background(), "prod-x")
	require.NoError(t, err)
	assert.Equal(t, 0, sum.EntriesCount)
	assert.Equal(t, 0.0, sum.AveragePerEntry)
}
