package ledger_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	items map[string]*entity.StockItem // por código
}

func newFakeItemRepo(items ...*entity.StockItem) *fakeItemRepo {
	r := &fakeItemRepo{items: map[string]*entity.StockItem{}}
	for _, it := range items {
		copia := *it
		r.items[it.Code] = &copia
	}
	return r
}

func (r *fakeItemRepo) Create(item *entity.StockItem) error {
	if _, ok := r.items[item.Code]; ok {
		return domain.ErrDuplicate
	}
	copia := *item
	r.items[item.Code] = &copia
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.StockItem, error) {
	for _, it := range r.items {
		if it.ID == id {
			copia := *it
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) GetByCode(code string) (*entity.StockItem, error) {
	it, ok := r.items[code]
	if !ok {
		return nil, nil
	}
	copia := *it
	return &copia, nil
}

func (r *fakeItemRepo) GetByCodeForUpdate(code string) (*entity.StockItem, error) {
	return r.GetByCode(code)
}

func (r *fakeItemRepo) Update(item *entity.StockItem) error {
	copia := *item
	r.items[item.Code] = &copia
	return nil
}

func (r *fakeItemRepo) UpdateCounters(code string, onHand, issued, remaining int64) error {
	it, ok := r.items[code]
	if !ok {
		return domain.ErrNotFound
	}
	it.OnHand = onHand
	it.Issued = issued
	it.Remaining = remaining
	return nil
}

func (r *fakeItemRepo) List(categoryID string) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	for _, it := range r.items {
		if categoryID == "" || it.CategoryID == categoryID {
			copia := *it
			out = append(out, &copia)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) ListCodesByPrefix(prefix string) ([]string, error) {
	var out []string
	for code := range r.items {
		if len(code) >= len(prefix) && code[:len(prefix)] == prefix {
			out = append(out, code)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Delete(id string) error { return nil }

type fakeMovementRepo struct {
	movements []*entity.LedgerMovement
}

func (r *fakeMovementRepo) Create(m *entity.LedgerMovement) error {
	copia := *m
	r.movements = append(r.movements, &copia)
	return nil
}

func (r *fakeMovementRepo) ListByType(movementType string, _ repository.MovementFilter) ([]*entity.LedgerMovement, error) {
	var out []*entity.LedgerMovement
	for _, m := range r.movements {
		if m.Type == movementType {
			out = append(out, m)
		}
	}
	return out, nil
}

var _ repository.StockItemRepository = (*fakeItemRepo)(nil)
var _ repository.LedgerMovementRepository = (*fakeMovementRepo)(nil)

func testItem(code string, onHand, issued int64) *entity.StockItem {
	return &entity.StockItem{
		ID:        "item-" + code,
		Code:      code,
		Name:      "Artículo " + code,
		OnHand:    onHand,
		Issued:    issued,
		Remaining: onHand - issued,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Receive
// ──────────────────────────────────────────────────────────────────────────────

func TestReceive_IncrementaOnHandYRemaining(t *testing.T) {
	items := newFakeItemRepo(testItem("1.001", 10, 4))
	movements := &fakeMovementRepo{}
	svc := ledger.NewService()

	updated, err := svc.Receive(items, movements, "1.001", "purchasing", 5, time.Now())
	require.NoError(t, err)

	assert.Equal(t, int64(15), updated.OnHand)
	assert.Equal(t, int64(4), updated.Issued)
	assert.Equal(t, int64(11), updated.Remaining)
	assert.Equal(t, updated.Remaining, updated.OnHand-updated.Issued,
		"remaining debe ser siempre on_hand - issued")

	require.Len(t, movements.movements, 1)
	assert.Equal(t, entity.MovementReceipt, movements.movements[0].Type)
	assert.Equal(t, int64(5), movements.movements[0].Quantity)
	assert.Equal(t, "purchasing", movements.movements[0].ActorName)
}

func TestReceive_ArticuloInexistente(t *testing.T) {
	items := newFakeItemRepo()
	svc := ledger.NewService()

	_, err := svc.Receive(items, &fakeMovementRepo{}, "9.999", "purchasing", 5, time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceive_CantidadNoPositiva(t *testing.T) {
	items := newFakeItemRepo(testItem("1.001", 10, 0))
	svc := ledger.NewService()

	_, err := svc.Receive(items, &fakeMovementRepo{}, "1.001", "purchasing", 0, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Issue
// ──────────────────────────────────────────────────────────────────────────────

func TestIssue_IncrementaIssuedYDecrementaRemaining(t *testing.T) {
	items := newFakeItemRepo(testItem("1.001", 10, 3))
	movements := &fakeMovementRepo{}
	svc := ledger.NewService()

	updated, err := svc.Issue(items, movements, "1.001", "qc", 4, time.Now())
	require.NoError(t, err)

	assert.Equal(t, int64(10), updated.OnHand, "on_hand no cambia al emitir")
	assert.Equal(t, int64(7), updated.Issued)
	assert.Equal(t, int64(3), updated.Remaining)

	require.Len(t, movements.movements, 1)
	assert.Equal(t, entity.MovementIssue, movements.movements[0].Type)
}

func TestIssue_StockInsuficiente(t *testing.T) {
	items := newFakeItemRepo(testItem("1.001", 10, 8)) // remaining = 2
	movements := &fakeMovementRepo{}
	svc := ledger.NewService()

	_, err := svc.Issue(items, movements, "1.001", "qc", 3, time.Now())
	require.Error(t, err)

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr), "debe ser InsufficientStockError")
	assert.Equal(t, "1.001", stockErr.ItemCode)
	assert.Equal(t, int64(2), stockErr.Available)
	assert.Equal(t, int64(3), stockErr.Requested)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Ni contadores ni movimientos deben haber cambiado
	it, _ := items.GetByCode("1.001")
	assert.Equal(t, int64(2), it.Remaining)
	assert.Empty(t, movements.movements)
}

func TestIssue_ExactamenteElRemaining(t *testing.T) {
	items := newFakeItemRepo(testItem("1.001", 5, 0))
	svc := ledger.NewService()

	updated, err := svc.Issue(items, &fakeMovementRepo{}, "1.001", "qc", 5, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated.Remaining, "emitir todo el remaining es válido")
}

// ──────────────────────────────────────────────────────────────────────────────
// SetOnHand
// ──────────────────────────────────────────────────────────────────────────────

func TestSetOnHand_RecalculaRemaining(t *testing.T) {
	items := newFakeItemRepo(testItem("1.001", 10, 4))
	svc := ledger.NewService()

	updated, err := svc.SetOnHand(items, "1.001", 20)
	require.NoError(t, err)
	assert.Equal(t, int64(20), updated.OnHand)
	assert.Equal(t, int64(4), updated.Issued, "issued no cambia")
	assert.Equal(t, int64(16), updated.Remaining)
}

func TestSetOnHand_PuedeDejarRemainingNegativo(t *testing.T) {
	items := newFakeItemRepo(testItem("1.001", 10, 8))
	svc := ledger.NewService()

	updated, err := svc.SetOnHand(items, "1.001", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(-3), updated.Remaining,
		"la corrección del admin no se recorta a cero")
}

func TestSetOnHand_NoDejaMovimiento(t *testing.T) {
	items := newFakeItemRepo(testItem("1.001", 10, 0))
	movements := &fakeMovementRepo{}
	svc := ledger.NewService()

	_, err := svc.SetOnHand(items, "1.001", 7)
	require.NoError(t, err)
	assert.Empty(t, movements.movements, "una corrección no es entrada ni salida")
}
