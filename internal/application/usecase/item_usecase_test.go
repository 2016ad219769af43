package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	byID map[string]*entity.StockItem
}

var _ repository.StockItemRepository = (*fakeItemRepo)(nil)

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{byID: map[string]*entity.StockItem{}}
}

func (r *fakeItemRepo) Create(item *entity.StockItem) error {
	copia := *item
	r.byID[item.ID] = &copia
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.StockItem, error) {
	it, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	copia := *it
	return &copia, nil
}

func (r *fakeItemRepo) GetByCode(code string) (*entity.StockItem, error) {
	for _, it := range r.byID {
		if it.Code == code {
			copia := *it
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) GetByCodeForUpdate(code string) (*entity.StockItem, error) {
	return r.GetByCode(code)
}

func (r *fakeItemRepo) Update(item *entity.StockItem) error {
	copia := *item
	r.byID[item.ID] = &copia
	return nil
}

func (r *fakeItemRepo) UpdateCounters(code string, onHand, issued, remaining int64) error {
	for _, it := range r.byID {
		if it.Code == code {
			it.OnHand = onHand
			it.Issued = issued
			it.Remaining = remaining
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeItemRepo) List(categoryID string) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	for _, it := range r.byID {
		if categoryID == "" || it.CategoryID == categoryID {
			copia := *it
			out = append(out, &copia)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) ListCodesByPrefix(prefix string) ([]string, error) {
	var out []string
	for _, it := range r.byID {
		if len(it.Code) >= len(prefix) && it.Code[:len(prefix)] == prefix {
			out = append(out, it.Code)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

type fakeCategoryRepo struct {
	byID      map[string]*entity.Category
	itemCount map[string]int
}

var _ repository.CategoryRepository = (*fakeCategoryRepo)(nil)

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{byID: map[string]*entity.Category{}, itemCount: map[string]int{}}
}

func (r *fakeCategoryRepo) Create(cat *entity.Category) error {
	copia := *cat
	r.byID[cat.ID] = &copia
	return nil
}

func (r *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	copia := *c
	return &copia, nil
}

func (r *fakeCategoryRepo) GetByName(name string) (*entity.Category, error) {
	for _, c := range r.byID {
		if c.Name == name {
			copia := *c
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) List() ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.byID {
		copia := *c
		out = append(out, &copia)
	}
	return out, nil
}

func (r *fakeCategoryRepo) MaxNumber() (int, error) {
	max := 0
	for _, c := range r.byID {
		if c.Number > max {
			max = c.Number
		}
	}
	return max, nil
}

func (r *fakeCategoryRepo) CountItems(categoryID string) (int, error) {
	return r.itemCount[categoryID], nil
}

func (r *fakeCategoryRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

type fakeMovementRepo struct {
	movements []*entity.LedgerMovement
}

var _ repository.LedgerMovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(m *entity.LedgerMovement) error {
	copia := *m
	r.movements = append(r.movements, &copia)
	return nil
}

func (r *fakeMovementRepo) ListByType(string, repository.MovementFilter) ([]*entity.LedgerMovement, error) {
	return r.movements, nil
}

// fakeLedgerRunner pasa los mismos repos en memoria sin transacción real.
type fakeLedgerRunner struct {
	items     *fakeItemRepo
	movements *fakeMovementRepo
}

var _ ledger.TxRunner = (*fakeLedgerRunner)(nil)

func (r *fakeLedgerRunner) RunLedger(_ context.Context, fn func(
	items repository.StockItemRepository,
	movements repository.LedgerMovementRepository,
) error) error {
	return fn(r.items, r.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const catOficina = "6a3c6ae1-0000-4000-8000-000000000001"

func buildItemUC(t *testing.T) (*usecase.ItemUseCase, *fakeItemRepo, *fakeCategoryRepo) {
	t.Helper()
	items := newFakeItemRepo()
	cats := newFakeCategoryRepo()
	cats.byID[catOficina] = &entity.Category{ID: catOficina, Number: 1, Name: "Oficina"}
	runner := &fakeLedgerRunner{items: items, movements: &fakeMovementRepo{}}
	return usecase.NewItemUseCase(items, cats, runner, ledger.NewService()), items, cats
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestItemCreate_StockInicialComoOnHand(t *testing.T) {
	uc, _, _ := buildItemUC(t)

	out, err := uc.Create(dto.CreateItemRequest{
		Code:       "1.001",
		CategoryID: catOficina,
		Name:       "Papel A4",
		Price:      decimal.NewFromFloat(3.50),
		Unit:       "resma",
		OnHand:     40,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(40), out.OnHand)
	assert.Equal(t, int64(0), out.Issued)
	assert.Equal(t, int64(40), out.Remaining, "remaining arranca igual a on_hand")
	assert.NotEmpty(t, out.ID)
}

func TestItemCreate_CodigoDuplicado(t *testing.T) {
	uc, _, _ := buildItemUC(t)

	_, err := uc.Create(dto.CreateItemRequest{Code: "1.001", CategoryID: catOficina, Name: "Papel", Unit: "resma"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateItemRequest{Code: "1.001", CategoryID: catOficina, Name: "Otro", Unit: "caja"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestItemCreate_CategoriaInexistente(t *testing.T) {
	uc, _, _ := buildItemUC(t)

	_, err := uc.Create(dto.CreateItemRequest{
		Code:       "9.001",
		CategoryID: "6a3c6ae1-0000-4000-8000-00000000dead",
		Name:       "Papel",
		Unit:       "resma",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemCreate_OnHandNegativo(t *testing.T) {
	uc, _, _ := buildItemUC(t)

	_, err := uc.Create(dto.CreateItemRequest{Code: "1.001", CategoryID: catOficina, Name: "Papel", Unit: "resma", OnHand: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestItemUpdate_OnHandPasaPorElLibro(t *testing.T) {
	uc, items, _ := buildItemUC(t)

	created, err := uc.Create(dto.CreateItemRequest{Code: "1.001", CategoryID: catOficina, Name: "Papel", Unit: "resma", OnHand: 40})
	require.NoError(t, err)
	require.NoError(t, items.UpdateCounters("1.001", 40, 15, 25))

	nuevo := int64(50)
	out, err := uc.Update(context.Background(), created.ID, dto.UpdateItemRequest{OnHand: &nuevo})
	require.NoError(t, err)

	assert.Equal(t, int64(50), out.OnHand)
	assert.Equal(t, int64(15), out.Issued, "issued no se toca")
	assert.Equal(t, int64(35), out.Remaining, "remaining recalculado = on_hand - issued")
}

func TestItemUpdate_SoloDatosMaestros(t *testing.T) {
	uc, items, _ := buildItemUC(t)

	created, err := uc.Create(dto.CreateItemRequest{Code: "1.001", CategoryID: catOficina, Name: "Papel", Unit: "resma", OnHand: 40})
	require.NoError(t, err)
	require.NoError(t, items.UpdateCounters("1.001", 40, 15, 25))

	nombre := "Papel A4 blanco"
	out, err := uc.Update(context.Background(), created.ID, dto.UpdateItemRequest{Name: &nombre})
	require.NoError(t, err)

	assert.Equal(t, "Papel A4 blanco", out.Name)
	assert.Equal(t, int64(25), out.Remaining, "los contadores no cambian")
}

func TestItemUpdate_LibroRechaza_NoPersisteMaestros(t *testing.T) {
	uc, items, _ := buildItemUC(t)

	created, err := uc.Create(dto.CreateItemRequest{Code: "1.001", CategoryID: catOficina, Name: "Papel", Unit: "resma", OnHand: 40})
	require.NoError(t, err)

	// OnHand negativo: el Ledger lo rechaza y la edición entera falla,
	// incluidos los campos maestros del mismo update.
	nombre := "Papel A4 premium"
	negativo := int64(-1)
	_, err = uc.Update(context.Background(), created.ID, dto.UpdateItemRequest{Name: &nombre, OnHand: &negativo})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	stored, err := items.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Papel", stored.Name, "el nombre no cambia en el fallo")
	assert.Equal(t, int64(40), stored.OnHand)
}

func TestItemUpdate_Inexistente(t *testing.T) {
	uc, _, _ := buildItemUC(t)

	out, err := uc.Update(context.Background(), "no-existe", dto.UpdateItemRequest{})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestItemUpdate_CodigoTomado(t *testing.T) {
	uc, _, _ := buildItemUC(t)

	_, err := uc.Create(dto.CreateItemRequest{Code: "1.001", CategoryID: catOficina, Name: "Papel", Unit: "resma"})
	require.NoError(t, err)
	otro, err := uc.Create(dto.CreateItemRequest{Code: "1.002", CategoryID: catOficina, Name: "Tinta", Unit: "caja"})
	require.NoError(t, err)

	codigo := "1.001"
	_, err = uc.Update(context.Background(), otro.ID, dto.UpdateItemRequest{Code: &codigo})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ──────────────────────────────────────────────────────────────────────────────
// NextCode
// ──────────────────────────────────────────────────────────────────────────────

func TestNextCode_PrimeraDeLaCategoria(t *testing.T) {
	uc, _, _ := buildItemUC(t)

	out, err := uc.NextCode(catOficina)
	require.NoError(t, err)
	assert.Equal(t, "1.001", out.NextCode)
}

func TestNextCode_SigueAlMayor(t *testing.T) {
	uc, _, _ := buildItemUC(t)

	for _, code := range []string{"1.001", "1.002", "1.007"} {
		_, err := uc.Create(dto.CreateItemRequest{Code: code, CategoryID: catOficina, Name: "x " + code, Unit: "u"})
		require.NoError(t, err)
	}

	out, err := uc.NextCode(catOficina)
	require.NoError(t, err)
	assert.Equal(t, "1.008", out.NextCode, "sigue al mayor, no rellena huecos")
}

func TestNextCode_CategoriaInexistente(t *testing.T) {
	uc, _, _ := buildItemUC(t)

	_, err := uc.NextCode("6a3c6ae1-0000-4000-8000-00000000dead")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
