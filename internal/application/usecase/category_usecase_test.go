package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

func TestCategoryCreate_NumeroIncremental(t *testing.T) {
	repo := newFakeCategoryRepo()
	uc := usecase.NewCategoryUseCase(repo)

	primera, err := uc.Create(dto.CreateCategoryRequest{Name: "Oficina"})
	require.NoError(t, err)
	assert.Equal(t, 1, primera.Number)

	segunda, err := uc.Create(dto.CreateCategoryRequest{Name: "Limpieza"})
	require.NoError(t, err)
	assert.Equal(t, 2, segunda.Number, "number = max actual + 1")
}

func TestCategoryCreate_NombreDuplicado(t *testing.T) {
	repo := newFakeCategoryRepo()
	uc := usecase.NewCategoryUseCase(repo)

	_, err := uc.Create(dto.CreateCategoryRequest{Name: "Oficina"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateCategoryRequest{Name: "Oficina"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCategoryDelete_BloqueadaConArticulos(t *testing.T) {
	repo := newFakeCategoryRepo()
	repo.byID["cat-1"] = &entity.Category{ID: "cat-1", Number: 1, Name: "Oficina"}
	repo.itemCount["cat-1"] = 3
	uc := usecase.NewCategoryUseCase(repo)

	err := uc.Delete("cat-1")
	assert.ErrorIs(t, err, domain.ErrCategoryInUse)
	_, ok := repo.byID["cat-1"]
	assert.True(t, ok, "la categoría no se borra")
}

func TestCategoryDelete_SinArticulos(t *testing.T) {
	repo := newFakeCategoryRepo()
	repo.byID["cat-1"] = &entity.Category{ID: "cat-1", Number: 1, Name: "Oficina"}
	uc := usecase.NewCategoryUseCase(repo)

	require.NoError(t, uc.Delete("cat-1"))
	_, ok := repo.byID["cat-1"]
	assert.False(t, ok)
}

func TestCategoryDelete_Inexistente(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newFakeCategoryRepo())
	assert.ErrorIs(t, uc.Delete("no-existe"), domain.ErrNotFound)
}
