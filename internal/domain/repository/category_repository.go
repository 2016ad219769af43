package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	List() ([]*entity.Category, error)
	// MaxNumber devuelve el mayor Number asignado (0 si no hay categorías).
	MaxNumber() (int, error)
	// CountItems cuenta los artículos que referencian la categoría; el borrado
	// se bloquea mientras sea > 0.
	CountItems(categoryID string) (int, error)
	Delete(id string) error
}
