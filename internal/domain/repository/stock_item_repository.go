package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// StockItemRepository define el puerto de persistencia para StockItem.
// Los contadores OnHand/Issued/Remaining solo se escriben vía UpdateCounters,
// dentro de la misma transacción que tomó el bloqueo con GetByCodeForUpdate.
type StockItemRepository interface {
	Create(item *entity.StockItem) error
	GetByID(id string) (*entity.StockItem, error)
	GetByCode(code string) (*entity.StockItem, error)
	// GetByCodeForUpdate bloquea la fila (SELECT FOR UPDATE) para que dos
	// emisiones concurrentes sobre el mismo artículo se serialicen.
	GetByCodeForUpdate(code string) (*entity.StockItem, error)
	Update(item *entity.StockItem) error
	UpdateCounters(code string, onHand, issued, remaining int64) error
	List(categoryID string) ([]*entity.StockItem, error)
	// ListCodesByPrefix devuelve los códigos que empiezan por prefix, para la
	// generación del siguiente código de una categoría.
	ListCodesByPrefix(prefix string) ([]string, error)
	Delete(id string) error
}
