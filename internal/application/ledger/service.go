package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Service aplica las mutaciones del libro de stock sobre los contadores de un
// StockItem, manteniendo el invariante Remaining == OnHand - Issued, y deja un
// LedgerMovement por cada entrada o salida.
//
// Cada método opera sobre repositorios ya atados a la transacción del caller
// (motor de aprobación o edición directa del admin); el servicio en sí no
// abre transacciones.
type Service struct{}

// NewService construye el servicio del libro de stock.
func NewService() *Service { return &Service{} }

// Receive suma quantity a OnHand y Remaining y registra un movimiento de
// entrada. Requiere quantity > 0; falla con ErrNotFound si el artículo no existe.
func (s *Service) Receive(
	items repository.StockItemRepository,
	movements repository.LedgerMovementRepository,
	itemCode, actorName string,
	quantity int64,
	now time.Time,
) (*entity.StockItem, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	// Bloquea la fila del artículo (SELECT FOR UPDATE) dentro de la tx del caller
	item, err := items.GetByCodeForUpdate(itemCode)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	item.OnHand += quantity
	item.Remaining += quantity
	if err := items.UpdateCounters(item.Code, item.OnHand, item.Issued, item.Remaining); err != nil {
		return nil, err
	}
	mov := &entity.LedgerMovement{
		ID:        uuid.New().String(),
		ItemCode:  item.Code,
		ActorName: actorName,
		Type:      entity.MovementReceipt,
		Quantity:  quantity,
		Date:      now,
		CreatedAt: now,
	}
	if err := movements.Create(mov); err != nil {
		return nil, err
	}
	return item, nil
}

// Issue resta quantity de Remaining y la suma a Issued, registrando un
// movimiento de salida. La verificación Remaining >= quantity ocurre con la
// fila bloqueada, en la misma transacción que el cambio de estado que la
// dispara; Remaining nunca queda negativo por esta vía.
func (s *Service) Issue(
	items repository.StockItemRepository,
	movements repository.LedgerMovementRepository,
	itemCode, actorName string,
	quantity int64,
	now time.Time,
) (*entity.StockItem, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	item, err := items.GetByCodeForUpdate(itemCode)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.Remaining < quantity {
		return nil, &domain.InsufficientStockError{
			ItemCode:  item.Code,
			ItemName:  item.Name,
			Available: item.Remaining,
			Requested: quantity,
		}
	}
	item.Issued += quantity
	item.Remaining -= quantity
	if err := items.UpdateCounters(item.Code, item.OnHand, item.Issued, item.Remaining); err != nil {
		return nil, err
	}
	mov := &entity.LedgerMovement{
		ID:        uuid.New().String(),
		ItemCode:  item.Code,
		ActorName: actorName,
		Type:      entity.MovementIssue,
		Quantity:  quantity,
		Date:      now,
		CreatedAt: now,
	}
	if err := movements.Create(mov); err != nil {
		return nil, err
	}
	return item, nil
}

// SetOnHand es la vía de edición directa del admin: fija OnHand y recalcula
// Remaining = OnHand - Issued. Puede dejar Remaining negativo si el admin
// fuerza un OnHand menor que lo ya entregado; no se recorta ni se rechaza.
// No deja movimiento en el rastro: es una corrección, no una entrada.
func (s *Service) SetOnHand(
	items repository.StockItemRepository,
	itemCode string,
	newOnHand int64,
) (*entity.StockItem, error) {
	if newOnHand < 0 {
		return nil, domain.ErrInvalidInput
	}
	item, err := items.GetByCodeForUpdate(itemCode)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	item.OnHand = newOnHand
	item.Remaining = newOnHand - item.Issued
	if err := items.UpdateCounters(item.Code, item.OnHand, item.Issued, item.Remaining); err != nil {
		return nil, err
	}
	return item, nil
}
