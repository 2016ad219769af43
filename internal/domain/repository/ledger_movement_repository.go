package repository

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// MovementFilter filtra el rastro de auditoría por rango de fechas y actor.
type MovementFilter struct {
	ActorName string
	From      *time.Time
	To        *time.Time
}

// LedgerMovementRepository define el puerto del rastro de auditoría del libro
// de stock. Solo inserta y lista; los movimientos nunca se mutan ni se borran.
type LedgerMovementRepository interface {
	Create(movement *entity.LedgerMovement) error
	ListByType(movementType string, filter MovementFilter) ([]*entity.LedgerMovement, error)
}
