package repository

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// RequestDraftRepository define el puerto de staging de solicitudes.
// Las líneas se listan en orden de inserción (created_at, id).
type RequestDraftRepository interface {
	Create(draft *entity.RequestDraft) error
	GetByID(id string) (*entity.RequestDraft, error)
	ListByActorAndDate(actorID string, day time.Time) ([]*entity.RequestDraft, error)
	// ListByActorAndDateForUpdate bloquea las filas listadas (SELECT FOR
	// UPDATE) para que dos envíos concurrentes del mismo actor y día se
	// serialicen: el segundo ve el staging ya vacío.
	ListByActorAndDateForUpdate(actorID string, day time.Time) ([]*entity.RequestDraft, error)
	Delete(id string) error
	// DeleteByActorAndDate limpia todas las líneas del actor para el día
	// (paso final del envío, misma transacción que la promoción).
	DeleteByActorAndDate(actorID string, day time.Time) error
}

// ProposalDraftRepository define el puerto de staging de propuestas.
type ProposalDraftRepository interface {
	Create(draft *entity.ProposalDraft) error
	GetByID(id string) (*entity.ProposalDraft, error)
	ListByActorAndDate(actorID string, day time.Time) ([]*entity.ProposalDraft, error)
	ListByActorAndDateForUpdate(actorID string, day time.Time) ([]*entity.ProposalDraft, error)
	Delete(id string) error
	DeleteByActorAndDate(actorID string, day time.Time) error
}
