package submission

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Service promueve en bloque los borradores de un actor para un día a
// registros comprometidos con estado pending, y limpia los borradores, todo
// dentro de una sola transacción: un fallo a mitad no deja ni registros
// parciales ni borradores a medio limpiar.
type Service struct {
	tx TxRunner
}

// NewService construye el servicio de envío.
func NewService(tx TxRunner) *Service {
	return &Service{tx: tx}
}

// SubmitRequests promueve los borradores de solicitud del actor para el día.
// Los borradores se leen con bloqueo de fila: de dos envíos concurrentes del
// mismo actor y día, el segundo espera y encuentra el staging vacío
// (ErrNothingToSubmit) en lugar de promover las mismas líneas dos veces.
// Re-valida cada línea contra el Remaining actual (defensa contra staleness
// entre añadir y enviar); si alguna excede el stock, el envío completo falla
// con InsufficientStockError nombrando el artículo ofensor.
func (s *Service) SubmitRequests(ctx context.Context, actor domain.Actor, day time.Time) ([]*entity.StockRequest, error) {
	var created []*entity.StockRequest
	err := s.tx.RunSubmission(ctx, func(
		requestDrafts repository.RequestDraftRepository,
		_ repository.ProposalDraftRepository,
		requests repository.StockRequestRepository,
		_ repository.StockProposalRepository,
		items repository.StockItemRepository,
	) error {
		drafts, err := requestDrafts.ListByActorAndDateForUpdate(actor.ID, day)
		if err != nil {
			return err
		}
		if len(drafts) == 0 {
			return domain.ErrNothingToSubmit
		}
		// Re-validación de stock de todas las líneas antes de crear nada
		for _, d := range drafts {
			item, err := items.GetByCode(d.ItemCode)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNotFound
			}
			if item.Remaining < d.Quantity {
				return &domain.InsufficientStockError{
					ItemCode:  item.Code,
					ItemName:  item.Name,
					Available: item.Remaining,
					Requested: d.Quantity,
				}
			}
		}
		now := time.Now()
		for _, d := range drafts {
			req := &entity.StockRequest{
				ID:          uuid.New().String(),
				ActorID:     d.ActorID,
				ActorName:   d.ActorName,
				Department:  d.Department,
				ItemCode:    d.ItemCode,
				CategoryID:  d.CategoryID,
				Quantity:    d.Quantity,
				RequestDate: d.RequestDate,
				Status:      entity.StatusPending,
				CreatedAt:   now,
			}
			if err := requests.Create(req); err != nil {
				return err
			}
			created = append(created, req)
		}
		return requestDrafts.DeleteByActorAndDate(actor.ID, day)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// SubmitProposals promueve los borradores de propuesta del actor para el día.
// Sin chequeo de stock: las propuestas aumentan stock futuro.
func (s *Service) SubmitProposals(ctx context.Context, actor domain.Actor, day time.Time) ([]*entity.StockProposal, error) {
	var created []*entity.StockProposal
	err := s.tx.RunSubmission(ctx, func(
		_ repository.RequestDraftRepository,
		proposalDrafts repository.ProposalDraftRepository,
		_ repository.StockRequestRepository,
		proposals repository.StockProposalRepository,
		_ repository.StockItemRepository,
	) error {
		drafts, err := proposalDrafts.ListByActorAndDateForUpdate(actor.ID, day)
		if err != nil {
			return err
		}
		if len(drafts) == 0 {
			return domain.ErrNothingToSubmit
		}
		now := time.Now()
		for _, d := range drafts {
			prop := &entity.StockProposal{
				ID:           uuid.New().String(),
				ActorID:      d.ActorID,
				ActorName:    d.ActorName,
				ItemCode:     d.ItemCode,
				CategoryID:   d.CategoryID,
				Quantity:     d.Quantity,
				Unit:         d.Unit,
				UnitPrice:    d.UnitPrice,
				Total:        d.Total,
				ProposalDate: d.ProposalDate,
				Status:       entity.StatusPending,
				CreatedAt:    now,
			}
			if err := proposals.Create(prop); err != nil {
				return err
			}
			created = append(created, prop)
		}
		return proposalDrafts.DeleteByActorAndDate(actor.ID, day)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
