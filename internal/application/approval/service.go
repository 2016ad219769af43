package approval

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Service es la máquina de estados de solicitudes y propuestas:
// pending -> approved | rejected, ambos terminales. Aprobar una solicitud
// emite stock (Issue); aprobar una propuesta lo recibe (Receive); rechazar no
// toca el libro. Reintentar sobre un registro ya procesado es un error duro
// (ErrAlreadyProcessed), nunca un no-op.
type Service struct {
	tx     TxRunner
	ledger *ledger.Service
}

// NewService construye el motor de aprobación.
func NewService(tx TxRunner, ledger *ledger.Service) *Service {
	return &Service{tx: tx, ledger: ledger}
}

// BatchOutcome es el resultado por registro de un ApproveAll*.
type BatchOutcome struct {
	ID  string
	Err error // nil = aprobado; domain.ErrConflict y compañía en fallo
}

// ApproveRequest aprueba una solicitud pendiente. La fila del registro se
// bloquea antes de verificar el estado, de modo que de dos aprobaciones
// concurrentes exactamente una gana y la otra observa ErrAlreadyProcessed.
// Si el Issue falla por stock insuficiente la transacción entera se revierte
// y el registro sigue pendiente.
func (s *Service) ApproveRequest(ctx context.Context, recordID string) error {
	return s.tx.RunApproval(ctx, func(
		items repository.StockItemRepository,
		movements repository.LedgerMovementRepository,
		requests repository.StockRequestRepository,
		_ repository.StockProposalRepository,
	) error {
		req, err := requests.GetByIDForUpdate(recordID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.Status != entity.StatusPending {
			return domain.ErrAlreadyProcessed
		}
		if _, err := s.ledger.Issue(items, movements, req.ItemCode, req.ActorName, req.Quantity, time.Now()); err != nil {
			return err
		}
		return requests.UpdateStatus(recordID, entity.StatusApproved)
	})
}

// RejectRequest rechaza una solicitud pendiente; sin efecto en el libro.
func (s *Service) RejectRequest(ctx context.Context, recordID string) error {
	return s.tx.RunApproval(ctx, func(
		_ repository.StockItemRepository,
		_ repository.LedgerMovementRepository,
		requests repository.StockRequestRepository,
		_ repository.StockProposalRepository,
	) error {
		req, err := requests.GetByIDForUpdate(recordID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.Status != entity.StatusPending {
			return domain.ErrAlreadyProcessed
		}
		return requests.UpdateStatus(recordID, entity.StatusRejected)
	})
}

// ApproveProposal aprueba una propuesta pendiente: Receive en el libro
// (OnHand y Remaining suben) y estado approved, en una sola transacción.
func (s *Service) ApproveProposal(ctx context.Context, recordID string) error {
	return s.tx.RunApproval(ctx, func(
		items repository.StockItemRepository,
		movements repository.LedgerMovementRepository,
		_ repository.StockRequestRepository,
		proposals repository.StockProposalRepository,
	) error {
		prop, err := proposals.GetByIDForUpdate(recordID)
		if err != nil {
			return err
		}
		if prop == nil {
			return domain.ErrNotFound
		}
		if prop.Status != entity.StatusPending {
			return domain.ErrAlreadyProcessed
		}
		if _, err := s.ledger.Receive(items, movements, prop.ItemCode, prop.ActorName, prop.Quantity, time.Now()); err != nil {
			return err
		}
		return proposals.UpdateStatus(recordID, entity.StatusApproved)
	})
}

// RejectProposal rechaza una propuesta pendiente; sin efecto en el libro.
func (s *Service) RejectProposal(ctx context.Context, recordID string) error {
	return s.tx.RunApproval(ctx, func(
		_ repository.StockItemRepository,
		_ repository.LedgerMovementRepository,
		_ repository.StockRequestRepository,
		proposals repository.StockProposalRepository,
	) error {
		prop, err := proposals.GetByIDForUpdate(recordID)
		if err != nil {
			return err
		}
		if prop == nil {
			return domain.ErrNotFound
		}
		if prop.Status != entity.StatusPending {
			return domain.ErrAlreadyProcessed
		}
		return proposals.UpdateStatus(recordID, entity.StatusRejected)
	})
}

// ApproveAllRequests aprueba secuencialmente cada id en el orden dado y se
// detiene en el primer fallo. Las aprobaciones ya hechas quedan en pie: cada
// aprobación es una decisión de negocio independiente, no un lote atómico.
// Devuelve el resultado por registro; los ids posteriores al fallo no llevan
// entrada (no fueron procesados).
func (s *Service) ApproveAllRequests(ctx context.Context, recordIDs []string) []BatchOutcome {
	return s.approveAll(ctx, recordIDs, s.ApproveRequest)
}

// ApproveAllProposals hace lo mismo sobre propuestas.
func (s *Service) ApproveAllProposals(ctx context.Context, recordIDs []string) []BatchOutcome {
	return s.approveAll(ctx, recordIDs, s.ApproveProposal)
}

func (s *Service) approveAll(ctx context.Context, recordIDs []string, approve func(context.Context, string) error) []BatchOutcome {
	outcomes := make([]BatchOutcome, 0, len(recordIDs))
	for _, id := range recordIDs {
		err := approve(ctx, id)
		outcomes = append(outcomes, BatchOutcome{ID: id, Err: err})
		if err != nil {
			break
		}
	}
	return outcomes
}
