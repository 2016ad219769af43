package staging

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Service es el staging de borradores para los dos flujos (solicitudes y
// propuestas): una sola tubería con la regla de validación parametrizada por
// tipo. Las solicitudes validan contra el stock disponible al añadir; las
// propuestas solo exigen cantidad y precio positivos (compran stock futuro).
//
// Las líneas pertenecen en exclusiva al actor que las creó y están acotadas a
// un día calendario; el envío las promueve en bloque y las limpia.
type Service struct {
	items          repository.StockItemRepository
	requestDrafts  repository.RequestDraftRepository
	proposalDrafts repository.ProposalDraftRepository
}

// NewService construye el servicio de staging.
func NewService(
	items repository.StockItemRepository,
	requestDrafts repository.RequestDraftRepository,
	proposalDrafts repository.ProposalDraftRepository,
) *Service {
	return &Service{items: items, requestDrafts: requestDrafts, proposalDrafts: proposalDrafts}
}

// resolveItem valida que el artículo exista y lo devuelve.
func (s *Service) resolveItem(code string) (*entity.StockItem, error) {
	item, err := s.items.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// AddRequestLine añade una línea de borrador de solicitud. Rechaza con
// InsufficientStockError si la cantidad supera el Remaining actual del
// artículo (verificado al añadir; el envío re-valida contra staleness).
func (s *Service) AddRequestLine(actor domain.Actor, day time.Time, in dto.AddRequestDraftRequest) (*dto.RequestDraftResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	item, err := s.resolveItem(in.ItemCode)
	if err != nil {
		return nil, err
	}
	if item.Remaining < in.Quantity {
		return nil, &domain.InsufficientStockError{
			ItemCode:  item.Code,
			ItemName:  item.Name,
			Available: item.Remaining,
			Requested: in.Quantity,
		}
	}
	now := time.Now()
	draft := &entity.RequestDraft{
		ID:          uuid.New().String(),
		ActorID:     actor.ID,
		ActorName:   actor.Username,
		Department:  actor.Department,
		ItemCode:    item.Code,
		CategoryID:  item.CategoryID,
		Quantity:    in.Quantity,
		RequestDate: day,
		CreatedAt:   now,
	}
	if err := s.requestDrafts.Create(draft); err != nil {
		return nil, err
	}
	return toRequestDraftResponse(draft, item.Name), nil
}

// AddProposalLine añade una línea de borrador de propuesta. No hay chequeo de
// stock; cantidad y precio deben ser positivos y el total se guarda
// denormalizado como Quantity * UnitPrice.
func (s *Service) AddProposalLine(actor domain.Actor, day time.Time, in dto.AddProposalDraftRequest) (*dto.ProposalDraftResponse, error) {
	if in.Quantity <= 0 || !in.UnitPrice.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	item, err := s.resolveItem(in.ItemCode)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	draft := &entity.ProposalDraft{
		ID:           uuid.New().String(),
		ActorID:      actor.ID,
		ActorName:    actor.Username,
		ItemCode:     item.Code,
		CategoryID:   item.CategoryID,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		UnitPrice:    in.UnitPrice,
		Total:        in.UnitPrice.Mul(decimal.NewFromInt(in.Quantity)),
		ProposalDate: day,
		CreatedAt:    now,
	}
	if err := s.proposalDrafts.Create(draft); err != nil {
		return nil, err
	}
	return toProposalDraftResponse(draft, item.Name), nil
}

// RemoveRequestLine borra una línea de borrador de solicitud. Falla con
// ErrForbidden si la línea no pertenece al actor y con ErrNotFound si no existe.
func (s *Service) RemoveRequestLine(actor domain.Actor, draftID string) error {
	draft, err := s.requestDrafts.GetByID(draftID)
	if err != nil {
		return err
	}
	if draft == nil {
		return domain.ErrNotFound
	}
	if draft.ActorID != actor.ID {
		return domain.ErrForbidden
	}
	return s.requestDrafts.Delete(draftID)
}

// RemoveProposalLine borra una línea de borrador de propuesta; mismas reglas
// de propiedad que RemoveRequestLine.
func (s *Service) RemoveProposalLine(actor domain.Actor, draftID string) error {
	draft, err := s.proposalDrafts.GetByID(draftID)
	if err != nil {
		return err
	}
	if draft == nil {
		return domain.ErrNotFound
	}
	if draft.ActorID != actor.ID {
		return domain.ErrForbidden
	}
	return s.proposalDrafts.Delete(draftID)
}

// ListRequestLines devuelve las líneas del actor para el día, en orden de
// inserción; slice vacío si no hay ninguna.
func (s *Service) ListRequestLines(actor domain.Actor, day time.Time) ([]dto.RequestDraftResponse, error) {
	drafts, err := s.requestDrafts.ListByActorAndDate(actor.ID, day)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RequestDraftResponse, 0, len(drafts))
	for _, d := range drafts {
		item, err := s.items.GetByCode(d.ItemCode)
		if err != nil {
			return nil, err
		}
		name := ""
		if item != nil {
			name = item.Name
		}
		out = append(out, *toRequestDraftResponse(d, name))
	}
	return out, nil
}

// ListProposalLines devuelve las líneas de propuesta del actor para el día.
func (s *Service) ListProposalLines(actor domain.Actor, day time.Time) ([]dto.ProposalDraftResponse, error) {
	drafts, err := s.proposalDrafts.ListByActorAndDate(actor.ID, day)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProposalDraftResponse, 0, len(drafts))
	for _, d := range drafts {
		item, err := s.items.GetByCode(d.ItemCode)
		if err != nil {
			return nil, err
		}
		name := ""
		if item != nil {
			name = item.Name
		}
		out = append(out, *toProposalDraftResponse(d, name))
	}
	return out, nil
}

func toRequestDraftResponse(d *entity.RequestDraft, itemName string) *dto.RequestDraftResponse {
	return &dto.RequestDraftResponse{
		ID:          d.ID,
		ActorName:   d.ActorName,
		Department:  d.Department,
		ItemCode:    d.ItemCode,
		ItemName:    itemName,
		CategoryID:  d.CategoryID,
		Quantity:    d.Quantity,
		RequestDate: d.RequestDate,
		CreatedAt:   d.CreatedAt,
	}
}

func toProposalDraftResponse(d *entity.ProposalDraft, itemName string) *dto.ProposalDraftResponse {
	return &dto.ProposalDraftResponse{
		ID:           d.ID,
		ActorName:    d.ActorName,
		ItemCode:     d.ItemCode,
		ItemName:     itemName,
		CategoryID:   d.CategoryID,
		Quantity:     d.Quantity,
		Unit:         d.Unit,
		UnitPrice:    d.UnitPrice,
		Total:        d.Total,
		ProposalDate: d.ProposalDate,
		CreatedAt:    d.CreatedAt,
	}
}
