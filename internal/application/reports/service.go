package reports

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Umbral de "stock bajo" en el resumen del reporte de stock.
const lowStockThreshold = 10

// Service superficie de consulta de solo lectura sobre el maestro, el rastro
// de movimientos y los registros comprometidos. Sin lógica de negocio más
// allá de filtros y agregados; no muta nada.
type Service struct {
	items     repository.StockItemRepository
	movements repository.LedgerMovementRepository
	requests  repository.StockRequestRepository
	proposals repository.StockProposalRepository
	pdf       PDFGenerator
}

// NewService construye la superficie de reportes.
func NewService(
	items repository.StockItemRepository,
	movements repository.LedgerMovementRepository,
	requests repository.StockRequestRepository,
	proposals repository.StockProposalRepository,
	pdf PDFGenerator,
) *Service {
	return &Service{items: items, movements: movements, requests: requests, proposals: proposals, pdf: pdf}
}

// StockReport lista el maestro con contadores y totales. maxRemaining filtra
// artículos con Remaining <= valor (nil = sin filtro). Remaining negativo o
// cero cuenta como stock bajo.
func (s *Service) StockReport(categoryID string, maxRemaining *int64) (*dto.StockReportResponse, error) {
	list, err := s.items.List(categoryID)
	if err != nil {
		return nil, err
	}
	out := &dto.StockReportResponse{Data: make([]dto.ItemResponse, 0, len(list))}
	for _, it := range list {
		if maxRemaining != nil && it.Remaining > *maxRemaining {
			continue
		}
		out.Data = append(out.Data, dto.ItemResponse{
			ID:         it.ID,
			Code:       it.Code,
			CategoryID: it.CategoryID,
			Name:       it.Name,
			Price:      it.Price,
			Unit:       it.Unit,
			OnHand:     it.OnHand,
			Issued:     it.Issued,
			Remaining:  it.Remaining,
			Note:       it.Note,
			CreatedAt:  it.CreatedAt,
			UpdatedAt:  it.UpdatedAt,
		})
		out.Summary.TotalOnHand += it.OnHand
		out.Summary.TotalIssued += it.Issued
		out.Summary.TotalRemaining += it.Remaining
		if it.Remaining <= lowStockThreshold {
			out.Summary.LowStock++
		}
	}
	out.Summary.TotalItems = len(out.Data)
	return out, nil
}

// IssueReport lista las salidas del libro (aprobaciones de solicitudes) por
// rango de fechas y actor.
func (s *Service) IssueReport(filter repository.MovementFilter) (*dto.MovementReportResponse, error) {
	return s.movementReport(entity.MovementIssue, filter)
}

// ReceiptReport lista las entradas del libro (aprobaciones de propuestas).
func (s *Service) ReceiptReport(filter repository.MovementFilter) (*dto.MovementReportResponse, error) {
	return s.movementReport(entity.MovementReceipt, filter)
}

func (s *Service) movementReport(movementType string, filter repository.MovementFilter) (*dto.MovementReportResponse, error) {
	list, err := s.movements.ListByType(movementType, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.MovementReportResponse{Data: make([]dto.MovementResponse, 0, len(list))}
	for _, m := range list {
		out.Data = append(out.Data, dto.MovementResponse{
			ID:        m.ID,
			ItemCode:  m.ItemCode,
			ItemName:  m.ItemName,
			ActorName: m.ActorName,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Date:      m.Date,
		})
		out.Summary.TotalQuantity += m.Quantity
	}
	out.Summary.TotalItems = len(out.Data)
	return out, nil
}

// RequestReport lista solicitudes comprometidas con totales por estado.
func (s *Service) RequestReport(filter repository.RecordFilter) (*dto.RequestReportResponse, error) {
	list, err := s.requests.List(filter)
	if err != nil {
		return nil, err
	}
	out := &dto.RequestReportResponse{Data: make([]dto.RequestResponse, 0, len(list))}
	for _, r := range list {
		out.Data = append(out.Data, toRequestResponse(r))
		countStatus(&out.Summary, r.Status)
	}
	out.Summary.Total = len(out.Data)
	return out, nil
}

// ProposalReport lista propuestas comprometidas con totales por estado.
func (s *Service) ProposalReport(filter repository.RecordFilter) (*dto.ProposalReportResponse, error) {
	list, err := s.proposals.List(filter)
	if err != nil {
		return nil, err
	}
	out := &dto.ProposalReportResponse{Data: make([]dto.ProposalResponse, 0, len(list))}
	for _, p := range list {
		out.Data = append(out.Data, toProposalResponse(p))
		countStatus(&out.Summary, p.Status)
	}
	out.Summary.Total = len(out.Data)
	return out, nil
}

// RequestReportPDF genera el PDF de solicitudes aprobadas en el rango.
func (s *Service) RequestReportPDF(ctx context.Context, from, to time.Time) ([]byte, error) {
	status := entity.StatusApproved
	list, err := s.requests.List(repository.RecordFilter{Status: &status, From: &from, To: &to})
	if err != nil {
		return nil, err
	}
	rows := make([]dto.RequestResponse, 0, len(list))
	for _, r := range list {
		rows = append(rows, toRequestResponse(r))
	}
	return s.pdf.GenerateRequestReportPDF(ctx, rows, from, to)
}

// ProposalReportPDF genera el PDF de propuestas aprobadas en el rango.
func (s *Service) ProposalReportPDF(ctx context.Context, from, to time.Time) ([]byte, error) {
	status := entity.StatusApproved
	list, err := s.proposals.List(repository.RecordFilter{Status: &status, From: &from, To: &to})
	if err != nil {
		return nil, err
	}
	rows := make([]dto.ProposalResponse, 0, len(list))
	for _, p := range list {
		rows = append(rows, toProposalResponse(p))
	}
	return s.pdf.GenerateProposalReportPDF(ctx, rows, from, to)
}

func countStatus(sum *dto.RecordReportSummary, status string) {
	switch status {
	case entity.StatusPending:
		sum.Pending++
	case entity.StatusApproved:
		sum.Approved++
	case entity.StatusRejected:
		sum.Rejected++
	}
}

func toRequestResponse(r *entity.StockRequest) dto.RequestResponse {
	return dto.RequestResponse{
		ID:          r.ID,
		ActorName:   r.ActorName,
		Department:  r.Department,
		ItemCode:    r.ItemCode,
		ItemName:    r.ItemName,
		CategoryID:  r.CategoryID,
		Quantity:    r.Quantity,
		RequestDate: r.RequestDate,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
	}
}

func toProposalResponse(p *entity.StockProposal) dto.ProposalResponse {
	return dto.ProposalResponse{
		ID:           p.ID,
		ActorName:    p.ActorName,
		ItemCode:     p.ItemCode,
		ItemName:     p.ItemName,
		CategoryID:   p.CategoryID,
		Quantity:     p.Quantity,
		Unit:         p.Unit,
		UnitPrice:    p.UnitPrice,
		Total:        p.Total,
		ProposalDate: p.ProposalDate,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
	}
}
