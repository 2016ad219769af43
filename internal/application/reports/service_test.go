package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	items []*entity.StockItem
}

var _ repository.StockItemRepository = (*fakeItemRepo)(nil)

func (r *fakeItemRepo) Create(*entity.StockItem) error                     { return nil }
func (r *fakeItemRepo) GetByID(string) (*entity.StockItem, error)          { return nil, nil }
func (r *fakeItemRepo) GetByCode(string) (*entity.StockItem, error)        { return nil, nil }
func (r *fakeItemRepo) GetByCodeForUpdate(string) (*entity.StockItem, error) {
	return nil, nil
}
func (r *fakeItemRepo) Update(*entity.StockItem) error                  { return nil }
func (r *fakeItemRepo) UpdateCounters(string, int64, int64, int64) error { return nil }
func (r *fakeItemRepo) ListCodesByPrefix(string) ([]string, error)      { return nil, nil }
func (r *fakeItemRepo) Delete(string) error                             { return nil }
func (r *fakeItemRepo) List(categoryID string) ([]*entity.StockItem, error) {
	if categoryID == "" {
		return r.items, nil
	}
	var out []*entity.StockItem
	for _, it := range r.items {
		if it.CategoryID == categoryID {
			out = append(out, it)
		}
	}
	return out, nil
}

type fakeMovementRepo struct {
	movements []*entity.LedgerMovement
}

var _ repository.LedgerMovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(*entity.LedgerMovement) error { return nil }
func (r *fakeMovementRepo) ListByType(movementType string, _ repository.MovementFilter) ([]*entity.LedgerMovement, error) {
	var out []*entity.LedgerMovement
	for _, m := range r.movements {
		if m.Type == movementType {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeRequestRepo struct {
	requests []*entity.StockRequest
	lastFilter repository.RecordFilter
}

var _ repository.StockRequestRepository = (*fakeRequestRepo)(nil)

func (r *fakeRequestRepo) Create(*entity.StockRequest) error                  { return nil }
func (r *fakeRequestRepo) GetByID(string) (*entity.StockRequest, error)       { return nil, nil }
func (r *fakeRequestRepo) GetByIDForUpdate(string) (*entity.StockRequest, error) {
	return nil, nil
}
func (r *fakeRequestRepo) UpdateStatus(string, string) error { return nil }
func (r *fakeRequestRepo) List(filter repository.RecordFilter) ([]*entity.StockRequest, error) {
	r.lastFilter = filter
	if filter.Status == nil {
		return r.requests, nil
	}
	var out []*entity.StockRequest
	for _, req := range r.requests {
		if req.Status == *filter.Status {
			out = append(out, req)
		}
	}
	return out, nil
}

type fakeProposalRepo struct {
	proposals []*entity.StockProposal
}

var _ repository.StockProposalRepository = (*fakeProposalRepo)(nil)

func (r *fakeProposalRepo) Create(*entity.StockProposal) error             { return nil }
func (r *fakeProposalRepo) GetByID(string) (*entity.StockProposal, error)  { return nil, nil }
func (r *fakeProposalRepo) GetByIDForUpdate(string) (*entity.StockProposal, error) {
	return nil, nil
}
func (r *fakeProposalRepo) UpdateStatus(string, string) error { return nil }
func (r *fakeProposalRepo) List(repository.RecordFilter) ([]*entity.StockProposal, error) {
	return r.proposals, nil
}

type fakePDF struct {
	requestRows  []dto.RequestResponse
	proposalRows []dto.ProposalResponse
}

var _ reports.PDFGenerator = (*fakePDF)(nil)

func (g *fakePDF) GenerateRequestReportPDF(_ context.Context, rows []dto.RequestResponse, _, _ time.Time) ([]byte, error) {
	g.requestRows = rows
	return []byte("%PDF-fake"), nil
}

func (g *fakePDF) GenerateProposalReportPDF(_ context.Context, rows []dto.ProposalResponse, _, _ time.Time) ([]byte, error) {
	g.proposalRows = rows
	return []byte("%PDF-fake"), nil
}

func item(code, categoryID string, onHand, issued int64) *entity.StockItem {
	return &entity.StockItem{
		Code:       code,
		CategoryID: categoryID,
		Name:       "art " + code,
		OnHand:     onHand,
		Issued:     issued,
		Remaining:  onHand - issued,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// StockReport
// ──────────────────────────────────────────────────────────────────────────────

func TestStockReport_Totales(t *testing.T) {
	items := &fakeItemRepo{items: []*entity.StockItem{
		item("1.001", "cat-1", 40, 15), // remaining 25
		item("1.002", "cat-1", 20, 12), // remaining 8 -> stock bajo
		item("2.001", "cat-2", 5, 5),   // remaining 0 -> stock bajo
	}}
	svc := reports.NewService(items, &fakeMovementRepo{}, &fakeRequestRepo{}, &fakeProposalRepo{}, &fakePDF{})

	out, err := svc.StockReport("", nil)
	require.NoError(t, err)

	assert.Equal(t, 3, out.Summary.TotalItems)
	assert.Equal(t, int64(65), out.Summary.TotalOnHand)
	assert.Equal(t, int64(32), out.Summary.TotalIssued)
	assert.Equal(t, int64(33), out.Summary.TotalRemaining)
	assert.Equal(t, 2, out.Summary.LowStock, "remaining <= 10 cuenta como stock bajo")
}

func TestStockReport_FiltroMaxRemaining(t *testing.T) {
	items := &fakeItemRepo{items: []*entity.StockItem{
		item("1.001", "cat-1", 40, 15),
		item("1.002", "cat-1", 20, 12),
	}}
	svc := reports.NewService(items, &fakeMovementRepo{}, &fakeRequestRepo{}, &fakeProposalRepo{}, &fakePDF{})

	max := int64(10)
	out, err := svc.StockReport("", &max)
	require.NoError(t, err)

	require.Len(t, out.Data, 1)
	assert.Equal(t, "1.002", out.Data[0].Code)
	assert.Equal(t, int64(20), out.Summary.TotalOnHand, "los totales solo suman lo filtrado")
}

func TestStockReport_FiltroCategoria(t *testing.T) {
	items := &fakeItemRepo{items: []*entity.StockItem{
		item("1.001", "cat-1", 40, 0),
		item("2.001", "cat-2", 10, 0),
	}}
	svc := reports.NewService(items, &fakeMovementRepo{}, &fakeRequestRepo{}, &fakeProposalRepo{}, &fakePDF{})

	out, err := svc.StockReport("cat-2", nil)
	require.NoError(t, err)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "2.001", out.Data[0].Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestIssueReport_SoloSalidas(t *testing.T) {
	movs := &fakeMovementRepo{movements: []*entity.LedgerMovement{
		{ID: "m1", Type: entity.MovementIssue, Quantity: 4},
		{ID: "m2", Type: entity.MovementReceipt, Quantity: 25},
		{ID: "m3", Type: entity.MovementIssue, Quantity: 6},
	}}
	svc := reports.NewService(&fakeItemRepo{}, movs, &fakeRequestRepo{}, &fakeProposalRepo{}, &fakePDF{})

	out, err := svc.IssueReport(repository.MovementFilter{})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Summary.TotalItems)
	assert.Equal(t, int64(10), out.Summary.TotalQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registros
// ──────────────────────────────────────────────────────────────────────────────

func TestRequestReport_ResumenPorEstado(t *testing.T) {
	reqs := &fakeRequestRepo{requests: []*entity.StockRequest{
		{ID: "r1", Status: entity.StatusPending},
		{ID: "r2", Status: entity.StatusApproved},
		{ID: "r3", Status: entity.StatusApproved},
		{ID: "r4", Status: entity.StatusRejected},
	}}
	svc := reports.NewService(&fakeItemRepo{}, &fakeMovementRepo{}, reqs, &fakeProposalRepo{}, &fakePDF{})

	out, err := svc.RequestReport(repository.RecordFilter{})
	require.NoError(t, err)

	assert.Equal(t, 4, out.Summary.Total)
	assert.Equal(t, 1, out.Summary.Pending)
	assert.Equal(t, 2, out.Summary.Approved)
	assert.Equal(t, 1, out.Summary.Rejected)
}

func TestRequestReportPDF_SoloAprobadas(t *testing.T) {
	reqs := &fakeRequestRepo{requests: []*entity.StockRequest{
		{ID: "r1", Status: entity.StatusPending},
		{ID: "r2", Status: entity.StatusApproved},
	}}
	pdf := &fakePDF{}
	svc := reports.NewService(&fakeItemRepo{}, &fakeMovementRepo{}, reqs, &fakeProposalRepo{}, pdf)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	raw, err := svc.RequestReportPDF(context.Background(), from, to)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)

	require.NotNil(t, reqs.lastFilter.Status)
	assert.Equal(t, entity.StatusApproved, *reqs.lastFilter.Status)
	require.Len(t, pdf.requestRows, 1)
	assert.Equal(t, "r2", pdf.requestRows[0].ID)
}
