package submission_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/submission"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria + runner transaccional con rollback por copia
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	items          map[string]*entity.StockItem
	requestDrafts  []*entity.RequestDraft
	proposalDrafts []*entity.ProposalDraft
	requests       []*entity.StockRequest
	proposals      []*entity.StockProposal
	lockedReads    int // lecturas de staging hechas con bloqueo de fila
}

func (s *memStore) clone() *memStore {
	c := &memStore{items: map[string]*entity.StockItem{}, lockedReads: s.lockedReads}
	for k, v := range s.items {
		copia := *v
		c.items[k] = &copia
	}
	c.requestDrafts = append(c.requestDrafts, s.requestDrafts...)
	c.proposalDrafts = append(c.proposalDrafts, s.proposalDrafts...)
	c.requests = append(c.requests, s.requests...)
	c.proposals = append(c.proposals, s.proposals...)
	return c
}

// fakeTxRunner ejecuta fn sobre el almacén y lo restaura si fn falla,
// imitando el rollback de una transacción real.
type fakeTxRunner struct {
	store *memStore
}

func (r *fakeTxRunner) RunSubmission(_ context.Context, fn func(
	requestDrafts repository.RequestDraftRepository,
	proposalDrafts repository.ProposalDraftRepository,
	requests repository.StockRequestRepository,
	proposals repository.StockProposalRepository,
	items repository.StockItemRepository,
) error) error {
	backup := r.store.clone()
	err := fn(
		&memRequestDraftRepo{store: r.store},
		&memProposalDraftRepo{store: r.store},
		&memRequestRepo{store: r.store},
		&memProposalRepo{store: r.store},
		&memItemRepo{store: r.store},
	)
	if err != nil {
		*r.store = *backup
	}
	return err
}

var _ submission.TxRunner = (*fakeTxRunner)(nil)

type memItemRepo struct{ store *memStore }

func (r *memItemRepo) Create(*entity.StockItem) error                   { return nil }
func (r *memItemRepo) GetByID(string) (*entity.StockItem, error)        { return nil, nil }
func (r *memItemRepo) Update(*entity.StockItem) error                   { return nil }
func (r *memItemRepo) UpdateCounters(string, int64, int64, int64) error { return nil }
func (r *memItemRepo) List(string) ([]*entity.StockItem, error)         { return nil, nil }
func (r *memItemRepo) ListCodesByPrefix(string) ([]string, error)       { return nil, nil }
func (r *memItemRepo) Delete(string) error                              { return nil }
func (r *memItemRepo) GetByCode(code string) (*entity.StockItem, error) {
	it, ok := r.store.items[code]
	if !ok {
		return nil, nil
	}
	return it, nil
}
func (r *memItemRepo) GetByCodeForUpdate(code string) (*entity.StockItem, error) {
	return r.GetByCode(code)
}

type memRequestDraftRepo struct{ store *memStore }

func (r *memRequestDraftRepo) Create(d *entity.RequestDraft) error {
	r.store.requestDrafts = append(r.store.requestDrafts, d)
	return nil
}
func (r *memRequestDraftRepo) GetByID(string) (*entity.RequestDraft, error) { return nil, nil }
func (r *memRequestDraftRepo) ListByActorAndDate(actorID string, day time.Time) ([]*entity.RequestDraft, error) {
	var out []*entity.RequestDraft
	for _, d := range r.store.requestDrafts {
		if d.ActorID == actorID && d.RequestDate.Equal(day) {
			out = append(out, d)
		}
	}
	return out, nil
}
func (r *memRequestDraftRepo) ListByActorAndDateForUpdate(actorID string, day time.Time) ([]*entity.RequestDraft, error) {
	r.store.lockedReads++
	return r.ListByActorAndDate(actorID, day)
}
func (r *memRequestDraftRepo) Delete(string) error { return nil }
func (r *memRequestDraftRepo) DeleteByActorAndDate(actorID string, day time.Time) error {
	var keep []*entity.RequestDraft
	for _, d := range r.store.requestDrafts {
		if d.ActorID != actorID || !d.RequestDate.Equal(day) {
			keep = append(keep, d)
		}
	}
	r.store.requestDrafts = keep
	return nil
}

type memProposalDraftRepo struct{ store *memStore }

func (r *memProposalDraftRepo) Create(d *entity.ProposalDraft) error {
	r.store.proposalDrafts = append(r.store.proposalDrafts, d)
	return nil
}
func (r *memProposalDraftRepo) GetByID(string) (*entity.ProposalDraft, error) { return nil, nil }
func (r *memProposalDraftRepo) ListByActorAndDate(actorID string, day time.Time) ([]*entity.ProposalDraft, error) {
	var out []*entity.ProposalDraft
	for _, d := range r.store.proposalDrafts {
		if d.ActorID == actorID && d.ProposalDate.Equal(day) {
			out = append(out, d)
		}
	}
	return out, nil
}
func (r *memProposalDraftRepo) ListByActorAndDateForUpdate(actorID string, day time.Time) ([]*entity.ProposalDraft, error) {
	r.store.lockedReads++
	return r.ListByActorAndDate(actorID, day)
}
func (r *memProposalDraftRepo) Delete(string) error { return nil }
func (r *memProposalDraftRepo) DeleteByActorAndDate(actorID string, day time.Time) error {
	var keep []*entity.ProposalDraft
	for _, d := range r.store.proposalDrafts {
		if d.ActorID != actorID || !d.ProposalDate.Equal(day) {
			keep = append(keep, d)
		}
	}
	r.store.proposalDrafts = keep
	return nil
}

type memRequestRepo struct{ store *memStore }

func (r *memRequestRepo) Create(req *entity.StockRequest) error {
	r.store.requests = append(r.store.requests, req)
	return nil
}
func (r *memRequestRepo) GetByID(string) (*entity.StockRequest, error)          { return nil, nil }
func (r *memRequestRepo) GetByIDForUpdate(string) (*entity.StockRequest, error) { return nil, nil }
func (r *memRequestRepo) UpdateStatus(string, string) error                     { return nil }
func (r *memRequestRepo) List(repository.RecordFilter) ([]*entity.StockRequest, error) {
	return r.store.requests, nil
}

type memProposalRepo struct{ store *memStore }

func (r *memProposalRepo) Create(p *entity.StockProposal) error {
	r.store.proposals = append(r.store.proposals, p)
	return nil
}
func (r *memProposalRepo) GetByID(string) (*entity.StockProposal, error)          { return nil, nil }
func (r *memProposalRepo) GetByIDForUpdate(string) (*entity.StockProposal, error) { return nil, nil }
func (r *memProposalRepo) UpdateStatus(string, string) error                      { return nil }
func (r *memProposalRepo) List(repository.RecordFilter) ([]*entity.StockProposal, error) {
	return r.store.proposals, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var (
	hoy   = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	maria = domain.Actor{ID: "user-maria", Username: "maria", Role: entity.RoleUser, Department: "QC"}
)

func requestDraft(id string, qty int64) *entity.RequestDraft {
	return &entity.RequestDraft{
		ID:          id,
		ActorID:     maria.ID,
		ActorName:   maria.Username,
		Department:  maria.Department,
		ItemCode:    "1.001",
		CategoryID:  "cat-1",
		Quantity:    qty,
		RequestDate: hoy,
	}
}

func newStore(remaining int64, drafts ...*entity.RequestDraft) *memStore {
	return &memStore{
		items: map[string]*entity.StockItem{
			"1.001": {ID: "item-1", Code: "1.001", Name: "Papel A4", Remaining: remaining},
		},
		requestDrafts: drafts,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// SubmitRequests
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmitRequests_PromueveTodasLasLineas(t *testing.T) {
	store := newStore(10, requestDraft("d1", 3), requestDraft("d2", 4))
	svc := submission.NewService(&fakeTxRunner{store: store})

	created, err := svc.SubmitRequests(context.Background(), maria, hoy)
	require.NoError(t, err)
	require.Len(t, created, 2)

	for _, req := range created {
		assert.Equal(t, entity.StatusPending, req.Status, "los registros nacen pending")
		assert.Equal(t, "maria", req.ActorName)
	}
	assert.Empty(t, store.requestDrafts, "los borradores se limpian tras el envío")
	assert.Len(t, store.requests, 2)
}

func TestSubmitRequests_SinBorradores(t *testing.T) {
	store := newStore(10)
	svc := submission.NewService(&fakeTxRunner{store: store})

	_, err := svc.SubmitRequests(context.Background(), maria, hoy)
	assert.ErrorIs(t, err, domain.ErrNothingToSubmit)
}

func TestSubmitRequests_TodoONada_StockInsuficiente(t *testing.T) {
	// La primera línea cabe en el stock, la segunda no: el envío completo falla.
	store := newStore(5, requestDraft("d1", 2), requestDraft("d2", 9))
	svc := submission.NewService(&fakeTxRunner{store: store})

	_, err := svc.SubmitRequests(context.Background(), maria, hoy)
	require.Error(t, err)

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, int64(9), stockErr.Requested)

	assert.Empty(t, store.requests, "ningún registro parcial")
	assert.Len(t, store.requestDrafts, 2, "los borradores quedan intactos")
}

func TestSubmitRequests_NoTocaBorradoresDeOtroDia(t *testing.T) {
	ayer := hoy.AddDate(0, 0, -1)
	antiguo := requestDraft("d-viejo", 1)
	antiguo.RequestDate = ayer
	store := newStore(10, requestDraft("d1", 2), antiguo)
	svc := submission.NewService(&fakeTxRunner{store: store})

	created, err := svc.SubmitRequests(context.Background(), maria, hoy)
	require.NoError(t, err)
	assert.Len(t, created, 1)
	require.Len(t, store.requestDrafts, 1, "el borrador de ayer sobrevive")
	assert.Equal(t, "d-viejo", store.requestDrafts[0].ID)
}

func TestSubmitRequests_LeeBorradoresBajoBloqueo(t *testing.T) {
	store := newStore(10, requestDraft("d1", 3))
	svc := submission.NewService(&fakeTxRunner{store: store})

	_, err := svc.SubmitRequests(context.Background(), maria, hoy)
	require.NoError(t, err)

	assert.Positive(t, store.lockedReads,
		"el staging se lee con bloqueo de fila dentro de la transacción")
}

func TestSubmitRequests_DobleEnvio_NoDuplicaRegistros(t *testing.T) {
	// Dos envíos del mismo staging: el segundo, serializado tras el primero
	// por el bloqueo de filas, encuentra el staging vacío.
	store := newStore(10, requestDraft("d1", 3))
	svc := submission.NewService(&fakeTxRunner{store: store})

	created, err := svc.SubmitRequests(context.Background(), maria, hoy)
	require.NoError(t, err)
	require.Len(t, created, 1)

	_, err = svc.SubmitRequests(context.Background(), maria, hoy)
	assert.ErrorIs(t, err, domain.ErrNothingToSubmit)
	assert.Len(t, store.requests, 1, "sin registros duplicados")
}

// ──────────────────────────────────────────────────────────────────────────────
// SubmitProposals
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmitProposals_SinChequeoDeStock(t *testing.T) {
	store := newStore(0) // remaining 0: irrelevante para propuestas
	store.proposalDrafts = []*entity.ProposalDraft{{
		ID:           "p1",
		ActorID:      maria.ID,
		ActorName:    maria.Username,
		ItemCode:     "1.001",
		CategoryID:   "cat-1",
		Quantity:     50,
		Unit:         "rim",
		UnitPrice:    decimal.NewFromInt(25),
		Total:        decimal.NewFromInt(1250),
		ProposalDate: hoy,
	}}
	svc := submission.NewService(&fakeTxRunner{store: store})

	created, err := svc.SubmitProposals(context.Background(), maria, hoy)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, entity.StatusPending, created[0].Status)
	assert.True(t, created[0].Total.Equal(decimal.NewFromInt(1250)), "el total denormalizado se conserva")
	assert.Empty(t, store.proposalDrafts)
}

func TestSubmitProposals_SinBorradores(t *testing.T) {
	store := newStore(10)
	svc := submission.NewService(&fakeTxRunner{store: store})

	_, err := svc.SubmitProposals(context.Background(), maria, hoy)
	assert.ErrorIs(t, err, domain.ErrNothingToSubmit)
}
