package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ProposalDraftRepository = (*ProposalDraftRepo)(nil)

// ProposalDraftRepo implementación del puerto ProposalDraftRepository sobre
// PostgreSQL (usable con pool o tx).
type ProposalDraftRepo struct {
	q Querier
}

// NewProposalDraftRepository construye el adaptador de staging de propuestas.
func NewProposalDraftRepository(q Querier) *ProposalDraftRepo {
	return &ProposalDraftRepo{q: q}
}

// Create persiste una línea de borrador de propuesta.
func (r *ProposalDraftRepo) Create(draft *entity.ProposalDraft) error {
	query := `
		INSERT INTO proposal_drafts (id, actor_id, actor_name, item_code, category_id, quantity, unit, unit_price, total, proposal_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		draft.ID, draft.ActorID, draft.ActorName, draft.ItemCode, draft.CategoryID,
		draft.Quantity, draft.Unit, draft.UnitPrice, draft.Total, draft.ProposalDate, draft.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert proposal draft: %w", err)
	}
	return nil
}

// GetByID obtiene una línea de borrador por ID.
func (r *ProposalDraftRepo) GetByID(id string) (*entity.ProposalDraft, error) {
	query := `
		SELECT id, actor_id, actor_name, item_code, category_id, quantity, unit, unit_price, total, proposal_date, created_at
		FROM proposal_drafts WHERE id = $1`
	var d entity.ProposalDraft
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.ActorID, &d.ActorName, &d.ItemCode, &d.CategoryID,
		&d.Quantity, &d.Unit, &d.UnitPrice, &d.Total, &d.ProposalDate, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proposal draft: %w", err)
	}
	return &d, nil
}

// ListByActorAndDate lista las líneas del actor para el día, en orden de inserción.
func (r *ProposalDraftRepo) ListByActorAndDate(actorID string, day time.Time) ([]*entity.ProposalDraft, error) {
	return r.listByActorAndDate(actorID, day, false)
}

// ListByActorAndDateForUpdate lista con SELECT FOR UPDATE; mismo contrato que
// en el staging de solicitudes.
func (r *ProposalDraftRepo) ListByActorAndDateForUpdate(actorID string, day time.Time) ([]*entity.ProposalDraft, error) {
	return r.listByActorAndDate(actorID, day, true)
}

func (r *ProposalDraftRepo) listByActorAndDate(actorID string, day time.Time, forUpdate bool) ([]*entity.ProposalDraft, error) {
	query := `
		SELECT id, actor_id, actor_name, item_code, category_id, quantity, unit, unit_price, total, proposal_date, created_at
		FROM proposal_drafts WHERE actor_id = $1 AND proposal_date = $2::date
		ORDER BY created_at ASC, id ASC`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rows, err := r.q.Query(context.Background(), query, actorID, day)
	if err != nil {
		return nil, fmt.Errorf("list proposal drafts: %w", err)
	}
	defer rows.Close()

	var drafts []*entity.ProposalDraft
	for rows.Next() {
		var d entity.ProposalDraft
		if err := rows.Scan(
			&d.ID, &d.ActorID, &d.ActorName, &d.ItemCode, &d.CategoryID,
			&d.Quantity, &d.Unit, &d.UnitPrice, &d.Total, &d.ProposalDate, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan proposal draft: %w", err)
		}
		drafts = append(drafts, &d)
	}
	return drafts, rows.Err()
}

// Delete elimina una línea de borrador por ID.
func (r *ProposalDraftRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM proposal_drafts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete proposal draft: %w", err)
	}
	return nil
}

// DeleteByActorAndDate limpia todas las líneas del actor para el día.
func (r *ProposalDraftRepo) DeleteByActorAndDate(actorID string, day time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM proposal_drafts WHERE actor_id = $1 AND proposal_date = $2::date`, actorID, day,
	)
	if err != nil {
		return fmt.Errorf("delete proposal drafts: %w", err)
	}
	return nil
}
