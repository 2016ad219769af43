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

var _ repository.RequestDraftRepository = (*RequestDraftRepo)(nil)

// RequestDraftRepo implementación del puerto RequestDraftRepository sobre
// PostgreSQL (usable con pool o tx).
type RequestDraftRepo struct {
	q Querier
}

// NewRequestDraftRepository construye el adaptador de staging de solicitudes.
func NewRequestDraftRepository(q Querier) *RequestDraftRepo {
	return &RequestDraftRepo{q: q}
}

// Create persiste una línea de borrador de solicitud.
func (r *RequestDraftRepo) Create(draft *entity.RequestDraft) error {
	query := `
		INSERT INTO request_drafts (id, actor_id, actor_name, department, item_code, category_id, quantity, request_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		draft.ID, draft.ActorID, draft.ActorName, draft.Department, draft.ItemCode,
		draft.CategoryID, draft.Quantity, draft.RequestDate, draft.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert request draft: %w", err)
	}
	return nil
}

// GetByID obtiene una línea de borrador por ID.
func (r *RequestDraftRepo) GetByID(id string) (*entity.RequestDraft, error) {
	query := `
		SELECT id, actor_id, actor_name, department, item_code, category_id, quantity, request_date, created_at
		FROM request_drafts WHERE id = $1`
	var d entity.RequestDraft
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.ActorID, &d.ActorName, &d.Department, &d.ItemCode,
		&d.CategoryID, &d.Quantity, &d.RequestDate, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get request draft: %w", err)
	}
	return &d, nil
}

// ListByActorAndDate lista las líneas del actor para el día, en orden de inserción.
func (r *RequestDraftRepo) ListByActorAndDate(actorID string, day time.Time) ([]*entity.RequestDraft, error) {
	return r.listByActorAndDate(actorID, day, false)
}

// ListByActorAndDateForUpdate lista con SELECT FOR UPDATE: dos envíos
// concurrentes del mismo staging se serializan sobre las filas.
func (r *RequestDraftRepo) ListByActorAndDateForUpdate(actorID string, day time.Time) ([]*entity.RequestDraft, error) {
	return r.listByActorAndDate(actorID, day, true)
}

func (r *RequestDraftRepo) listByActorAndDate(actorID string, day time.Time, forUpdate bool) ([]*entity.RequestDraft, error) {
	query := `
		SELECT id, actor_id, actor_name, department, item_code, category_id, quantity, request_date, created_at
		FROM request_drafts WHERE actor_id = $1 AND request_date = $2::date
		ORDER BY created_at ASC, id ASC`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rows, err := r.q.Query(context.Background(), query, actorID, day)
	if err != nil {
		return nil, fmt.Errorf("list request drafts: %w", err)
	}
	defer rows.Close()

	var drafts []*entity.RequestDraft
	for rows.Next() {
		var d entity.RequestDraft
		if err := rows.Scan(
			&d.ID, &d.ActorID, &d.ActorName, &d.Department, &d.ItemCode,
			&d.CategoryID, &d.Quantity, &d.RequestDate, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan request draft: %w", err)
		}
		drafts = append(drafts, &d)
	}
	return drafts, rows.Err()
}

// Delete elimina una línea de borrador por ID.
func (r *RequestDraftRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM request_drafts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete request draft: %w", err)
	}
	return nil
}

// DeleteByActorAndDate limpia todas las líneas del actor para el día.
func (r *RequestDraftRepo) DeleteByActorAndDate(actorID string, day time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM request_drafts WHERE actor_id = $1 AND request_date = $2::date`, actorID, day,
	)
	if err != nil {
		return fmt.Errorf("delete request drafts: %w", err)
	}
	return nil
}
