package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.LedgerMovementRepository = (*LedgerMovementRepo)(nil)

// LedgerMovementRepo implementación del puerto LedgerMovementRepository sobre
// PostgreSQL. Append-only: solo Create y listados.
type LedgerMovementRepo struct {
	q Querier
}

// NewLedgerMovementRepository construye el adaptador del rastro de auditoría.
func NewLedgerMovementRepository(q Querier) *LedgerMovementRepo {
	return &LedgerMovementRepo{q: q}
}

// Create persiste un movimiento del libro de stock.
func (r *LedgerMovementRepo) Create(movement *entity.LedgerMovement) error {
	query := `
		INSERT INTO ledger_movements (id, item_code, actor_name, type, quantity, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ItemCode, movement.ActorName, movement.Type,
		movement.Quantity, movement.Date, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger movement: %w", err)
	}
	return nil
}

// ListByType lista movimientos de un tipo aplicando el filtro, más antiguos primero.
func (r *LedgerMovementRepo) ListByType(movementType string, filter repository.MovementFilter) ([]*entity.LedgerMovement, error) {
	query := `
		SELECT m.id, m.item_code, COALESCE(i.name, ''), m.actor_name, m.type, m.quantity, m.date, m.created_at
		FROM ledger_movements m
		LEFT JOIN stock_items i ON i.code = m.item_code
		WHERE m.type = $1`
	args := []any{movementType}
	if filter.ActorName != "" {
		args = append(args, filter.ActorName)
		query += fmt.Sprintf(" AND m.actor_name = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND m.date >= $%d::date", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND m.date <= $%d::date", len(args))
	}
	query += ` ORDER BY m.date ASC, m.created_at ASC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger movements: %w", err)
	}
	defer rows.Close()

	var movements []*entity.LedgerMovement
	for rows.Next() {
		var m entity.LedgerMovement
		if err := rows.Scan(
			&m.ID, &m.ItemCode, &m.ItemName, &m.ActorName, &m.Type,
			&m.Quantity, &m.Date, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan ledger movement: %w", err)
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}
