package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockProposalRepository = (*StockProposalRepo)(nil)

// StockProposalRepo implementación del puerto StockProposalRepository sobre
// PostgreSQL (usable con pool o tx).
type StockProposalRepo struct {
	q Querier
}

// NewStockProposalRepository construye el adaptador de persistencia para propuestas.
func NewStockProposalRepository(q Querier) *StockProposalRepo {
	return &StockProposalRepo{q: q}
}

const stockProposalSelect = `
	SELECT p.id, p.actor_id, p.actor_name, p.item_code, COALESCE(i.name, ''), p.category_id, p.quantity, p.unit, p.unit_price, p.total, p.proposal_date, p.status, p.created_at
	FROM stock_proposals p
	LEFT JOIN stock_items i ON i.code = p.item_code`

func scanStockProposal(row pgx.Row) (*entity.StockProposal, error) {
	var prop entity.StockProposal
	err := row.Scan(
		&prop.ID, &prop.ActorID, &prop.ActorName, &prop.ItemCode, &prop.ItemName,
		&prop.CategoryID, &prop.Quantity, &prop.Unit, &prop.UnitPrice, &prop.Total,
		&prop.ProposalDate, &prop.Status, &prop.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &prop, nil
}

// Create persiste una propuesta comprometida (estado pending).
func (r *StockProposalRepo) Create(proposal *entity.StockProposal) error {
	query := `
		INSERT INTO stock_proposals (id, actor_id, actor_name, item_code, category_id, quantity, unit, unit_price, total, proposal_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		proposal.ID, proposal.ActorID, proposal.ActorName, proposal.ItemCode, proposal.CategoryID,
		proposal.Quantity, proposal.Unit, proposal.UnitPrice, proposal.Total,
		proposal.ProposalDate, proposal.Status, proposal.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock proposal: %w", err)
	}
	return nil
}

// GetByID obtiene una propuesta por ID.
func (r *StockProposalRepo) GetByID(id string) (*entity.StockProposal, error) {
	prop, err := scanStockProposal(r.q.QueryRow(context.Background(), stockProposalSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock proposal: %w", err)
	}
	return prop, nil
}

// GetByIDForUpdate bloquea la fila de la propuesta antes de verificar su estado.
func (r *StockProposalRepo) GetByIDForUpdate(id string) (*entity.StockProposal, error) {
	prop, err := scanStockProposal(r.q.QueryRow(context.Background(), stockProposalSelect+` WHERE p.id = $1 FOR UPDATE OF p`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock stock proposal: %w", err)
	}
	return prop, nil
}

// UpdateStatus aplica la transición de estado.
func (r *StockProposalRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE stock_proposals SET status = $2 WHERE id = $1`, id, status,
	)
	if err != nil {
		return fmt.Errorf("update stock proposal status: %w", err)
	}
	return nil
}

// List lista propuestas aplicando el filtro, más recientes primero.
func (r *StockProposalRepo) List(filter repository.RecordFilter) ([]*entity.StockProposal, error) {
	query := stockProposalSelect + ` WHERE 1=1`
	var args []any
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND p.status = $%d", len(args))
	}
	if filter.ActorName != "" {
		args = append(args, filter.ActorName)
		query += fmt.Sprintf(" AND p.actor_name = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND p.proposal_date >= $%d::date", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND p.proposal_date <= $%d::date", len(args))
	}
	query += ` ORDER BY p.created_at DESC, p.id DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock proposals: %w", err)
	}
	defer rows.Close()

	var proposals []*entity.StockProposal
	for rows.Next() {
		prop, err := scanStockProposal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock proposal: %w", err)
		}
		proposals = append(proposals, prop)
	}
	return proposals, rows.Err()
}
