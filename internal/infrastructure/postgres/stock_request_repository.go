package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockRequestRepository = (*StockRequestRepo)(nil)

// StockRequestRepo implementación del puerto StockRequestRepository sobre
// PostgreSQL (usable con pool o tx). El nombre del artículo se resuelve en
// lecturas con un join al maestro.
type StockRequestRepo struct {
	q Querier
}

// NewStockRequestRepository construye el adaptador de persistencia para solicitudes.
func NewStockRequestRepository(q Querier) *StockRequestRepo {
	return &StockRequestRepo{q: q}
}

const stockRequestSelect = `
	SELECT r.id, r.actor_id, r.actor_name, r.department, r.item_code, COALESCE(i.name, ''), r.category_id, r.quantity, r.request_date, r.status, r.created_at
	FROM stock_requests r
	LEFT JOIN stock_items i ON i.code = r.item_code`

func scanStockRequest(row pgx.Row) (*entity.StockRequest, error) {
	var req entity.StockRequest
	err := row.Scan(
		&req.ID, &req.ActorID, &req.ActorName, &req.Department, &req.ItemCode, &req.ItemName,
		&req.CategoryID, &req.Quantity, &req.RequestDate, &req.Status, &req.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Create persiste una solicitud comprometida (estado pending).
func (r *StockRequestRepo) Create(request *entity.StockRequest) error {
	query := `
		INSERT INTO stock_requests (id, actor_id, actor_name, department, item_code, category_id, quantity, request_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		request.ID, request.ActorID, request.ActorName, request.Department, request.ItemCode,
		request.CategoryID, request.Quantity, request.RequestDate, request.Status, request.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID.
func (r *StockRequestRepo) GetByID(id string) (*entity.StockRequest, error) {
	req, err := scanStockRequest(r.q.QueryRow(context.Background(), stockRequestSelect+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock request: %w", err)
	}
	return req, nil
}

// GetByIDForUpdate bloquea la fila de la solicitud antes de verificar su
// estado. Solo tiene sentido dentro de una tx.
func (r *StockRequestRepo) GetByIDForUpdate(id string) (*entity.StockRequest, error) {
	req, err := scanStockRequest(r.q.QueryRow(context.Background(), stockRequestSelect+` WHERE r.id = $1 FOR UPDATE OF r`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock stock request: %w", err)
	}
	return req, nil
}

// UpdateStatus aplica la transición de estado.
func (r *StockRequestRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE stock_requests SET status = $2 WHERE id = $1`, id, status,
	)
	if err != nil {
		return fmt.Errorf("update stock request status: %w", err)
	}
	return nil
}

// List lista solicitudes aplicando el filtro, más recientes primero.
func (r *StockRequestRepo) List(filter repository.RecordFilter) ([]*entity.StockRequest, error) {
	query := stockRequestSelect + ` WHERE 1=1`
	var args []any
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND r.status = $%d", len(args))
	}
	if filter.ActorName != "" {
		args = append(args, filter.ActorName)
		query += fmt.Sprintf(" AND r.actor_name = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND r.request_date >= $%d::date", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND r.request_date <= $%d::date", len(args))
	}
	query += ` ORDER BY r.created_at DESC, r.id DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock requests: %w", err)
	}
	defer rows.Close()

	var requests []*entity.StockRequest
	for rows.Next() {
		req, err := scanStockRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
