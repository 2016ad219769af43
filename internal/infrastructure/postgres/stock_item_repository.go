package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implementación del puerto StockItemRepository sobre PostgreSQL
// (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador de persistencia para artículos. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemColumns = `id, code, category_id, name, price, unit, on_hand, issued, remaining, note, created_at, updated_at`

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var it entity.StockItem
	err := row.Scan(
		&it.ID, &it.Code, &it.CategoryID, &it.Name, &it.Price, &it.Unit,
		&it.OnHand, &it.Issued, &it.Remaining, &it.Note, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste un nuevo artículo con sus contadores iniciales.
func (r *StockItemRepo) Create(item *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (id, code, category_id, name, price, unit, on_hand, issued, remaining, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Code, item.CategoryID, item.Name, item.Price, item.Unit,
		item.OnHand, item.Issued, item.Remaining, item.Note, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *StockItemRepo) GetByID(id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1`
	it, err := scanStockItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return it, nil
}

// GetByCode obtiene un artículo por código.
func (r *StockItemRepo) GetByCode(code string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE code = $1`
	it, err := scanStockItem(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item by code: %w", err)
	}
	return it, nil
}

// GetByCodeForUpdate bloquea la fila del artículo (SELECT FOR UPDATE) para
// serializar emisiones concurrentes. Solo tiene sentido dentro de una tx.
func (r *StockItemRepo) GetByCodeForUpdate(code string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE code = $1 FOR UPDATE`
	it, err := scanStockItem(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock stock item: %w", err)
	}
	return it, nil
}

// Update actualiza los campos maestros del artículo. Los contadores no se
// tocan aquí: van por UpdateCounters bajo bloqueo.
func (r *StockItemRepo) Update(item *entity.StockItem) error {
	query := `
		UPDATE stock_items SET code = $2, category_id = $3, name = $4, price = $5, unit = $6, note = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Code, item.CategoryID, item.Name, item.Price, item.Unit,
		item.Note, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		// Cambiar el código con borradores/registros/movimientos que lo
		// referencian dispara la FK.
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update stock item: %w", err)
	}
	return nil
}

// UpdateCounters escribe los tres contadores del libro de stock de una vez.
func (r *StockItemRepo) UpdateCounters(code string, onHand, issued, remaining int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE stock_items SET on_hand = $2, issued = $3, remaining = $4, updated_at = now() WHERE code = $1`,
		code, onHand, issued, remaining,
	)
	if err != nil {
		return fmt.Errorf("update stock counters: %w", err)
	}
	return nil
}

// List lista artículos, opcionalmente filtrados por categoría, ordenados por código.
func (r *StockItemRepo) List(categoryID string) ([]*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items`
	var args []any
	if categoryID != "" {
		query += ` WHERE category_id = $1`
		args = append(args, categoryID)
	}
	query += ` ORDER BY code ASC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()

	var items []*entity.StockItem
	for rows.Next() {
		it, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ListCodesByPrefix devuelve los códigos que empiezan por prefix (generación
// del siguiente código de categoría).
func (r *StockItemRepo) ListCodesByPrefix(prefix string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT code FROM stock_items WHERE code LIKE $1 || '%' ORDER BY code ASC`, prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("list codes by prefix: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan code: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// Delete elimina un artículo por ID. Falla con ErrConflict si el artículo
// tiene registros o movimientos que lo referencian.
func (r *StockItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_items WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete stock item: %w", err)
	}
	return nil
}
