package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ItemUseCase administración del maestro de artículos (solo admin). Los
// contadores de stock no se tocan aquí directamente: un cambio de OnHand pasa
// por el Ledger (SetOnHand) dentro de su propia transacción.
type ItemUseCase struct {
	repo       repository.StockItemRepository
	categories repository.CategoryRepository
	tx         ledger.TxRunner
	ledger     *ledger.Service
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(
	repo repository.StockItemRepository,
	categories repository.CategoryRepository,
	tx ledger.TxRunner,
	ledgerSvc *ledger.Service,
) *ItemUseCase {
	return &ItemUseCase{repo: repo, categories: categories, tx: tx, ledger: ledgerSvc}
}

// Create crea un artículo. El stock inicial entra como OnHand con Issued 0 y
// Remaining igual a OnHand. Devuelve ErrDuplicate si el código ya existe.
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.OnHand < 0 {
		return nil, domain.ErrInvalidInput
	}
	cat, err := uc.categories.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.repo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	item := &entity.StockItem{
		ID:         uuid.New().String(),
		Code:       in.Code,
		CategoryID: in.CategoryID,
		Name:       in.Name,
		Price:      in.Price,
		Unit:       in.Unit,
		OnHand:     in.OnHand,
		Issued:     0,
		Remaining:  in.OnHand,
		Note:       in.Note,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un artículo por ID.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toItemResponse(item), nil
}

// List lista artículos, opcionalmente filtrados por categoría.
func (uc *ItemUseCase) List(categoryID string) ([]dto.ItemResponse, error) {
	list, err := uc.repo.List(categoryID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, *toItemResponse(it))
	}
	return out, nil
}

// Update actualiza los datos maestros; si OnHand viene, la corrección pasa
// por el Ledger y maestros y contadores se escriben en una sola transacción
// (Remaining = OnHand - Issued, puede quedar negativo).
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	// El bloqueo del Ledger se toma sobre el código vigente en BD, aunque el
	// update lo cambie.
	lockCode := item.Code
	if in.Code != nil && *in.Code != item.Code {
		taken, err := uc.repo.GetByCode(*in.Code)
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, domain.ErrDuplicate
		}
		item.Code = *in.Code
	}
	if in.CategoryID != nil {
		cat, err := uc.categories.GetByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, domain.ErrNotFound
		}
		item.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.Note != nil {
		item.Note = *in.Note
	}
	item.UpdatedAt = time.Now()
	if in.OnHand != nil {
		// Maestros y corrección de contadores en la misma transacción: si el
		// Ledger rechaza el cambio, el update de maestros tampoco queda.
		err := uc.tx.RunLedger(ctx, func(items repository.StockItemRepository, _ repository.LedgerMovementRepository) error {
			updated, err := uc.ledger.SetOnHand(items, lockCode, *in.OnHand)
			if err != nil {
				return err
			}
			item.OnHand = updated.OnHand
			item.Issued = updated.Issued
			item.Remaining = updated.Remaining
			return items.Update(item)
		})
		if err != nil {
			return nil, err
		}
		return toItemResponse(item), nil
	}
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Delete elimina un artículo. Las claves foráneas de solicitudes, propuestas
// y movimientos lo bloquean si está referenciado (ErrConflict desde el repo).
func (uc *ItemUseCase) Delete(id string) error {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// NextCode genera el siguiente código disponible para una categoría con el
// formato "<número de categoría>.<secuencia en 3 dígitos>", ej. 1.001, 1.002.
func (uc *ItemUseCase) NextCode(categoryID string) (*dto.NextCodeResponse, error) {
	cat, err := uc.categories.GetByID(categoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	prefix := fmt.Sprintf("%d.", cat.Number)
	codes, err := uc.repo.ListCodesByPrefix(prefix)
	if err != nil {
		return nil, err
	}
	maxSeq := 0
	for _, code := range codes {
		seqPart := strings.TrimPrefix(code, prefix)
		if seq, err := strconv.Atoi(seqPart); err == nil && seq > maxSeq {
			maxSeq = seq
		}
	}
	return &dto.NextCodeResponse{
		NextCode: fmt.Sprintf("%d.%03d", cat.Number, maxSeq+1),
	}, nil
}

func toItemResponse(i *entity.StockItem) *dto.ItemResponse {
	if i == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:         i.ID,
		Code:       i.Code,
		CategoryID: i.CategoryID,
		Name:       i.Name,
		Price:      i.Price,
		Unit:       i.Unit,
		OnHand:     i.OnHand,
		Issued:     i.Issued,
		Remaining:  i.Remaining,
		Note:       i.Note,
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  i.UpdatedAt,
	}
}
