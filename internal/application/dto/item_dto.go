package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un artículo de stock.
type CreateItemRequest struct {
	Code       string          `json:"code" validate:"required,min=1,max=10"`
	CategoryID string          `json:"category_id" validate:"required,uuid4"`
	Name       string          `json:"name" validate:"required,min=1,max=50"`
	Price      decimal.Decimal `json:"price"`
	Unit       string          `json:"unit" validate:"required,min=1,max=20"`
	OnHand     int64           `json:"on_hand" validate:"omitempty,min=0"`
	Note       string          `json:"note" validate:"omitempty,max=50"`
}

// UpdateItemRequest entrada para actualizar un artículo; campos nil no cambian.
// OnHand pasa por el Ledger (SetOnHand): recalcula Remaining = OnHand - Issued.
type UpdateItemRequest struct {
	Code       *string          `json:"code" validate:"omitempty,min=1,max=10"`
	CategoryID *string          `json:"category_id" validate:"omitempty,uuid4"`
	Name       *string          `json:"name" validate:"omitempty,min=1,max=50"`
	Price      *decimal.Decimal `json:"price"`
	Unit       *string          `json:"unit" validate:"omitempty,min=1,max=20"`
	OnHand     *int64           `json:"on_hand"`
	Note       *string          `json:"note" validate:"omitempty,max=50"`
}

// ItemResponse salida de un artículo con sus contadores de stock.
type ItemResponse struct {
	ID         string          `json:"id"`
	Code       string          `json:"code"`
	CategoryID string          `json:"category_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Unit       string          `json:"unit"`
	OnHand     int64           `json:"on_hand"`
	Issued     int64           `json:"issued"`
	Remaining  int64           `json:"remaining"`
	Note       string          `json:"note"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NextCodeResponse siguiente código disponible para una categoría.
type NextCodeResponse struct {
	NextCode string `json:"next_code"`
}
