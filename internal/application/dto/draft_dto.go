package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddRequestDraftRequest entrada para añadir una línea de borrador de solicitud.
type AddRequestDraftRequest struct {
	ItemCode string `json:"item_code" validate:"required,min=1,max=10"`
	Quantity int64  `json:"quantity" validate:"required,gt=0"`
}

// AddProposalDraftRequest entrada para añadir una línea de borrador de propuesta.
type AddProposalDraftRequest struct {
	ItemCode  string          `json:"item_code" validate:"required,min=1,max=10"`
	Quantity  int64           `json:"quantity" validate:"required,gt=0"`
	Unit      string          `json:"unit" validate:"required,min=1,max=20"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// RequestDraftResponse línea de borrador de solicitud con el artículo resuelto.
type RequestDraftResponse struct {
	ID          string    `json:"id"`
	ActorName   string    `json:"actor_name"`
	Department  string    `json:"department"`
	ItemCode    string    `json:"item_code"`
	ItemName    string    `json:"item_name"`
	CategoryID  string    `json:"category_id"`
	Quantity    int64     `json:"quantity"`
	RequestDate time.Time `json:"request_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProposalDraftResponse línea de borrador de propuesta con precio y total.
type ProposalDraftResponse struct {
	ID           string          `json:"id"`
	ActorName    string          `json:"actor_name"`
	ItemCode     string          `json:"item_code"`
	ItemName     string          `json:"item_name"`
	CategoryID   string          `json:"category_id"`
	Quantity     int64           `json:"quantity"`
	Unit         string          `json:"unit"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Total        decimal.Decimal `json:"total"`
	ProposalDate time.Time       `json:"proposal_date"`
	CreatedAt    time.Time       `json:"created_at"`
}
