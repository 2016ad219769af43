package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestResponse solicitud de stock comprometida.
type RequestResponse struct {
	ID          string    `json:"id"`
	ActorName   string    `json:"actor_name"`
	Department  string    `json:"department"`
	ItemCode    string    `json:"item_code"`
	ItemName    string    `json:"item_name"`
	CategoryID  string    `json:"category_id"`
	Quantity    int64     `json:"quantity"`
	RequestDate time.Time `json:"request_date"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProposalResponse propuesta de compra comprometida.
type ProposalResponse struct {
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
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SubmitResponse resultado de un envío de borradores.
type SubmitResponse struct {
	Message string      `json:"message"`
	Count   int         `json:"count"`
	Data    interface{} `json:"data"`
}

// ApproveAllRequest lote de IDs a aprobar en orden.
type ApproveAllRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid4"`
}

// BatchOutcomeResponse resultado por registro de un approve-all.
type BatchOutcomeResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"` // approved | failed | skipped
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
