package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestDraft es una línea de borrador de solicitud de stock, propiedad
// exclusiva del actor que la creó y acotada a un día calendario.
type RequestDraft struct {
	ID          string
	ActorID     string
	ActorName   string // username del actor (etiqueta "unit" en los registros)
	Department  string
	ItemCode    string
	CategoryID  string
	Quantity    int64
	RequestDate time.Time // día al que pertenece el borrador
	CreatedAt   time.Time
}

// ProposalDraft es una línea de borrador de propuesta de compra. No valida
// stock (las propuestas aumentan stock futuro); lleva precio y total
// denormalizado Total = Quantity * UnitPrice.
type ProposalDraft struct {
	ID           string
	ActorID      string
	ActorName    string
	ItemCode     string
	CategoryID   string
	Quantity     int64
	Unit         string
	UnitPrice    decimal.Decimal
	Total        decimal.Decimal
	ProposalDate time.Time
	CreatedAt    time.Time
}
