package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de StockRequest y StockProposal. Pending es el inicial; Approved y
// Rejected son terminales: no hay transición posible desde ninguno de los dos.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// StockRequest es una solicitud de stock comprometida (creada en bloque desde
// RequestDraft por el servicio de envío). Inmutable salvo la transición de
// estado que aplica el motor de aprobación.
type StockRequest struct {
	ID          string
	ActorID     string
	ActorName   string
	Department  string
	ItemCode    string
	ItemName    string // resuelto en lecturas; vacío al insertar
	CategoryID  string
	Quantity    int64
	RequestDate time.Time
	Status      string
	CreatedAt   time.Time
}

// StockProposal es una propuesta de compra comprometida. Mismo ciclo de vida
// que StockRequest; su aprobación incrementa el stock en lugar de emitirlo.
type StockProposal struct {
	ID           string
	ActorID      string
	ActorName    string
	ItemCode     string
	ItemName     string
	CategoryID   string
	Quantity     int64
	Unit         string
	UnitPrice    decimal.Decimal
	Total        decimal.Decimal
	ProposalDate time.Time
	Status       string
	CreatedAt    time.Time
}
