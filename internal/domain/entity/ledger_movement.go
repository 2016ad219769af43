package entity

import "time"

// Tipos de movimiento del libro de stock.
const (
	MovementReceipt = "receipt" // entrada (aprobación de propuesta)
	MovementIssue   = "issue"   // salida (aprobación de solicitud)
)

// LedgerMovement es el rastro de auditoría del libro de stock: un registro por
// cada entrada o salida aprobada. Append-only; nunca se muta ni se borra.
type LedgerMovement struct {
	ID        string
	ItemCode  string
	ItemName  string // resuelto en lecturas
	ActorName string // unidad/actor que originó el movimiento
	Type      string // receipt, issue
	Quantity  int64
	Date      time.Time
	CreatedAt time.Time
}
