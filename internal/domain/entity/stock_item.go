package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem representa un artículo almacenable del inventario maestro.
//
// Invariante del libro de stock: Remaining == OnHand - Issued en todo momento.
// OnHand/Issued/Remaining solo los muta el Ledger (aprobaciones) o la edición
// directa del admin vía SetOnHand, que recalcula Remaining = OnHand - Issued
// y puede dejarlo negativo (corrección administrativa, no se recorta a cero).
type StockItem struct {
	ID         string
	Code       string // único, formato "<número de categoría>.<seq 3 dígitos>", ej. "1.001"
	CategoryID string
	Name       string
	Price      decimal.Decimal // precio unitario de referencia
	Unit       string          // unidad de medida (pcs, box, rim, ...)
	OnHand     int64           // acumulado recibido
	Issued     int64           // acumulado entregado
	Remaining  int64           // derivado: OnHand - Issued
	Note       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
