package ledger

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando los
// repositorios del libro de stock atados a esa tx. Lo usa la edición directa
// del admin (SetOnHand); el motor de aprobación usa su propio runner.
type TxRunner interface {
	RunLedger(ctx context.Context, fn func(
		items repository.StockItemRepository,
		movements repository.LedgerMovementRepository,
	) error) error
}
