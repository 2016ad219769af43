package approval

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una transición de estado dentro de una transacción,
// pasando los repositorios atados a esa tx. La mutación del libro de stock y
// el cambio de estado del registro son atómicos: o pasan los dos o ninguno.
type TxRunner interface {
	RunApproval(ctx context.Context, fn func(
		items repository.StockItemRepository,
		movements repository.LedgerMovementRepository,
		requests repository.StockRequestRepository,
		proposals repository.StockProposalRepository,
	) error) error
}
