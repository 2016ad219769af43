package submission

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta la promoción de borradores dentro de una transacción,
// pasando repositorios atados a esa tx. Garantiza que la creación de los
// registros comprometidos y la limpieza de borradores sean todo-o-nada.
type TxRunner interface {
	RunSubmission(ctx context.Context, fn func(
		requestDrafts repository.RequestDraftRepository,
		proposalDrafts repository.ProposalDraftRepository,
		requests repository.StockRequestRepository,
		proposals repository.StockProposalRepository,
		items repository.StockItemRepository,
	) error) error
}
