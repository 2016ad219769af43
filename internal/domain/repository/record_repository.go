package repository

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// RecordFilter filtra listados de solicitudes/propuestas comprometidas.
// Punteros nil significan "sin filtro".
type RecordFilter struct {
	Status    *string
	ActorName string
	From      *time.Time
	To        *time.Time
}

// StockRequestRepository define el puerto de persistencia para StockRequest.
type StockRequestRepository interface {
	Create(request *entity.StockRequest) error
	GetByID(id string) (*entity.StockRequest, error)
	// GetByIDForUpdate bloquea la fila antes de la verificación de estado para
	// que dos aprobaciones concurrentes del mismo registro se serialicen.
	GetByIDForUpdate(id string) (*entity.StockRequest, error)
	UpdateStatus(id, status string) error
	List(filter RecordFilter) ([]*entity.StockRequest, error)
}

// StockProposalRepository define el puerto de persistencia para StockProposal.
type StockProposalRepository interface {
	Create(proposal *entity.StockProposal) error
	GetByID(id string) (*entity.StockProposal, error)
	GetByIDForUpdate(id string) (*entity.StockProposal, error)
	UpdateStatus(id, status string) error
	List(filter RecordFilter) ([]*entity.StockProposal, error)
}
