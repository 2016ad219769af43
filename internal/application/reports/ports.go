package reports

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
)

// PDFGenerator renderiza el reporte de registros aprobados ya resueltos
// (nombres de artículo incluidos). El núcleo solo entrega los datos; el
// layout del documento vive en infraestructura.
type PDFGenerator interface {
	GenerateRequestReportPDF(ctx context.Context, rows []dto.RequestResponse, from, to time.Time) ([]byte, error)
	GenerateProposalReportPDF(ctx context.Context, rows []dto.ProposalResponse, from, to time.Time) ([]byte, error)
}
