package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ReportHandler maneja los reportes de stock, movimientos y registros
// (solo admin).
type ReportHandler struct {
	reports *reports.Service
}

// NewReportHandler construye el handler.
func NewReportHandler(reportsSvc *reports.Service) *ReportHandler {
	return &ReportHandler{reports: reportsSvc}
}

// Stock godoc
// @Summary      Reporte de stock con totales
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        category_id    query  string  false  "Filtrar por categoría"
// @Param        max_remaining  query  int     false  "Solo artículos con remaining <= valor"
// @Success      200  {object}  dto.StockReportResponse
// @Router       /api/reports/stock [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	var maxRemaining *int64
	if c.Query("max_remaining") != "" {
		v := int64(c.QueryInt("max_remaining"))
		maxRemaining = &v
	}
	out, err := h.reports.StockReport(c.Query("category_id"), maxRemaining)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

func movementFilter(c *fiber.Ctx) (repository.MovementFilter, error) {
	from, to, err := queryDateRange(c)
	if err != nil {
		return repository.MovementFilter{}, err
	}
	return repository.MovementFilter{ActorName: c.Query("actor"), From: from, To: to}, nil
}

// Issues godoc
// @Summary      Reporte de salidas del libro de stock
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to     query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        actor  query  string  false  "Filtrar por actor"
// @Success      200  {object}  dto.MovementReportResponse
// @Router       /api/reports/issues [get]
func (h *ReportHandler) Issues(c *fiber.Ctx) error {
	filter, err := movementFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser YYYY-MM-DD"})
	}
	out, err := h.reports.IssueReport(filter)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Receipts godoc
// @Summary      Reporte de entradas del libro de stock
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to     query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        actor  query  string  false  "Filtrar por actor"
// @Success      200  {object}  dto.MovementReportResponse
// @Router       /api/reports/receipts [get]
func (h *ReportHandler) Receipts(c *fiber.Ctx) error {
	filter, err := movementFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser YYYY-MM-DD"})
	}
	out, err := h.reports.ReceiptReport(filter)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// pdfRange exige from y to para los PDF (sin rango abierto).
func pdfRange(c *fiber.Ctx) (time.Time, time.Time, bool) {
	from, to, err := queryDateRange(c)
	if err != nil || from == nil || to == nil {
		return time.Time{}, time.Time{}, false
	}
	return *from, *to, true
}

// RequestsPDF godoc
// @Summary      PDF de solicitudes aprobadas en el rango
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        from  query  string  true  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  true  "Hasta (YYYY-MM-DD)"
// @Success      200   {file}  binary
// @Router       /api/reports/requests/pdf [get]
func (h *ReportHandler) RequestsPDF(c *fiber.Ctx) error {
	from, to, ok := pdfRange(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from y to (YYYY-MM-DD) son requeridos"})
	}
	pdfBytes, err := h.reports.RequestReportPDF(c.UserContext(), from, to)
	if err != nil {
		return writeDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="solicitudes.pdf"`)
	return c.Send(pdfBytes)
}

// ProposalsPDF godoc
// @Summary      PDF de propuestas aprobadas en el rango
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        from  query  string  true  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  true  "Hasta (YYYY-MM-DD)"
// @Success      200   {file}  binary
// @Router       /api/reports/proposals/pdf [get]
func (h *ReportHandler) ProposalsPDF(c *fiber.Ctx) error {
	from, to, ok := pdfRange(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from y to (YYYY-MM-DD) son requeridos"})
	}
	pdfBytes, err := h.reports.ProposalReportPDF(c.UserContext(), from, to)
	if err != nil {
		return writeDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="propuestas.pdf"`)
	return c.Send(pdfBytes)
}
