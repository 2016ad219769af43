package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/approval"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/validator"
)

// RecordHandler maneja las peticiones HTTP sobre registros comprometidos:
// listados con filtro y las transiciones del motor de aprobación. Los actores
// sin rol admin solo ven sus propios registros; aprobar y rechazar se
// restringe a admin en el router.
type RecordHandler struct {
	approval *approval.Service
	reports  *reports.Service
}

// NewRecordHandler construye el handler.
func NewRecordHandler(approvalSvc *approval.Service, reportsSvc *reports.Service) *RecordHandler {
	return &RecordHandler{approval: approvalSvc, reports: reportsSvc}
}

// recordFilter arma el filtro desde la query; los no-admin quedan acotados a
// su propio actor.
func recordFilter(c *fiber.Ctx) (repository.RecordFilter, error) {
	from, to, err := queryDateRange(c)
	if err != nil {
		return repository.RecordFilter{}, err
	}
	filter := repository.RecordFilter{From: from, To: to}
	if s := c.Query("status"); s != "" {
		filter.Status = &s
	}
	actor := GetActor(c)
	if actor.IsAdmin() {
		filter.ActorName = c.Query("actor")
	} else {
		filter.ActorName = actor.Username
	}
	return filter, nil
}

// ListRequests godoc
// @Summary      Listar solicitudes comprometidas
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | approved | rejected"
// @Param        from    query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to      query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        actor   query  string  false  "Filtrar por actor (solo admin)"
// @Success      200     {object}  dto.RequestReportResponse
// @Router       /api/requests [get]
func (h *RecordHandler) ListRequests(c *fiber.Ctx) error {
	filter, err := recordFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser YYYY-MM-DD"})
	}
	out, err := h.reports.RequestReport(filter)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// ApproveRequest godoc
// @Summary      Aprobar una solicitud pendiente (emite stock)
// @Tags         requests
// @Security     Bearer
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/approve [post]
func (h *RecordHandler) ApproveRequest(c *fiber.Ctx) error {
	if err := h.approval.ApproveRequest(c.UserContext(), c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RejectRequest godoc
// @Summary      Rechazar una solicitud pendiente
// @Tags         requests
// @Security     Bearer
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/reject [post]
func (h *RecordHandler) RejectRequest(c *fiber.Ctx) error {
	if err := h.approval.RejectRequest(c.UserContext(), c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ApproveAllRequests godoc
// @Summary      Aprobar solicitudes en lote (mejor esfuerzo, se detiene en el primer fallo)
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApproveAllRequest  true  "IDs en orden"
// @Success      200   {array}  dto.BatchOutcomeResponse
// @Router       /api/requests/approve-all [post]
func (h *RecordHandler) ApproveAllRequests(c *fiber.Ctx) error {
	var in dto.ApproveAllRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if details := validator.ValidateStruct(in); details != nil {
		return writeValidation(c, details)
	}
	outcomes := h.approval.ApproveAllRequests(c.UserContext(), in.IDs)
	return c.JSON(toBatchOutcomes(outcomes))
}

// ListProposals godoc
// @Summary      Listar propuestas comprometidas
// @Tags         proposals
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | approved | rejected"
// @Param        from    query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to      query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        actor   query  string  false  "Filtrar por actor (solo admin)"
// @Success      200     {object}  dto.ProposalReportResponse
// @Router       /api/proposals [get]
func (h *RecordHandler) ListProposals(c *fiber.Ctx) error {
	filter, err := recordFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser YYYY-MM-DD"})
	}
	out, err := h.reports.ProposalReport(filter)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// ApproveProposal godoc
// @Summary      Aprobar una propuesta pendiente (recibe stock)
// @Tags         proposals
// @Security     Bearer
// @Param        id   path  string  true  "ID de la propuesta"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/proposals/{id}/approve [post]
func (h *RecordHandler) ApproveProposal(c *fiber.Ctx) error {
	if err := h.approval.ApproveProposal(c.UserContext(), c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RejectProposal godoc
// @Summary      Rechazar una propuesta pendiente
// @Tags         proposals
// @Security     Bearer
// @Param        id   path  string  true  "ID de la propuesta"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/proposals/{id}/reject [post]
func (h *RecordHandler) RejectProposal(c *fiber.Ctx) error {
	if err := h.approval.RejectProposal(c.UserContext(), c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ApproveAllProposals godoc
// @Summary      Aprobar propuestas en lote (mejor esfuerzo, se detiene en el primer fallo)
// @Tags         proposals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApproveAllRequest  true  "IDs en orden"
// @Success      200   {array}  dto.BatchOutcomeResponse
// @Router       /api/proposals/approve-all [post]
func (h *RecordHandler) ApproveAllProposals(c *fiber.Ctx) error {
	var in dto.ApproveAllRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if details := validator.ValidateStruct(in); details != nil {
		return writeValidation(c, details)
	}
	outcomes := h.approval.ApproveAllProposals(c.UserContext(), in.IDs)
	return c.JSON(toBatchOutcomes(outcomes))
}

func toBatchOutcomes(outcomes []approval.BatchOutcome) []dto.BatchOutcomeResponse {
	out := make([]dto.BatchOutcomeResponse, 0, len(outcomes))
	for _, o := range outcomes {
		r := dto.BatchOutcomeResponse{ID: o.ID, Status: "approved"}
		if o.Err != nil {
			r.Status = "failed"
			r.Code = errorCode(o.Err)
			r.Message = o.Err.Error()
		}
		out = append(out, r)
	}
	return out
}
