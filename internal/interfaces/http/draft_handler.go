package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/staging"
	"github.com/jhoicas/almacen-api/internal/application/submission"
	"github.com/jhoicas/almacen-api/pkg/validator"
)

// DraftHandler maneja el staging de borradores y su envío. Todas las rutas
// operan sobre los borradores del actor autenticado para un día.
type DraftHandler struct {
	staging    *staging.Service
	submission *submission.Service
}

// NewDraftHandler construye el handler.
func NewDraftHandler(stagingSvc *staging.Service, submissionSvc *submission.Service) *DraftHandler {
	return &DraftHandler{staging: stagingSvc, submission: submissionSvc}
}

// AddRequestLine godoc
// @Summary      Añadir línea de borrador de solicitud
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        date  query  string  false  "Día (YYYY-MM-DD, por defecto hoy)"
// @Param        body  body   dto.AddRequestDraftRequest  true  "Línea"
// @Success      201   {object}  dto.RequestDraftResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/request-drafts [post]
func (h *DraftHandler) AddRequestLine(c *fiber.Ctx) error {
	day, err := queryDay(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date debe ser YYYY-MM-DD"})
	}
	var in dto.AddRequestDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if details := validator.ValidateStruct(in); details != nil {
		return writeValidation(c, details)
	}
	out, err := h.staging.AddRequestLine(GetActor(c), day, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRequestLines godoc
// @Summary      Listar borradores de solicitud del actor para el día
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "Día (YYYY-MM-DD, por defecto hoy)"
// @Success      200   {array}  dto.RequestDraftResponse
// @Router       /api/request-drafts [get]
func (h *DraftHandler) ListRequestLines(c *fiber.Ctx) error {
	day, err := queryDay(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date debe ser YYYY-MM-DD"})
	}
	out, err := h.staging.ListRequestLines(GetActor(c), day)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// RemoveRequestLine godoc
// @Summary      Eliminar una línea de borrador de solicitud
// @Tags         drafts
// @Security     Bearer
// @Param        id   path  string  true  "ID de la línea"
// @Success      204  "Sin contenido"
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/request-drafts/{id} [delete]
func (h *DraftHandler) RemoveRequestLine(c *fiber.Ctx) error {
	if err := h.staging.RemoveRequestLine(GetActor(c), c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SubmitRequests godoc
// @Summary      Enviar los borradores de solicitud del día (todo o nada)
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "Día (YYYY-MM-DD, por defecto hoy)"
// @Success      201   {object}  dto.SubmitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/request-drafts/submit [post]
func (h *DraftHandler) SubmitRequests(c *fiber.Ctx) error {
	day, err := queryDay(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date debe ser YYYY-MM-DD"})
	}
	created, err := h.submission.SubmitRequests(c.UserContext(), GetActor(c), day)
	if err != nil {
		return writeDomainError(c, err)
	}
	ids := make([]string, 0, len(created))
	for _, r := range created {
		ids = append(ids, r.ID)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SubmitResponse{
		Message: "solicitudes enviadas",
		Count:   len(created),
		Data:    ids,
	})
}

// AddProposalLine godoc
// @Summary      Añadir línea de borrador de propuesta
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        date  query  string  false  "Día (YYYY-MM-DD, por defecto hoy)"
// @Param        body  body   dto.AddProposalDraftRequest  true  "Línea"
// @Success      201   {object}  dto.ProposalDraftResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/proposal-drafts [post]
func (h *DraftHandler) AddProposalLine(c *fiber.Ctx) error {
	day, err := queryDay(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date debe ser YYYY-MM-DD"})
	}
	var in dto.AddProposalDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if details := validator.ValidateStruct(in); details != nil {
		return writeValidation(c, details)
	}
	out, err := h.staging.AddProposalLine(GetActor(c), day, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListProposalLines godoc
// @Summary      Listar borradores de propuesta del actor para el día
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "Día (YYYY-MM-DD, por defecto hoy)"
// @Success      200   {array}  dto.ProposalDraftResponse
// @Router       /api/proposal-drafts [get]
func (h *DraftHandler) ListProposalLines(c *fiber.Ctx) error {
	day, err := queryDay(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date debe ser YYYY-MM-DD"})
	}
	out, err := h.staging.ListProposalLines(GetActor(c), day)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// RemoveProposalLine godoc
// @Summary      Eliminar una línea de borrador de propuesta
// @Tags         drafts
// @Security     Bearer
// @Param        id   path  string  true  "ID de la línea"
// @Success      204  "Sin contenido"
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proposal-drafts/{id} [delete]
func (h *DraftHandler) RemoveProposalLine(c *fiber.Ctx) error {
	if err := h.staging.RemoveProposalLine(GetActor(c), c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SubmitProposals godoc
// @Summary      Enviar los borradores de propuesta del día (todo o nada)
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "Día (YYYY-MM-DD, por defecto hoy)"
// @Success      201   {object}  dto.SubmitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/proposal-drafts/submit [post]
func (h *DraftHandler) SubmitProposals(c *fiber.Ctx) error {
	day, err := queryDay(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date debe ser YYYY-MM-DD"})
	}
	created, err := h.submission.SubmitProposals(c.UserContext(), GetActor(c), day)
	if err != nil {
		return writeDomainError(c, err)
	}
	ids := make([]string, 0, len(created))
	for _, p := range created {
		ids = append(ids, p.ID)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SubmitResponse{
		Message: "propuestas enviadas",
		Count:   len(created),
		Data:    ids,
	})
}
