package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/approval"
	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/application/staging"
	"github.com/jhoicas/almacen-api/internal/application/submission"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	CategoryUC *usecase.CategoryUseCase
	ItemUC     *usecase.ItemUseCase
	Staging    *staging.Service
	Submission *submission.Service
	Approval   *approval.Service
	Reports    *reports.Service
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (solo admin)
	users := protected.Group("/users", RequireAdmin())
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Categories (lectura para todos, escritura solo admin)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", RequireAdmin(), categoryHandler.Create)
	categories.Delete("/:id", RequireAdmin(), categoryHandler.Delete)

	// Items (lectura para todos, escritura solo admin)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Get("/next-code", RequireAdmin(), itemHandler.NextCode)
	items.Get("/:id", itemHandler.GetByID)
	items.Post("/", RequireAdmin(), itemHandler.Create)
	items.Put("/:id", RequireAdmin(), itemHandler.Update)
	items.Delete("/:id", RequireAdmin(), itemHandler.Delete)

	// Drafts + envío (cada actor sobre los suyos)
	draftHandler := NewDraftHandler(deps.Staging, deps.Submission)
	requestDrafts := protected.Group("/request-drafts")
	requestDrafts.Post("/", draftHandler.AddRequestLine)
	requestDrafts.Get("/", draftHandler.ListRequestLines)
	requestDrafts.Post("/submit", draftHandler.SubmitRequests)
	requestDrafts.Delete("/:id", draftHandler.RemoveRequestLine)

	proposalDrafts := protected.Group("/proposal-drafts")
	proposalDrafts.Post("/", draftHandler.AddProposalLine)
	proposalDrafts.Get("/", draftHandler.ListProposalLines)
	proposalDrafts.Post("/submit", draftHandler.SubmitProposals)
	proposalDrafts.Delete("/:id", draftHandler.RemoveProposalLine)

	// Registros comprometidos + motor de aprobación
	recordHandler := NewRecordHandler(deps.Approval, deps.Reports)
	requests := protected.Group("/requests")
	requests.Get("/", recordHandler.ListRequests)
	requests.Post("/approve-all", RequireAdmin(), recordHandler.ApproveAllRequests)
	requests.Post("/:id/approve", RequireAdmin(), recordHandler.ApproveRequest)
	requests.Post("/:id/reject", RequireAdmin(), recordHandler.RejectRequest)

	proposals := protected.Group("/proposals")
	proposals.Get("/", recordHandler.ListProposals)
	proposals.Post("/approve-all", RequireAdmin(), recordHandler.ApproveAllProposals)
	proposals.Post("/:id/approve", RequireAdmin(), recordHandler.ApproveProposal)
	proposals.Post("/:id/reject", RequireAdmin(), recordHandler.RejectProposal)

	// Reportes (solo admin)
	reportsGroup := protected.Group("/reports", RequireAdmin())
	reportHandler := NewReportHandler(deps.Reports)
	reportsGroup.Get("/stock", reportHandler.Stock)
	reportsGroup.Get("/issues", reportHandler.Issues)
	reportsGroup.Get("/receipts", reportHandler.Receipts)
	reportsGroup.Get("/requests/pdf", reportHandler.RequestsPDF)
	reportsGroup.Get("/proposals/pdf", reportHandler.ProposalsPDF)
}
