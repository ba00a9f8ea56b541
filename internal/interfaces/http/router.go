package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/billmint/billmint-api/internal/application/auth"
	"github.com/billmint/billmint-api/internal/application/billing"
	"github.com/billmint/billmint-api/internal/application/usecase"
	"github.com/billmint/billmint-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CustomerUC *billing.CustomerUseCase
	ProductUC  *usecase.ProductUseCase
	BusinessUC *usecase.BusinessUseCase
	Drafts     *billing.DraftManager
	BillUC     *billing.BillUseCase
	InvoiceUC  *billing.InvoiceUseCase
	JWTSecret  string
	Limiter    *RateLimiter
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	if deps.Limiter != nil {
		api.Use(deps.Limiter.Middleware())
	}

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (Bearer token required)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Product catalog
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Issuer profile (writes restricted to admin)
	business := protected.Group("/business")
	businessHandler := NewBusinessHandler(deps.BusinessUC)
	business.Get("/", businessHandler.Get)
	business.Put("/", RequireRole(entity.RoleAdmin), businessHandler.Save)

	// Draft billing session (each user works on their own draft)
	billHandler := NewBillHandler(deps.Drafts, deps.BillUC, deps.InvoiceUC)
	draft := protected.Group("/billing/draft")
	draft.Post("/", billHandler.InitDraft)
	draft.Get("/", billHandler.GetDraft)
	draft.Delete("/", billHandler.DiscardDraft)
	draft.Post("/items", billHandler.AddItem)
	draft.Put("/items/:index", billHandler.UpdateItem)
	draft.Delete("/items/:index", billHandler.RemoveItem)
	draft.Put("/discount", billHandler.SetDiscount)
	draft.Post("/finalize", billHandler.Finalize)

	// Bill history and invoice exports
	bills := protected.Group("/bills")
	bills.Get("/", billHandler.List)
	bills.Get("/:id", billHandler.GetByID)
	bills.Delete("/:id", RequireRole(entity.RoleAdmin), billHandler.Delete)
	bills.Get("/:id/pdf", billHandler.DownloadPDF)
	bills.Get("/:id/xml", billHandler.DownloadXML)
}
