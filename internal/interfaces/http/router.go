package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/storefront-api/internal/application/authentication"
	"github.com/jhoicas/storefront-api/internal/application/usecase"
	"github.com/jhoicas/storefront-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName    string
	Verifier   authentication.AssertionVerifier
	Reconciler *authentication.Reconciler
	Sessions   *authentication.SessionService
	CustomerUC *usecase.CustomerUseCase
	Logger     *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	app.Get("/swagger/doc.json", SwaggerDoc)

	// Toda la API pasa por la reconciliación de identidad; la aserción es opcional.
	api := app.Group("/api", IdentityMiddleware(deps.Verifier, deps.Reconciler, deps.Logger))

	authHandler := NewAuthHandler(deps.Sessions)
	authGroup := api.Group("/auth")
	authGroup.Post("/signin", RequireCustomer(), authHandler.SignIn)
	authGroup.Get("/session", authHandler.Session)
	authGroup.Post("/signout", authHandler.SignOut)

	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := api.Group("/customers", RequireCustomer())
	customers.Get("/me", customerHandler.Me)
}
