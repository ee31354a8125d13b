package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/storefront-api/internal/application/authentication"
	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/pkg/logger"
)

// Locals keys para el scope de identidad y el cliente resuelto.
const (
	LocalScope    = "identity_scope"
	LocalCustomer = "customer"
)

// IdentityMiddleware resuelve el cliente de la petición a partir de la aserción del proveedor
// de identidad (Authorization: Bearer). Sin cabecera la petición sigue como anónima.
func IdentityMiddleware(verifier authentication.AssertionVerifier, reconciler *authentication.Reconciler, log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		scope := authentication.NewScope()
		c.Locals(LocalScope, scope)

		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Next()
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_ASSERTION", Message: "formato: Bearer <token>"})
		}

		assertion, err := verifier.Verify(c.UserContext(), strings.TrimSpace(parts[1]))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_ASSERTION", Message: "aserción de identidad inválida o expirada"})
		}

		customer, err := reconciler.Resolve(c.UserContext(), scope, assertion)
		if err != nil {
			if errors.Is(err, domain.ErrRegisteredRoleMissing) {
				return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "CONFIGURATION", Message: err.Error()})
			}
			log.Error().Err(err).Str("path", c.Path()).Msg("reconciliar identidad")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo resolver el cliente"})
		}
		if customer != nil {
			c.Locals(LocalCustomer, customer)
		}
		return c.Next()
	}
}

// RequireCustomer exige un cliente resuelto que pueda autenticarse (activo, no eliminado, registrado).
func RequireCustomer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		customer := GetCustomer(c)
		if customer == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "se requiere una aserción de identidad"})
		}
		if !customer.CanAuthenticate() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "cliente inactivo, eliminado o no registrado"})
		}
		return c.Next()
	}
}

// GetCustomer devuelve el cliente resuelto o nil si la petición es anónima.
func GetCustomer(c *fiber.Ctx) *entity.Customer {
	v, _ := c.Locals(LocalCustomer).(*entity.Customer)
	return v
}

// GetScope devuelve el scope de identidad de la petición (nil fuera de IdentityMiddleware).
func GetScope(c *fiber.Ctx) *authentication.Scope {
	v, _ := c.Locals(LocalScope).(*authentication.Scope)
	return v
}
