package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/storefront-api/internal/application/authentication"
	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/domain"
)

// HeaderSessionToken cabecera con el token de sesión emitido por SignIn.
const HeaderSessionToken = "X-Session-Token"

// AuthHandler sesiones del storefront sobre el cliente ya reconciliado.
type AuthHandler struct {
	sessions *authentication.SessionService
}

// NewAuthHandler construye el handler de sesiones.
func NewAuthHandler(sessions *authentication.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// SignIn godoc
// @Summary      Iniciar sesión
// @Description  Emite un token de sesión para el cliente de la aserción. persistent elige la vigencia larga.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SignInRequest  false  "Opciones de sesión"
// @Success      200   {object}  dto.SessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/signin [post]
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var in dto.SignInRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.sessions.SignIn(c.UserContext(), GetCustomer(c), in.Persistent)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el cliente no puede iniciar sesión"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Session godoc
// @Summary      Validar sesión
// @Tags         auth
// @Produce      json
// @Param        X-Session-Token  header  string  true  "Token de sesión"
// @Success      200  {object}  authentication.Session
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	token := c.Get(HeaderSessionToken)
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SESSION_TOKEN", Message: HeaderSessionToken + " requerido"})
	}
	sess, err := h.sessions.Validate(c.UserContext(), token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrSessionNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SESSION", Message: "sesión inválida, expirada o revocada"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "cliente inactivo o eliminado; sesión revocada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(sess)
}

// SignOut godoc
// @Summary      Cerrar sesión
// @Description  Revoca la sesión y olvida el cliente resuelto en esta petición.
// @Tags         auth
// @Param        X-Session-Token  header  string  true  "Token de sesión"
// @Success      204
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/signout [post]
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	token := c.Get(HeaderSessionToken)
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SESSION_TOKEN", Message: HeaderSessionToken + " requerido"})
	}
	if err := h.sessions.SignOut(c.UserContext(), token); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SESSION", Message: "token de sesión inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	GetScope(c).Forget()
	c.Locals(LocalCustomer, nil)
	return c.SendStatus(fiber.StatusNoContent)
}
