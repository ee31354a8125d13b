package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/application/usecase"
)

// CustomerHandler perfil del cliente autenticado.
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler construye el handler inyectando el caso de uso.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Me godoc
// @Summary      Perfil del cliente actual
// @Description  Cliente resuelto a partir de la aserción del proveedor de identidad.
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.CustomerResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/customers/me [get]
func (h *CustomerHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Profile(c.UserContext(), GetCustomer(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
