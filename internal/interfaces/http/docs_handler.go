package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/swaggo/swag"

	// Registra la especificación OpenAPI generada por swag.
	_ "github.com/jhoicas/storefront-api/docs"
	"github.com/jhoicas/storefront-api/internal/application/dto"
)

// SwaggerDoc sirve la especificación OpenAPI registrada por el paquete docs.
func SwaggerDoc(c *fiber.Ctx) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.SendString(doc)
}
