package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/parrillafit-api/internal/application/usecase"
)

// MenuHandler carta imprimible.
type MenuHandler struct {
	uc *usecase.MenuUseCase
}

func NewMenuHandler(uc *usecase.MenuUseCase) *MenuHandler {
	return &MenuHandler{uc: uc}
}

// PDF godoc
// @Summary      Carta en PDF (platillos disponibles)
// @Tags         menu
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/menu.pdf [get]
func (h *MenuHandler) PDF(c *fiber.Ctx) error {
	pdf, err := h.uc.PDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="menu.pdf"`)
	return c.Send(pdf)
}
