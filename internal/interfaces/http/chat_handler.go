package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/parrillafit-api/internal/application/dto"
	"github.com/jhoicas/parrillafit-api/internal/application/usecase"
)

// ChatHandler asistente de recomendaciones.
type ChatHandler struct {
	uc *usecase.ChatUseCase
}

func NewChatHandler(uc *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

// Reply godoc
// @Summary      Recomendación del asistente
// @Description  Público. Con sesión usa las preferencias del usuario. Nunca falla por el proveedor: responde un texto por defecto.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatRequest  true  "mensaje"
// @Success      200   {object}  dto.ChatResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/chat [post]
func (h *ChatHandler) Reply(c *fiber.Ctx) error {
	var in dto.ChatRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.uc.Reply(c.UserContext(), GetUserID(c), in))
}
