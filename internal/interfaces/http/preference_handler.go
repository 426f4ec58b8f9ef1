package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/parrillafit-api/internal/application/dto"
	"github.com/jhoicas/parrillafit-api/internal/application/usecase"
)

// PreferenceHandler preferencias del usuario autenticado.
type PreferenceHandler struct {
	uc *usecase.PreferencesUseCase
}

// NewPreferenceHandler construye el handler.
func NewPreferenceHandler(uc *usecase.PreferencesUseCase) *PreferenceHandler {
	return &PreferenceHandler{uc: uc}
}

// target "me" o el :recordId de la ruta heredada (solo el propio).
func target(c *fiber.Ctx) string {
	if id := c.Params("recordId"); id != "" {
		return id
	}
	return GetUserID(c)
}

// Get godoc
// @Summary      Preferencias propias
// @Tags         preferences
// @Produce      json
// @Success      200   {object}  dto.PreferencesResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/preferences/me [get]
func (h *PreferenceHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetUserID(c), target(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar preferencias propias
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdatePreferencesRequest  true  "likes, dislikes, allergies"
// @Success      200   {object}  dto.PreferencesResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/preferences/me [put]
func (h *PreferenceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePreferencesRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), target(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
