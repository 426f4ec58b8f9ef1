package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/parrillafit-api/internal/application/dto"
)

// StoreProbe lo implementa *airtable.Conn.
type StoreProbe interface {
	Ready() bool
}

// HealthHandler liveness y readiness del record store.
type HealthHandler struct {
	service string
	store   StoreProbe
}

func NewHealthHandler(service string, store StoreProbe) *HealthHandler {
	return &HealthHandler{service: service, store: store}
}

// Live godoc
// @Summary      Liveness
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "service": h.service})
}

// Store godoc
// @Summary      Readiness del record store
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /health/store [get]
func (h *HealthHandler) Store(c *fiber.Ctx) error {
	if h.store == nil || !h.store.Ready() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORE_UNAVAILABLE", Message: "record store no configurado"})
	}
	return c.JSON(fiber.Map{"store": "ready"})
}
