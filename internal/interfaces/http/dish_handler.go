package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/parrillafit-api/internal/application/dto"
	"github.com/jhoicas/parrillafit-api/internal/application/usecase"
)

// DishHandler maneja el menú.
type DishHandler struct {
	uc *usecase.DishUseCase
}

// NewDishHandler construye el handler de platillos.
func NewDishHandler(uc *usecase.DishUseCase) *DishHandler {
	return &DishHandler{uc: uc}
}

// List godoc
// @Summary      Listar platillos
// @Tags         dishes
// @Produce      json
// @Param        category   query  string  false  "Starter|Main|Dessert|Beverage"
// @Param        tag        query  string  false  "Light|Gluten-Free|Dairy-Free|Spicy|Vegetarian"
// @Param        available  query  bool    false  "disponibilidad"
// @Param        q          query  string  false  "búsqueda en nombre y descripción"
// @Param        limit      query  int     false  "1-100 (default 50)"
// @Success      200   {array}   dto.DishResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/dishes [get]
func (h *DishHandler) List(c *fiber.Ctx) error {
	var q dto.DishListQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener platillo
// @Tags         dishes
// @Produce      json
// @Param        id   path  string  true  "record id"
// @Success      200   {object}  dto.DishResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/dishes/{id} [get]
func (h *DishHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear platillo (admin)
// @Tags         dishes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDishRequest  true  "platillo"
// @Success      201   {object}  dto.DishResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/dishes [post]
func (h *DishHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDishRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar platillo (admin, parcial)
// @Tags         dishes
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "record id"
// @Param        body  body  dto.UpdateDishRequest  true  "campos a modificar"
// @Success      200   {object}  dto.DishResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/dishes/{id} [patch]
func (h *DishHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDishRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar platillo (admin)
// @Tags         dishes
// @Param        id   path  string  true  "record id"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/dishes/{id} [delete]
func (h *DishHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
