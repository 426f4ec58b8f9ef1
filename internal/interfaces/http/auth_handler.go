package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/parrillafit-api/internal/application/auth"
	"github.com/jhoicas/parrillafit-api/internal/application/dto"
)

// CookieSettings contrato de la cookie de sesión.
// CrossSite=true emite SameSite=None (exige Secure); si no, SameSite=Lax.
type CookieSettings struct {
	Name      string
	CrossSite bool
	Secure    bool
}

// AuthHandler maneja registro, login y la cuenta propia.
type AuthHandler struct {
	uc     *auth.AuthUseCase
	cookie CookieSettings
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookie CookieSettings) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "pf_auth"
	}
	return &AuthHandler{uc: uc, cookie: cookie}
}

func (h *AuthHandler) sessionCookie(value string, maxAge time.Duration) *fiber.Cookie {
	ck := &fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		MaxAge:   int(maxAge.Seconds()),
	}
	if h.cookie.CrossSite {
		ck.SameSite = fiber.CookieSameSiteNoneMode
		ck.Secure = true
	}
	if value == "" {
		// Expiración en el pasado: el navegador la borra.
		ck.MaxAge = -1
		ck.Expires = time.Unix(0, 0)
	}
	return ck
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "name, phone, password"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	user, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "phone, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	c.Cookie(h.sessionCookie(out.Token, h.uc.TokenTTL()))
	return c.JSON(out)
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         auth
// @Produce      json
// @Success      200   {object}  dto.MeResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangePassword godoc
// @Summary      Cambiar contraseña
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "currentPassword, newPassword"
// @Success      200   {object}  dto.OKResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/password [put]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	if err := h.uc.ChangePassword(c.UserContext(), GetUserID(c), in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OKResponse{OK: true})
}

// DeleteMe godoc
// @Summary      Eliminar la propia cuenta
// @Tags         auth
// @Accept       json
// @Param        body  body  dto.DeleteAccountRequest  true  "currentPassword"
// @Success      204
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/me [delete]
func (h *AuthHandler) DeleteMe(c *fiber.Ctx) error {
	var in dto.DeleteAccountRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	if err := h.uc.DeleteAccount(c.UserContext(), GetUserID(c), in); err != nil {
		return writeError(c, err)
	}
	c.Cookie(h.sessionCookie("", 0))
	return c.SendStatus(fiber.StatusNoContent)
}

// Logout godoc
// @Summary      Cerrar sesión (borra la cookie)
// @Tags         auth
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(h.sessionCookie("", 0))
	return c.SendStatus(fiber.StatusNoContent)
}
