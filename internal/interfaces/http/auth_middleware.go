package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/parrillafit-api/internal/application/dto"
	"github.com/jhoicas/parrillafit-api/internal/domain/entity"
	"github.com/jhoicas/parrillafit-api/pkg/jwt"
)

// Locals keys para la identidad autenticada en Fiber.
const (
	LocalUserID   = "user_id"
	LocalRole     = "role"
	LocalUserName = "user_name"
)

// TokenVerifier lo implementa *jwt.Service.
type TokenVerifier interface {
	Verify(token string) (*jwt.Identity, error)
}

// extractToken lee el token de la cookie de sesión o del header Authorization.
// La cookie tiene precedencia: si llegan ambos se ignora el header.
// malformed=true si solo hay header y no tiene la forma "Bearer <token>".
func extractToken(c *fiber.Ctx, cookieName string) (token string, malformed bool) {
	if cookieName != "" {
		if v := strings.TrimSpace(c.Cookies(cookieName)); v != "" {
			return v, false
		}
	}
	authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", true
	}
	return strings.TrimSpace(parts[1]), false
}

// bind guarda la identidad con el rol normalizado (desconocido -> user).
func bind(c *fiber.Ctx, id *jwt.Identity) {
	c.Locals(LocalUserID, id.UserID)
	c.Locals(LocalRole, entity.ParseRole(id.Role))
	c.Locals(LocalUserName, id.Name)
}

// AuthMiddleware valida el token de sesión (cookie o Bearer) y carga la identidad en c.Locals.
// Sin token o con token inválido responde 401 y no invoca al handler.
func AuthMiddleware(tokens TokenVerifier, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, malformed := extractToken(c, cookieName)
		if malformed {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "sesión requerida"})
		}
		id, err := tokens.Verify(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		bind(c, id)
		return c.Next()
	}
}

// OptionalAuth carga la identidad si hay un token válido; si no, sigue como anónimo.
func OptionalAuth(tokens TokenVerifier, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token, _ := extractToken(c, cookieName); token != "" {
			if id, err := tokens.Verify(token); err == nil {
				bind(c, id)
			}
		}
		return c.Next()
	}
}

// RequireRole autoriza solo si el rol del token está entre los permitidos.
// Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 Unauthorized → no hay identidad en el contexto.
//   - 403 Forbidden    → identidad válida con un rol distinto.
func RequireRole(roles ...entity.Role) fiber.Handler {
	allowed := make(map[entity.Role]bool, len(roles))
	for _, r := range roles {
		allowed[entity.ParseRole(string(r))] = true
	}
	return func(c *fiber.Ctx) error {
		if GetUserID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
		}
		if !allowed[GetRole(c)] {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "permisos insuficientes"})
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol normalizado; sin identidad devuelve RoleUser.
func GetRole(c *fiber.Ctx) entity.Role {
	if r, ok := c.Locals(LocalRole).(entity.Role); ok {
		return r
	}
	return entity.RoleUser
}
