package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/parrillafit-api/internal/application/dto"
	"github.com/jhoicas/parrillafit-api/internal/domain"
	"github.com/jhoicas/parrillafit-api/pkg/logger"
)

// errInvalidBody cuerpo que no se pudo decodificar.
var errInvalidBody = &domain.ValidationError{Reason: "cuerpo inválido"}

type errorMapping struct {
	target  error
	status  int
	code    string
	message string // vacío = usar err.Error()
}

// errorTable del más específico al más general; gana la primera coincidencia.
var errorTable = []errorMapping{
	{errInvalidBody, fiber.StatusBadRequest, "INVALID_BODY", ""},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", ""},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "credenciales inválidas"},
	{domain.ErrAccountGone, fiber.StatusUnauthorized, "ACCOUNT_GONE", ""},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "sesión requerida"},
	{domain.ErrSelfDelete, fiber.StatusForbidden, "SELF_DELETE", ""},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "acceso denegado"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND", ""},
	{domain.ErrDishNotFound, fiber.StatusNotFound, "DISH_NOT_FOUND", ""},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"},
	{domain.ErrPhoneAlreadyExists, fiber.StatusConflict, "PHONE_EXISTS", ""},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT", ""},
	{domain.ErrStoreUnavailable, fiber.StatusServiceUnavailable, "STORE_UNAVAILABLE", "record store no disponible, intente más tarde"},
}

func classify(err error) (errorMapping, bool) {
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			if m.message == "" {
				m.message = err.Error()
			}
			return m, true
		}
	}
	return errorMapping{}, false
}

// writeError traduce errores de dominio a respuesta HTTP. Lo que no es de dominio se devuelve
// tal cual para que ErrorHandler lo registre y responda 500.
func writeError(c *fiber.Ctx, err error) error {
	m, ok := classify(err)
	if !ok {
		return err
	}
	return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.message})
}

// ErrorHandler manejador final de Fiber: errores de Fiber conservan su status, el resto es 500 opaco.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")
	return func(c *fiber.Ctx, err error) error {
		if m, ok := classify(err); ok {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.message})
		}
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: fiberCode(fe.Code), Message: fe.Message})
		}
		log.Error().Err(err).
			Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error no controlado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	case fiber.StatusTooManyRequests:
		return "RATE_LIMITED"
	case fiber.StatusUnprocessableEntity, fiber.StatusBadRequest:
		return "INVALID_BODY"
	}
	if status >= 500 {
		return "INTERNAL"
	}
	return "ERROR"
}

func requestID(c *fiber.Ctx) string {
	if s, ok := c.Locals("requestid").(string); ok {
		return s
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
