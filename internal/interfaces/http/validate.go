package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/parrillafit-api/internal/domain"
	"github.com/jhoicas/parrillafit-api/internal/domain/entity"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los errores usan el nombre JSON del campo.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	_ = v.RegisterValidation("dish_category", func(fl validator.FieldLevel) bool {
		_, ok := entity.ParseCategory(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("dish_tag", func(fl validator.FieldLevel) bool {
		_, ok := entity.ParseTag(fl.Field().String())
		return ok
	})
	return v
}

// bindJSON decodifica y valida el cuerpo.
func bindJSON(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	return validateStruct(out)
}

// bindQuery decodifica y valida los query params.
func bindQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return domain.Invalid("query", "parámetros inválidos")
	}
	return validateStruct(out)
}

func validateStruct(out any) error {
	err := validate.Struct(out)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return domain.Invalid(fieldPath(verrs[0]), reason(verrs[0]))
	}
	return domain.Invalid("", err.Error())
}

// fieldPath quita el nombre del struct raíz: "RegisterRequest.phone" -> "phone".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "min":
		return "mínimo " + fe.Param()
	case "max":
		return "máximo " + fe.Param()
	case "url":
		return "debe ser una URL"
	case "dish_category":
		return "debe ser Starter, Main, Dessert o Beverage"
	case "dish_tag":
		return "etiqueta desconocida"
	}
	return "inválido (" + fe.Tag() + ")"
}
