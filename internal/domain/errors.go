package domain

import "errors"

// Errores de dominio (sin dependencias externas). La capa HTTP los traduce a status codes
// comparando con errors.Is contra las clases base.
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrUnauthorized     = errors.New("no autenticado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrStoreUnavailable = errors.New("record store no disponible")

	ErrUserNotFound       error = &kindError{msg: "usuario no encontrado", kind: ErrNotFound}
	ErrDishNotFound       error = &kindError{msg: "platillo no encontrado", kind: ErrNotFound}
	ErrPhoneAlreadyExists error = &kindError{msg: "el teléfono ya está registrado", kind: ErrConflict}
	ErrInvalidCredentials error = &kindError{msg: "credenciales inválidas", kind: ErrUnauthorized}
	ErrAccountGone        error = &kindError{msg: "la cuenta de la sesión ya no existe", kind: ErrUnauthorized}
	ErrSelfDelete         error = &kindError{msg: "un admin no puede eliminar su propia cuenta por esta ruta", kind: ErrForbidden}
)

// kindError error específico que pertenece a una clase base (Unwrap).
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// ValidationError error de entrada con detalle legible; errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Invalid construye un ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
