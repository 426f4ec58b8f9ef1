package dto

// RegisterRequest entrada para registro: el teléfono se normaliza a dígitos en el use case.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Phone    string `json:"phone" validate:"required,max=32"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password hash).
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// MeResponse usuario autenticado con sus preferencias.
type MeResponse struct {
	UserResponse
	PreferencesResponse
}

// LoginResponse token emitido y usuario. ExpiresIn en segundos (Max-Age de la cookie).
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expiresIn"`
	User      UserResponse `json:"user"`
}

// ChangePasswordRequest cambio de contraseña del usuario autenticado.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72"`
}

// DeleteAccountRequest confirmación para borrar la propia cuenta.
type DeleteAccountRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
}

// UserListQuery filtros del listado de administración.
type UserListQuery struct {
	Role  string `query:"role"`
	Q     string `query:"q"`
	Limit int    `query:"limit" validate:"min=0"`
}

// UpdateRoleRequest cambio de rol por un admin. El valor se valida contra el enum en el use case.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}
