package entity

import "strings"

// Role rol de un usuario. Solo existen dos valores; cualquier otro se degrada a RoleUser.
type Role string

// Roles válidos para User.
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole normaliza un rol leído de una fuente no confiable (token, record store).
// Comparación case-insensitive; desconocido o vacío -> RoleUser, nunca RoleAdmin.
func ParseRole(s string) Role {
	if strings.EqualFold(strings.TrimSpace(s), string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleUser
}

// LookupRole valida un rol de entrada explícita (p.ej. PATCH de admin): ok=false si no es admin|user.
func LookupRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleAdmin):
		return RoleAdmin, true
	case string(RoleUser):
		return RoleUser, true
	}
	return "", false
}

// User representa una cuenta. El ID lo asigna el record store.
type User struct {
	ID           string
	Name         string
	Phone        string // solo dígitos; identificador de login
	PasswordHash string // bcrypt; nunca sale del backend
	Role         Role
	Preferences
}

// IsAdmin indica si el usuario tiene rol admin.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserPatch actualización parcial: solo los campos no nil se escriben.
type UserPatch struct {
	Name         *string
	Phone        *string
	PasswordHash *string
	Role         *Role
	Preferences  *Preferences
}

// Empty indica que no hay nada que escribir.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Phone == nil && p.PasswordHash == nil && p.Role == nil && p.Preferences == nil
}

// NormalizePhone deja solo dígitos ("+52 (555) 123-4567" -> "525551234567").
func NormalizePhone(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// UserFilter filtros del listado de administración.
type UserFilter struct {
	Role  *Role
	Query string // busca en nombre y teléfono
	Limit int
}
