package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/parrillafit-api/internal/application/dto"
	"github.com/jhoicas/parrillafit-api/internal/domain"
	"github.com/jhoicas/parrillafit-api/internal/domain/entity"
	"github.com/jhoicas/parrillafit-api/internal/domain/repository"
)

// UserUseCase administración de cuentas (solo admin; el router aplica RequireRole).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List lista cuentas filtrando por rol y texto (nombre o teléfono).
func (uc *UserUseCase) List(ctx context.Context, q dto.UserListQuery) ([]dto.UserResponse, error) {
	filter := entity.UserFilter{Query: strings.TrimSpace(q.Q), Limit: q.Limit}
	if s := strings.TrimSpace(q.Role); s != "" {
		role, ok := entity.LookupRole(s)
		if !ok {
			return nil, domain.Invalid("role", "debe ser user o admin")
		}
		filter.Role = &role
	}
	if filter.Limit < 0 {
		return nil, domain.Invalid("limit", "debe ser >= 0")
	}
	users, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.NewUserResponse(u))
	}
	return out, nil
}

// GetByID obtiene una cuenta; ErrUserNotFound si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.MeResponse, error) {
	user, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	out := dto.NewMeResponse(user)
	return &out, nil
}

// Delete borra una cuenta ajena. El admin no puede borrarse a sí mismo por aquí (ErrSelfDelete).
func (uc *UserUseCase) Delete(ctx context.Context, actorID, id string) error {
	if id == actorID {
		return domain.ErrSelfDelete
	}
	return uc.repo.Delete(ctx, id)
}

// UpdateRole cambia el rol de una cuenta. Solo acepta user|admin.
func (uc *UserUseCase) UpdateRole(ctx context.Context, id string, in dto.UpdateRoleRequest) (*dto.UserResponse, error) {
	role, ok := entity.LookupRole(in.Role)
	if !ok {
		return nil, domain.Invalid("role", "debe ser user o admin")
	}
	updated, err := uc.repo.Update(ctx, id, entity.UserPatch{Role: &role})
	if err != nil {
		return nil, err
	}
	out := dto.NewUserResponse(updated)
	return &out, nil
}
