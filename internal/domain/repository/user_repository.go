package repository

import (
	"context"

	"github.com/jhoicas/parrillafit-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// FindByID y FindByPhone devuelven (nil, nil) si no existe; error solo ante fallas del store.
// Update y Delete devuelven domain.ErrNotFound si el id no existe.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByPhone(ctx context.Context, phone string) (*entity.User, error)
	List(ctx context.Context, filter entity.UserFilter) ([]*entity.User, error)
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error)
	Delete(ctx context.Context, id string) error
}
