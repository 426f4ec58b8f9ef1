package repository

import (
	"context"

	"github.com/jhoicas/parrillafit-api/internal/domain/entity"
)

// DishRepository define el puerto de persistencia para Dish (DIP).
type DishRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Dish, error)
	List(ctx context.Context, filter entity.DishFilter) ([]*entity.Dish, error)
	Create(ctx context.Context, dish *entity.Dish) (*entity.Dish, error)
	Update(ctx context.Context, id string, patch entity.DishPatch) (*entity.Dish, error)
	Delete(ctx context.Context, id string) error
}
