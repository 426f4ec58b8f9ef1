// Package mocks dobles de testify/mock para los puertos de repositorio.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/parrillafit-api/internal/domain/entity"
	"github.com/jhoicas/parrillafit-api/internal/domain/repository"
)

var (
	_ repository.UserRepository = (*UserRepository)(nil)
	_ repository.DishRepository = (*DishRepository)(nil)
)

// UserRepository implementa repository.UserRepository para tests.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *UserRepository) FindByPhone(ctx context.Context, phone string) (*entity.User, error) {
	args := m.Called(ctx, phone)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *UserRepository) List(ctx context.Context, filter entity.UserFilter) ([]*entity.User, error) {
	args := m.Called(ctx, filter)
	users, _ := args.Get(0).([]*entity.User)
	return users, args.Error(1)
}

func (m *UserRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	args := m.Called(ctx, user)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	args := m.Called(ctx, id, patch)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *UserRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// DishRepository implementa repository.DishRepository para tests.
type DishRepository struct {
	mock.Mock
}

func (m *DishRepository) FindByID(ctx context.Context, id string) (*entity.Dish, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*entity.Dish)
	return d, args.Error(1)
}

func (m *DishRepository) List(ctx context.Context, filter entity.DishFilter) ([]*entity.Dish, error) {
	args := m.Called(ctx, filter)
	dishes, _ := args.Get(0).([]*entity.Dish)
	return dishes, args.Error(1)
}

func (m *DishRepository) Create(ctx context.Context, dish *entity.Dish) (*entity.Dish, error) {
	args := m.Called(ctx, dish)
	d, _ := args.Get(0).(*entity.Dish)
	return d, args.Error(1)
}

func (m *DishRepository) Update(ctx context.Context, id string, patch entity.DishPatch) (*entity.Dish, error) {
	args := m.Called(ctx, id, patch)
	d, _ := args.Get(0).(*entity.Dish)
	return d, args.Error(1)
}

func (m *DishRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
