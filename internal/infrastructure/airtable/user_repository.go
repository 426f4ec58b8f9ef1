package airtable

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/parrillafit-api/internal/domain"
	"github.com/jhoicas/parrillafit-api/internal/domain/entity"
	"github.com/jhoicas/parrillafit-api/internal/domain/repository"
	"github.com/jhoicas/parrillafit-api/internal/infrastructure/airtable/formula"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre la tabla Users.
type UserRepo struct {
	conn *Conn
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(conn *Conn) *UserRepo {
	return &UserRepo{conn: conn}
}

func (r *UserRepo) client() (*Client, string, error) {
	cl, err := r.conn.Client()
	if err != nil {
		return nil, "", err
	}
	return cl, r.conn.Table(EntityUsers), nil
}

// FindByID obtiene un usuario por id; (nil, nil) si no existe.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	cl, table, err := r.client()
	if err != nil {
		return nil, err
	}
	rec, err := cl.Find(ctx, table, id)
	if errors.Is(err, ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return decodeUser(rec)
}

// FindByPhone busca por teléfono normalizado; (nil, nil) si no existe.
func (r *UserRepo) FindByPhone(ctx context.Context, phone string) (*entity.User, error) {
	cl, table, err := r.client()
	if err != nil {
		return nil, err
	}
	recs, err := cl.List(ctx, table, ListParams{
		Formula: formula.Eq(fieldUserPhone, entity.NormalizePhone(phone)),
		Limit:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("get user by phone: %w", err)
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return decodeUser(&recs[0])
}

// List lista usuarios filtrando por rol y búsqueda en nombre/teléfono.
func (r *UserRepo) List(ctx context.Context, filter entity.UserFilter) ([]*entity.User, error) {
	cl, table, err := r.client()
	if err != nil {
		return nil, err
	}
	var parts []formula.Formula
	if filter.Role != nil {
		// Filas sin rol cuentan como "user"
		if *filter.Role == entity.RoleUser {
			parts = append(parts, formula.Or(formula.Eq(fieldUserRole, string(entity.RoleUser)), formula.Blank(fieldUserRole)))
		} else {
			parts = append(parts, formula.Eq(fieldUserRole, string(*filter.Role)))
		}
	}
	parts = append(parts, formula.Search(filter.Query, fieldUserName, fieldUserPhone))

	recs, err := cl.List(ctx, table, ListParams{
		Formula: formula.And(parts...),
		Limit:   filter.Limit,
		Sort:    []Sort{{Field: fieldUserName}},
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]*entity.User, 0, len(recs))
	for i := range recs {
		u, err := decodeUser(&recs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

// Create persiste un nuevo usuario. La unicidad del teléfono la verifica el caso de uso antes.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	cl, table, err := r.client()
	if err != nil {
		return nil, err
	}
	rec, err := cl.Create(ctx, table, encodeUser(user))
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return decodeUser(rec)
}

// Update escribe solo los campos presentes en el patch.
func (r *UserRepo) Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	if patch.Empty() {
		u, err := r.FindByID(ctx, id)
		if err == nil && u == nil {
			return nil, domain.ErrUserNotFound
		}
		return u, err
	}
	cl, table, err := r.client()
	if err != nil {
		return nil, err
	}
	rec, err := cl.Update(ctx, table, id, encodeUserPatch(patch))
	if errors.Is(err, ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return decodeUser(rec)
}

// Delete elimina un usuario por id.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	cl, table, err := r.client()
	if err != nil {
		return err
	}
	err = cl.Delete(ctx, table, id)
	if errors.Is(err, ErrRecordNotFound) {
		return domain.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
