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

var _ repository.DishRepository = (*DishRepo)(nil)

// DishRepo implementación del puerto DishRepository sobre la tabla de platillos.
type DishRepo struct {
	conn *Conn
}

// NewDishRepository construye el adaptador de persistencia para platillos.
func NewDishRepository(conn *Conn) *DishRepo {
	return &DishRepo{conn: conn}
}

func (r *DishRepo) client() (*Client, string, error) {
	cl, err := r.conn.Client()
	if err != nil {
		return nil, "", err
	}
	return cl, r.conn.Table(EntityDishes), nil
}

// DishFormula traduce los filtros del listado público a filterByFormula.
// Categoría y etiqueta aceptan también el nombre heredado, igual que decodeDish al leer.
func DishFormula(f entity.DishFilter) formula.Formula {
	var parts []formula.Formula
	if f.Category != nil {
		var alts []formula.Formula
		for _, name := range entity.CategoryNames(*f.Category) {
			alts = append(alts, formula.Eq(fieldDishCategory, name))
		}
		parts = append(parts, formula.Or(alts...))
	}
	if f.Tag != nil {
		var alts []formula.Formula
		for _, name := range entity.TagNames(*f.Tag) {
			alts = append(alts, formula.Member(fieldDishTags, name))
		}
		parts = append(parts, formula.Or(alts...))
	}
	if f.Available != nil {
		parts = append(parts, formula.Flag(fieldDishAvailable, *f.Available))
	}
	parts = append(parts, formula.Search(f.Query, fieldDishName, fieldDishDescription))
	return formula.And(parts...)
}

// FindByID obtiene un platillo; (nil, nil) si no existe.
func (r *DishRepo) FindByID(ctx context.Context, id string) (*entity.Dish, error) {
	cl, table, err := r.client()
	if err != nil {
		return nil, err
	}
	rec, err := cl.Find(ctx, table, id)
	if errors.Is(err, ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get dish by id: %w", err)
	}
	return decodeDish(rec)
}

// List lista platillos aplicando los filtros opcionales.
func (r *DishRepo) List(ctx context.Context, filter entity.DishFilter) ([]*entity.Dish, error) {
	cl, table, err := r.client()
	if err != nil {
		return nil, err
	}
	recs, err := cl.List(ctx, table, ListParams{
		Formula: DishFormula(filter),
		Limit:   filter.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list dishes: %w", err)
	}
	out := make([]*entity.Dish, 0, len(recs))
	for i := range recs {
		d, err := decodeDish(&recs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Create persiste un platillo.
func (r *DishRepo) Create(ctx context.Context, dish *entity.Dish) (*entity.Dish, error) {
	cl, table, err := r.client()
	if err != nil {
		return nil, err
	}
	rec, err := cl.Create(ctx, table, encodeDish(dish))
	if err != nil {
		return nil, fmt.Errorf("insert dish: %w", err)
	}
	return decodeDish(rec)
}

// Update escribe solo los campos presentes en el patch.
func (r *DishRepo) Update(ctx context.Context, id string, patch entity.DishPatch) (*entity.Dish, error) {
	if patch.Empty() {
		d, err := r.FindByID(ctx, id)
		if err == nil && d == nil {
			return nil, domain.ErrDishNotFound
		}
		return d, err
	}
	cl, table, err := r.client()
	if err != nil {
		return nil, err
	}
	rec, err := cl.Update(ctx, table, id, encodeDishPatch(patch))
	if errors.Is(err, ErrRecordNotFound) {
		return nil, domain.ErrDishNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update dish: %w", err)
	}
	return decodeDish(rec)
}

// Delete elimina un platillo.
func (r *DishRepo) Delete(ctx context.Context, id string) error {
	cl, table, err := r.client()
	if err != nil {
		return err
	}
	err = cl.Delete(ctx, table, id)
	if errors.Is(err, ErrRecordNotFound) {
		return domain.ErrDishNotFound
	}
	if err != nil {
		return fmt.Errorf("delete dish: %w", err)
	}
	return nil
}
