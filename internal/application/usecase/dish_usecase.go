package usecase

import (
	"context"
	"strconv"
	"strings"

	"github.com/jhoicas/parrillafit-api/internal/application/dto"
	"github.com/jhoicas/parrillafit-api/internal/domain"
	"github.com/jhoicas/parrillafit-api/internal/domain/entity"
	"github.com/jhoicas/parrillafit-api/internal/domain/repository"
)

// DishUseCase casos de uso del menú. Lectura pública; las escrituras las protege el router (admin).
type DishUseCase struct {
	repo repository.DishRepository
}

// NewDishUseCase construye el caso de uso.
func NewDishUseCase(repo repository.DishRepository) *DishUseCase {
	return &DishUseCase{repo: repo}
}

// ParseDishFilter traduce los query params del listado. Valores de catálogo desconocidos son entrada inválida.
func ParseDishFilter(q dto.DishListQuery) (entity.DishFilter, error) {
	f := entity.DishFilter{Query: strings.TrimSpace(q.Q), Limit: q.Limit}
	if s := strings.TrimSpace(q.Category); s != "" {
		c, ok := entity.ParseCategory(s)
		if !ok {
			return f, domain.Invalid("category", "categoría desconocida: "+s)
		}
		f.Category = &c
	}
	if s := strings.TrimSpace(q.Tag); s != "" {
		t, ok := entity.ParseTag(s)
		if !ok {
			return f, domain.Invalid("tag", "etiqueta desconocida: "+s)
		}
		f.Tag = &t
	}
	if s := strings.TrimSpace(q.Available); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return f, domain.Invalid("available", "debe ser true o false")
		}
		f.Available = &b
	}
	if f.Limit < 0 {
		return f, domain.Invalid("limit", "debe ser >= 0")
	}
	return f, nil
}

// List lista platillos con los filtros opcionales.
func (uc *DishUseCase) List(ctx context.Context, q dto.DishListQuery) ([]dto.DishResponse, error) {
	filter, err := ParseDishFilter(q)
	if err != nil {
		return nil, err
	}
	dishes, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewDishList(dishes), nil
}

// GetByID obtiene un platillo; ErrDishNotFound si no existe.
func (uc *DishUseCase) GetByID(ctx context.Context, id string) (*dto.DishResponse, error) {
	dish, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dish == nil {
		return nil, domain.ErrDishNotFound
	}
	out := dto.NewDishResponse(dish)
	return &out, nil
}

// Create da de alta un platillo. Available ausente queda en false, igual que un checkbox vacío.
func (uc *DishUseCase) Create(ctx context.Context, in dto.CreateDishRequest) (*dto.DishResponse, error) {
	category, _ := entity.ParseCategory(in.Category)
	tags, err := parseTags(in.Tags)
	if err != nil {
		return nil, err
	}
	dish := &entity.Dish{
		Name:        strings.TrimSpace(in.Name),
		Category:    category,
		Price:       in.Price,
		Available:   in.Available != nil && *in.Available,
		Description: strings.TrimSpace(in.Description),
		Calories:    in.Calories,
		Image:       attachment(in.Image, in.ImageURL),
		Tags:        tags,
	}
	if err := dish.Validate(); err != nil {
		return nil, err
	}
	created, err := uc.repo.Create(ctx, dish)
	if err != nil {
		return nil, err
	}
	out := dto.NewDishResponse(created)
	return &out, nil
}

// Update aplica solo los campos enviados.
func (uc *DishUseCase) Update(ctx context.Context, id string, in dto.UpdateDishRequest) (*dto.DishResponse, error) {
	patch := entity.DishPatch{
		Price:      in.Price,
		Available:  in.Available,
		Calories:   in.Calories,
		ClearImage: in.ClearImage,
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		patch.Name = &name
	}
	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		patch.Description = &desc
	}
	if in.Category != nil {
		c, ok := entity.ParseCategory(*in.Category)
		if !ok {
			return nil, domain.Invalid("category", "categoría desconocida: "+*in.Category)
		}
		patch.Category = &c
	}
	if in.Tags != nil {
		tags, err := parseTags(*in.Tags)
		if err != nil {
			return nil, err
		}
		patch.Tags = &tags
	}
	imageURL := ""
	if in.ImageURL != nil {
		imageURL = *in.ImageURL
	}
	patch.Image = attachment(in.Image, imageURL)
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	out := dto.NewDishResponse(updated)
	return &out, nil
}

// Delete borra un platillo; ErrDishNotFound si no existe.
func (uc *DishUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// parseTags resuelve y deduplica etiquetas manteniendo el orden de entrada.
func parseTags(raw []string) ([]entity.Tag, error) {
	out := make([]entity.Tag, 0, len(raw))
	seen := make(map[entity.Tag]bool, len(raw))
	for _, s := range raw {
		t, ok := entity.ParseTag(s)
		if !ok {
			return nil, domain.Invalid("tags", "etiqueta desconocida: "+s)
		}
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out, nil
}

// attachment acepta el objeto image o el atajo imageUrl; el objeto gana.
func attachment(img *dto.AttachmentDTO, url string) *entity.Attachment {
	if img != nil {
		return &entity.Attachment{URL: strings.TrimSpace(img.URL), Filename: img.Filename}
	}
	if url = strings.TrimSpace(url); url != "" {
		return &entity.Attachment{URL: url}
	}
	return nil
}
