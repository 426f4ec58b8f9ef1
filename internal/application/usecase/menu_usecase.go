package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/parrillafit-api/internal/application/ports"
	"github.com/jhoicas/parrillafit-api/internal/domain/entity"
	"github.com/jhoicas/parrillafit-api/internal/domain/repository"
)

// menuSectionTitles títulos impresos por categoría.
var menuSectionTitles = map[entity.Category]string{
	entity.CategoryStarter:  "Entradas",
	entity.CategoryMain:     "Platos principales",
	entity.CategoryDessert:  "Postres",
	entity.CategoryBeverage: "Bebidas",
}

// MenuUseCase arma el menú imprimible a partir de los platillos disponibles.
type MenuUseCase struct {
	dishes   repository.DishRepository
	renderer ports.MenuRenderer
	title    string
	now      func() time.Time
}

// NewMenuUseCase construye el caso de uso. title se imprime en la cabecera.
func NewMenuUseCase(dishes repository.DishRepository, renderer ports.MenuRenderer, title string) *MenuUseCase {
	return &MenuUseCase{dishes: dishes, renderer: renderer, title: title, now: time.Now}
}

// BuildMenu agrupa los platillos disponibles por categoría (orden fijo) y por nombre dentro de cada una.
// Los platillos sin categoría van al final en "Otros".
func (uc *MenuUseCase) BuildMenu(ctx context.Context) (ports.MenuDocument, error) {
	available := true
	dishes, err := uc.dishes.List(ctx, entity.DishFilter{Available: &available, Limit: 100})
	if err != nil {
		return ports.MenuDocument{}, err
	}

	byCategory := make(map[entity.Category][]*entity.Dish)
	for _, d := range dishes {
		byCategory[d.Category] = append(byCategory[d.Category], d)
	}
	doc := ports.MenuDocument{Title: uc.title, GeneratedAt: uc.now()}
	add := func(title string, list []*entity.Dish) {
		if len(list) == 0 {
			return
		}
		sort.SliceStable(list, func(i, j int) bool { return list[i].Name < list[j].Name })
		doc.Sections = append(doc.Sections, ports.MenuSection{Title: title, Dishes: list})
	}
	for _, c := range entity.Categories {
		add(menuSectionTitles[c], byCategory[c])
	}
	add("Otros", byCategory[""])
	return doc, nil
}

// PDF genera el menú en PDF.
func (uc *MenuUseCase) PDF(ctx context.Context) ([]byte, error) {
	doc, err := uc.BuildMenu(ctx)
	if err != nil {
		return nil, err
	}
	out, err := uc.renderer.RenderMenu(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("menú pdf: %w", err)
	}
	return out, nil
}
