package entity

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/parrillafit-api/internal/domain"
)

// Category categoría del menú (catálogo cerrado).
type Category string

const (
	CategoryStarter  Category = "Starter"
	CategoryMain     Category = "Main"
	CategoryDessert  Category = "Dessert"
	CategoryBeverage Category = "Beverage"
)

// Categories orden de presentación del menú.
var Categories = []Category{CategoryStarter, CategoryMain, CategoryDessert, CategoryBeverage}

// Tag etiqueta dietética (catálogo cerrado).
type Tag string

const (
	TagLight      Tag = "Light"
	TagGlutenFree Tag = "Gluten-Free"
	TagDairyFree  Tag = "Dairy-Free"
	TagSpicy      Tag = "Spicy"
	TagVegetarian Tag = "Vegetarian"
)

// Tags catálogo completo de etiquetas.
var Tags = []Tag{TagLight, TagGlutenFree, TagDairyFree, TagSpicy, TagVegetarian}

// Nombres con que la base original guarda cada valor; las filas heredadas los conservan.
var (
	legacyCategoryNames = map[Category]string{
		CategoryStarter:  "Entrada",
		CategoryMain:     "Plato principal",
		CategoryDessert:  "Postre",
		CategoryBeverage: "Bebida",
	}
	legacyTagNames = map[Tag]string{
		TagGlutenFree: "Sin gluten",
		TagDairyFree:  "Sin lactosa",
		TagSpicy:      "Picante",
		TagVegetarian: "Vegetariano",
	}
)

// ParseCategory resuelve una categoría (case-insensitive, acepta el nombre en español).
func ParseCategory(s string) (Category, bool) {
	key := strings.TrimSpace(s)
	if key == "" {
		return "", false
	}
	for _, c := range Categories {
		if strings.EqualFold(string(c), key) || strings.EqualFold(legacyCategoryNames[c], key) {
			return c, true
		}
	}
	return "", false
}

// ParseTag resuelve una etiqueta (case-insensitive, acepta el nombre en español).
func ParseTag(s string) (Tag, bool) {
	key := strings.TrimSpace(s)
	if key == "" {
		return "", false
	}
	for _, t := range Tags {
		if strings.EqualFold(string(t), key) || strings.EqualFold(legacyTagNames[t], key) {
			return t, true
		}
	}
	return "", false
}

// CategoryNames valores almacenados que se leen como c: el canónico y, si existe, el heredado.
func CategoryNames(c Category) []string {
	if legacy, ok := legacyCategoryNames[c]; ok {
		return []string{string(c), legacy}
	}
	return []string{string(c)}
}

// TagNames igual que CategoryNames para etiquetas.
func TagNames(t Tag) []string {
	if legacy, ok := legacyTagNames[t]; ok {
		return []string{string(t), legacy}
	}
	return []string{string(t)}
}

// Attachment adjunto del record store (solo se usa la primera imagen).
type Attachment struct {
	ID       string
	URL      string
	Filename string
}

// Dish platillo del menú.
type Dish struct {
	ID          string
	Name        string
	Category    Category // vacío si la fila no tiene categoría reconocible
	Price       decimal.Decimal
	Available   bool
	Description string
	Calories    *int // opcional
	Image       *Attachment
	Tags        []Tag
}

// ImageURL URL directa de la imagen o "".
func (d *Dish) ImageURL() string {
	if d == nil || d.Image == nil {
		return ""
	}
	return d.Image.URL
}

// HasTag indica si el platillo lleva la etiqueta.
func (d *Dish) HasTag(t Tag) bool {
	for _, x := range d.Tags {
		if x == t {
			return true
		}
	}
	return false
}

// Validate invariantes de un platillo completo (alta).
func (d *Dish) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return domain.Invalid("name", "es requerido")
	}
	if _, ok := ParseCategory(string(d.Category)); !ok {
		return domain.Invalid("category", "debe ser Starter, Main, Dessert o Beverage")
	}
	if d.Price.IsNegative() {
		return domain.Invalid("price", "debe ser >= 0")
	}
	if d.Calories != nil && *d.Calories < 0 {
		return domain.Invalid("calories", "debe ser >= 0")
	}
	for _, t := range d.Tags {
		if _, ok := ParseTag(string(t)); !ok {
			return domain.Invalid("tags", "etiqueta desconocida: "+string(t))
		}
	}
	if d.Image != nil && strings.TrimSpace(d.Image.URL) == "" {
		return domain.Invalid("image", "url es requerida")
	}
	return nil
}

// DishPatch actualización parcial de un platillo.
type DishPatch struct {
	Name        *string
	Category    *Category
	Price       *decimal.Decimal
	Available   *bool
	Description *string
	Calories    *int
	Image       *Attachment
	ClearImage  bool
	Tags        *[]Tag
}

// Empty indica que no hay nada que escribir.
func (p DishPatch) Empty() bool {
	return p.Name == nil && p.Category == nil && p.Price == nil && p.Available == nil &&
		p.Description == nil && p.Calories == nil && p.Image == nil && !p.ClearImage && p.Tags == nil
}

// Validate invariantes de los campos presentes.
func (p DishPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return domain.Invalid("name", "no puede ser vacío")
	}
	if p.Category != nil {
		if _, ok := ParseCategory(string(*p.Category)); !ok {
			return domain.Invalid("category", "debe ser Starter, Main, Dessert o Beverage")
		}
	}
	if p.Price != nil && p.Price.IsNegative() {
		return domain.Invalid("price", "debe ser >= 0")
	}
	if p.Calories != nil && *p.Calories < 0 {
		return domain.Invalid("calories", "debe ser >= 0")
	}
	if p.Tags != nil {
		for _, t := range *p.Tags {
			if _, ok := ParseTag(string(t)); !ok {
				return domain.Invalid("tags", "etiqueta desconocida: "+string(t))
			}
		}
	}
	if p.Image != nil && strings.TrimSpace(p.Image.URL) == "" {
		return domain.Invalid("image", "url es requerida")
	}
	return nil
}

// DishFilter filtros opcionales del listado público.
type DishFilter struct {
	Category  *Category
	Tag       *Tag
	Available *bool
	Query     string
	Limit     int
}
