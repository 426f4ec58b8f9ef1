package dto

import "github.com/shopspring/decimal"

// El precio viaja como número JSON, igual que en el record store.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// AttachmentDTO imagen del platillo.
type AttachmentDTO struct {
	URL      string `json:"url" validate:"required,url"`
	Filename string `json:"filename,omitempty" validate:"omitempty,max=200"`
}

// DishResponse salida de un platillo.
type DishResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Available   bool            `json:"available"`
	Description string          `json:"description"`
	Calories    *int            `json:"calories"`
	Image       *AttachmentDTO  `json:"image,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Tags        []string        `json:"tags"`
}

// CreateDishRequest alta de platillo (admin).
type CreateDishRequest struct {
	Name        string          `json:"name" validate:"required,max=120"`
	Category    string          `json:"category" validate:"required,dish_category"`
	Price       decimal.Decimal `json:"price"`
	Available   *bool           `json:"available"`
	Description string          `json:"description" validate:"max=2000"`
	Calories    *int            `json:"calories" validate:"omitempty,min=0"`
	Image       *AttachmentDTO  `json:"image" validate:"omitempty"`
	ImageURL    string          `json:"imageUrl" validate:"omitempty,url"`
	Tags        []string        `json:"tags" validate:"omitempty,dive,dish_tag"`
}

// UpdateDishRequest actualización parcial (admin). Image null explícito no se distingue de ausente:
// para quitar la imagen se usa clearImage.
type UpdateDishRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=120"`
	Category    *string          `json:"category" validate:"omitempty,dish_category"`
	Price       *decimal.Decimal `json:"price"`
	Available   *bool            `json:"available"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	Calories    *int             `json:"calories" validate:"omitempty,min=0"`
	Image       *AttachmentDTO   `json:"image" validate:"omitempty"`
	ImageURL    *string          `json:"imageUrl" validate:"omitempty,url"`
	ClearImage  bool             `json:"clearImage"`
	Tags        *[]string        `json:"tags" validate:"omitempty,dive,dish_tag"`
}

// DishListQuery filtros del listado público. Available llega como texto ("true"/"false"/"1"/"0").
type DishListQuery struct {
	Category  string `query:"category"`
	Tag       string `query:"tag"`
	Available string `query:"available"`
	Q         string `query:"q"`
	Limit     int    `query:"limit" validate:"min=0"`
}
