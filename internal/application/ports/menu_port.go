package ports

import (
	"context"
	"time"

	"github.com/jhoicas/parrillafit-api/internal/domain/entity"
)

// MenuSection platillos de una categoría, en orden de presentación.
type MenuSection struct {
	Title  string
	Dishes []*entity.Dish
}

// MenuDocument menú imprimible ya agrupado.
type MenuDocument struct {
	Title       string
	GeneratedAt time.Time
	Sections    []MenuSection
}

// MenuRenderer genera la representación PDF del menú.
type MenuRenderer interface {
	RenderMenu(ctx context.Context, doc MenuDocument) ([]byte, error)
}
