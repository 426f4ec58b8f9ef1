package airtable

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/parrillafit-api/internal/domain/entity"
)

// Nombres físicos de columnas. Deben coincidir con los tags json de userFields/dishFields
// (ver TestFieldNames_CoincidenConTags).
const (
	fieldUserName         = "Name"
	fieldUserPhone        = "Phone"
	fieldUserPasswordHash = "PasswordHash"
	fieldUserRole         = "Role"
	fieldUserLikes        = "Likes"
	fieldUserDislikes     = "Dislikes"
	fieldUserAllergies    = "Allergies"

	fieldDishName        = "Name"
	fieldDishCategory    = "Category"
	fieldDishPrice       = "Price"
	fieldDishAvailable   = "Available"
	fieldDishDescription = "Description"
	fieldDishCalories    = "Calories"
	fieldDishImage       = "Image"
	fieldDishTags        = "Tags"
)

// userFields forma externa de una fila de Users. Los punteros nil no se serializan,
// así la misma estructura sirve para lectura y para escrituras parciales.
type userFields struct {
	Name         *string   `json:"Name,omitempty"`
	Phone        *string   `json:"Phone,omitempty"`
	PasswordHash *string   `json:"PasswordHash,omitempty"`
	Role         *string   `json:"Role,omitempty"`
	Likes        *[]string `json:"Likes,omitempty"`
	Dislikes     *[]string `json:"Dislikes,omitempty"`
	Allergies    *[]string `json:"Allergies,omitempty"`
}

type attachmentField struct {
	ID       string `json:"id,omitempty"`
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
}

// dishFields forma externa de una fila de Platillos.
type dishFields struct {
	Name        *string            `json:"Name,omitempty"`
	Category    *string            `json:"Category,omitempty"`
	Price       *float64           `json:"Price,omitempty"`
	Available   *bool              `json:"Available,omitempty"`
	Description *string            `json:"Description,omitempty"`
	Calories    *float64           `json:"Calories,omitempty"`
	Image       *[]attachmentField `json:"Image,omitempty"`
	Tags        *[]string          `json:"Tags,omitempty"`
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func list(p *[]string) []string {
	if p == nil {
		return []string{}
	}
	return entity.NormalizeList(*p)
}

// ── Users ─────────────────────────────────────────────────────────────────────

func decodeUser(rec *Record) (*entity.User, error) {
	var f userFields
	if len(rec.Fields) > 0 {
		if err := json.Unmarshal(rec.Fields, &f); err != nil {
			return nil, fmt.Errorf("airtable: decodificar user %s: %w", rec.ID, err)
		}
	}
	return &entity.User{
		ID:           rec.ID,
		Name:         str(f.Name),
		Phone:        str(f.Phone),
		PasswordHash: str(f.PasswordHash),
		Role:         entity.ParseRole(str(f.Role)),
		Preferences: entity.Preferences{
			Likes:     list(f.Likes),
			Dislikes:  list(f.Dislikes),
			Allergies: list(f.Allergies),
		},
	}, nil
}

func encodeUser(u *entity.User) userFields {
	role := string(entity.ParseRole(string(u.Role)))
	prefs := u.Preferences.Normalize()
	return userFields{
		Name:         &u.Name,
		Phone:        &u.Phone,
		PasswordHash: &u.PasswordHash,
		Role:         &role,
		Likes:        &prefs.Likes,
		Dislikes:     &prefs.Dislikes,
		Allergies:    &prefs.Allergies,
	}
}

func encodeUserPatch(p entity.UserPatch) userFields {
	f := userFields{
		Name:         p.Name,
		Phone:        p.Phone,
		PasswordHash: p.PasswordHash,
	}
	if p.Role != nil {
		role := string(entity.ParseRole(string(*p.Role)))
		f.Role = &role
	}
	if p.Preferences != nil {
		prefs := p.Preferences.Normalize()
		f.Likes, f.Dislikes, f.Allergies = &prefs.Likes, &prefs.Dislikes, &prefs.Allergies
	}
	return f
}

// ── Dishes ────────────────────────────────────────────────────────────────────

func decodeDish(rec *Record) (*entity.Dish, error) {
	var f dishFields
	if len(rec.Fields) > 0 {
		if err := json.Unmarshal(rec.Fields, &f); err != nil {
			return nil, fmt.Errorf("airtable: decodificar dish %s: %w", rec.ID, err)
		}
	}
	d := &entity.Dish{
		ID:          rec.ID,
		Name:        str(f.Name),
		Description: str(f.Description),
		Price:       decimal.Zero,
		Tags:        []entity.Tag{},
	}
	if c, ok := entity.ParseCategory(str(f.Category)); ok {
		d.Category = c
	}
	if f.Price != nil {
		d.Price = decimal.NewFromFloat(*f.Price)
	}
	if f.Available != nil {
		d.Available = *f.Available
	}
	if f.Calories != nil {
		kcal := int(math.Round(*f.Calories))
		d.Calories = &kcal
	}
	if f.Image != nil && len(*f.Image) > 0 {
		a := (*f.Image)[0]
		d.Image = &entity.Attachment{ID: a.ID, URL: a.URL, Filename: a.Filename}
	}
	if f.Tags != nil {
		for _, raw := range *f.Tags {
			if t, ok := entity.ParseTag(raw); ok && !d.HasTag(t) {
				d.Tags = append(d.Tags, t)
			}
		}
	}
	return d, nil
}

func encodeAttachment(a *entity.Attachment) *[]attachmentField {
	out := []attachmentField{}
	if a != nil {
		out = append(out, attachmentField{ID: a.ID, URL: a.URL, Filename: a.Filename})
	}
	return &out
}

func encodeCalories(kcal *int) *float64 {
	if kcal == nil {
		return nil
	}
	v := float64(*kcal)
	return &v
}

func encodeTags(tags []entity.Tag) *[]string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, string(t))
	}
	return &out
}

func encodeDish(d *entity.Dish) dishFields {
	category := string(d.Category)
	price := d.Price.InexactFloat64()
	available := d.Available
	return dishFields{
		Name:        &d.Name,
		Category:    &category,
		Price:       &price,
		Available:   &available,
		Description: &d.Description,
		Calories:    encodeCalories(d.Calories),
		Image:       encodeAttachment(d.Image),
		Tags:        encodeTags(d.Tags),
	}
}

func encodeDishPatch(p entity.DishPatch) dishFields {
	f := dishFields{
		Name:        p.Name,
		Available:   p.Available,
		Description: p.Description,
		Calories:    encodeCalories(p.Calories),
	}
	if p.Category != nil {
		c := string(*p.Category)
		f.Category = &c
	}
	if p.Price != nil {
		price := p.Price.InexactFloat64()
		f.Price = &price
	}
	switch {
	case p.Image != nil:
		f.Image = encodeAttachment(p.Image)
	case p.ClearImage:
		f.Image = encodeAttachment(nil)
	}
	if p.Tags != nil {
		f.Tags = encodeTags(*p.Tags)
	}
	return f
}
