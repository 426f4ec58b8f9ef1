package dto

import "github.com/jhoicas/parrillafit-api/internal/domain/entity"

// NewUserResponse proyecta un usuario sin datos sensibles.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Phone: u.Phone, Role: string(u.Role)}
}

// NewPreferencesResponse listas normalizadas, nunca nil.
func NewPreferencesResponse(p entity.Preferences) PreferencesResponse {
	p = p.Normalize()
	return PreferencesResponse{Likes: p.Likes, Dislikes: p.Dislikes, Allergies: p.Allergies}
}

// NewMeResponse usuario + preferencias.
func NewMeResponse(u *entity.User) MeResponse {
	return MeResponse{UserResponse: NewUserResponse(u), PreferencesResponse: NewPreferencesResponse(u.Preferences)}
}

// NewDishResponse proyección pública de un platillo.
func NewDishResponse(d *entity.Dish) DishResponse {
	tags := make([]string, 0, len(d.Tags))
	for _, t := range d.Tags {
		tags = append(tags, string(t))
	}
	out := DishResponse{
		ID:          d.ID,
		Name:        d.Name,
		Category:    string(d.Category),
		Price:       d.Price,
		Available:   d.Available,
		Description: d.Description,
		Calories:    d.Calories,
		ImageURL:    d.ImageURL(),
		Tags:        tags,
	}
	if d.Image != nil {
		out.Image = &AttachmentDTO{URL: d.Image.URL, Filename: d.Image.Filename}
	}
	return out
}

// NewDishList proyecta un listado; vacío -> [] en JSON.
func NewDishList(dishes []*entity.Dish) []DishResponse {
	out := make([]DishResponse, 0, len(dishes))
	for _, d := range dishes {
		out = append(out, NewDishResponse(d))
	}
	return out
}
