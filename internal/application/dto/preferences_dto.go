package dto

// PreferencesResponse listas de preferencias; nunca null en JSON.
type PreferencesResponse struct {
	Likes     []string `json:"likes"`
	Dislikes  []string `json:"dislikes"`
	Allergies []string `json:"allergies"`
}

// UpdatePreferencesRequest las listas ausentes (null) no se modifican.
type UpdatePreferencesRequest struct {
	Likes     *[]string `json:"likes" validate:"omitempty,max=100,dive,max=80"`
	Dislikes  *[]string `json:"dislikes" validate:"omitempty,max=100,dive,max=80"`
	Allergies *[]string `json:"allergies" validate:"omitempty,max=100,dive,max=80"`
}
