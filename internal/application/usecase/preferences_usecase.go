package usecase

import (
	"context"

	"github.com/jhoicas/parrillafit-api/internal/application/dto"
	"github.com/jhoicas/parrillafit-api/internal/domain"
	"github.com/jhoicas/parrillafit-api/internal/domain/entity"
	"github.com/jhoicas/parrillafit-api/internal/domain/repository"
)

// PreferencesUseCase lectura y escritura de preferencias. Solo sobre la propia cuenta.
type PreferencesUseCase struct {
	users repository.UserRepository
}

// NewPreferencesUseCase construye el caso de uso.
func NewPreferencesUseCase(users repository.UserRepository) *PreferencesUseCase {
	return &PreferencesUseCase{users: users}
}

// Get devuelve las preferencias de targetID. actorID es el usuario autenticado.
func (uc *PreferencesUseCase) Get(ctx context.Context, actorID, targetID string) (*dto.PreferencesResponse, error) {
	user, err := uc.owner(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	out := dto.NewPreferencesResponse(user.Preferences)
	return &out, nil
}

// Update reemplaza las listas enviadas; las omitidas conservan su valor.
// Las tres listas se escriben normalizadas en una sola llamada al store.
func (uc *PreferencesUseCase) Update(ctx context.Context, actorID, targetID string, in dto.UpdatePreferencesRequest) (*dto.PreferencesResponse, error) {
	user, err := uc.owner(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	prefs := user.Preferences
	if in.Likes != nil {
		prefs.Likes = *in.Likes
	}
	if in.Dislikes != nil {
		prefs.Dislikes = *in.Dislikes
	}
	if in.Allergies != nil {
		prefs.Allergies = *in.Allergies
	}
	prefs = prefs.Normalize()

	updated, err := uc.users.Update(ctx, user.ID, entity.UserPatch{Preferences: &prefs})
	if err != nil {
		return nil, err
	}
	out := dto.NewPreferencesResponse(updated.Preferences)
	return &out, nil
}

func (uc *PreferencesUseCase) owner(ctx context.Context, actorID, targetID string) (*entity.User, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized
	}
	if targetID != actorID {
		return nil, domain.ErrForbidden
	}
	user, err := uc.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrAccountGone
	}
	return user, nil
}
