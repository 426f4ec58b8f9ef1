package auth

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/parrillafit-api/internal/application/dto"
	"github.com/jhoicas/parrillafit-api/internal/domain"
	"github.com/jhoicas/parrillafit-api/internal/domain/entity"
	"github.com/jhoicas/parrillafit-api/internal/domain/repository"
	"github.com/jhoicas/parrillafit-api/pkg/jwt"
)

// PasswordCodec hashea y verifica contraseñas (pkg/password).
type PasswordCodec interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// TokenIssuer emite tokens de sesión (pkg/jwt).
type TokenIssuer interface {
	Issue(id jwt.Identity) (jwt.Token, error)
	TTL() time.Duration
}

// AuthUseCase casos de uso de autenticación: registro, login y gestión de la propia cuenta.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	passwords PasswordCodec
	tokens    TokenIssuer
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, passwords PasswordCodec, tokens TokenIssuer) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, passwords: passwords, tokens: tokens}
}

// TokenTTL vigencia de las sesiones emitidas (Max-Age de la cookie).
func (uc *AuthUseCase) TokenTTL() time.Duration {
	return uc.tokens.TTL()
}

// Register crea un usuario con rol user. Devuelve ErrPhoneAlreadyExists si el teléfono normalizado ya existe.
// La verificación y el alta son dos llamadas al store: dos registros simultáneos pueden pasar ambos.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "es requerido")
	}
	phone := entity.NormalizePhone(in.Phone)
	if phone == "" {
		return nil, domain.Invalid("phone", "debe contener dígitos")
	}
	if in.Password == "" {
		return nil, domain.Invalid("password", "es requerido")
	}

	existing, err := uc.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrPhoneAlreadyExists
	}

	hash, err := uc.passwords.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	created, err := uc.userRepo.Create(ctx, &entity.User{
		Name:         name,
		Phone:        phone,
		PasswordHash: hash,
		Role:         entity.RoleUser,
		Preferences:  entity.Preferences{}.Normalize(),
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewUserResponse(created)
	return &out, nil
}

// Login verifica teléfono/contraseña y emite un token. Usuario inexistente y contraseña errónea
// devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	phone := entity.NormalizePhone(in.Phone)
	if phone == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	user, err := uc.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if user == nil || !uc.passwords.Verify(in.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(jwt.Identity{UserID: user.ID, Role: string(user.Role), Name: user.Name})
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token.Value,
		ExpiresIn: int64(uc.tokens.TTL().Seconds()),
		User:      dto.NewUserResponse(user),
	}, nil
}

// Me devuelve el usuario de la sesión. Si la cuenta fue borrada el token sigue siendo válido
// hasta expirar, pero aquí se responde ErrAccountGone.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.MeResponse, error) {
	user, err := uc.current(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := dto.NewMeResponse(user)
	return &out, nil
}

// ChangePassword exige la contraseña actual antes de escribir el nuevo hash.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	user, err := uc.current(ctx, userID)
	if err != nil {
		return err
	}
	if !uc.passwords.Verify(in.CurrentPassword, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}
	hash, err := uc.passwords.Hash(in.NewPassword)
	if err != nil {
		return err
	}
	_, err = uc.userRepo.Update(ctx, user.ID, entity.UserPatch{PasswordHash: &hash})
	return err
}

// DeleteAccount borra la propia cuenta tras confirmar la contraseña (hard delete).
func (uc *AuthUseCase) DeleteAccount(ctx context.Context, userID string, in dto.DeleteAccountRequest) error {
	user, err := uc.current(ctx, userID)
	if err != nil {
		return err
	}
	if !uc.passwords.Verify(in.CurrentPassword, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}
	return uc.userRepo.Delete(ctx, user.ID)
}

func (uc *AuthUseCase) current(ctx context.Context, userID string) (*entity.User, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrAccountGone
	}
	return user, nil
}
