package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken agrupa firma inválida, token malformado y expirado: el llamador no sabe cuál falló.
var ErrInvalidToken = errors.New("jwt: token inválido o expirado")

// DefaultTTL vigencia por defecto de la sesión.
const DefaultTTL = 7 * 24 * time.Hour

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Role viaja en el token para que RequireRole decida sin consultar el record store.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
	Name string `json:"name,omitempty"`
}

// Identity identidad que se firma en el token y se recupera al verificarlo.
type Identity struct {
	UserID string
	Role   string
	Name   string
}

// Token token firmado y su expiración (para el Max-Age de la cookie).
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Config parámetros del servicio. Now es opcional (tests).
type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
	Now    func() time.Time
}

// Service emite y verifica tokens HS256.
type Service struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewService construye el servicio. Un secret vacío es error de configuración.
func NewService(cfg Config) (*Service, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Service{secret: []byte(cfg.Secret), issuer: cfg.Issuer, ttl: cfg.TTL, now: cfg.Now}, nil
}

// TTL vigencia de los tokens emitidos.
func (s *Service) TTL() time.Duration { return s.ttl }

// Issue firma un token para la identidad con iat = ahora y exp = ahora + TTL.
func (s *Service) Issue(id Identity) (Token, error) {
	if id.UserID == "" {
		return Token{}, fmt.Errorf("jwt: subject vacío")
	}
	now := s.now()
	exp := now.Add(s.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Role: id.Role,
		Name: id.Name,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Token{}, fmt.Errorf("jwt: firmar: %w", err)
	}
	return Token{Value: signed, ExpiresAt: exp}, nil
}

// Verify valida firma, estructura y expiración. Cualquier fallo devuelve ErrInvalidToken.
func (s *Service) Verify(tokenString string) (*Identity, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrInvalidToken
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &Identity{UserID: claims.Subject, Role: claims.Role, Name: claims.Name}, nil
}
