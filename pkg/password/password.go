// Package password hashea y verifica contraseñas con bcrypt.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmpty se devuelve al intentar hashear una contraseña vacía.
var ErrEmpty = errors.New("password: contraseña vacía")

// Codec hashea con un costo fijo. El valor cero usa bcrypt.DefaultCost.
type Codec struct {
	cost int
}

// NewCodec construye el codec. Costos fuera de [bcrypt.MinCost, bcrypt.MaxCost] usan DefaultCost.
func NewCodec(cost int) *Codec {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Codec{cost: cost}
}

// Hash genera el digest bcrypt (con sal) de la contraseña.
func (c *Codec) Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmpty
	}
	cost := c.cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(h), nil
}

// Verify compara plain contra hash. Un hash vacío o malformado devuelve false.
func (c *Codec) Verify(plain, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
