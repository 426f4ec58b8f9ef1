package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/parrillafit-api/pkg/password"
)

func TestCodec_HashYVerify(t *testing.T) {
	codec := password.NewCodec(bcrypt.MinCost)

	for _, plain := range []string{"secreto123", "ñandú con espacios", "x", "'; DROP --"} {
		hash, err := codec.Hash(plain)
		require.NoError(t, err)
		assert.NotEqual(t, plain, hash, "el hash nunca debe ser la contraseña en claro")
		assert.True(t, codec.Verify(plain, hash))
		assert.False(t, codec.Verify(plain+"!", hash), "contraseña incorrecta no debe verificar")
	}
}

func TestCodec_HashConSal(t *testing.T) {
	codec := password.NewCodec(bcrypt.MinCost)
	h1, err := codec.Hash("misma")
	require.NoError(t, err)
	h2, err := codec.Hash("misma")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "dos hashes de la misma contraseña deben diferir por la sal")
}

func TestCodec_VerifyHashMalformado(t *testing.T) {
	codec := password.NewCodec(bcrypt.MinCost)
	assert.False(t, codec.Verify("algo", ""))
	assert.False(t, codec.Verify("algo", "no-es-bcrypt"))
	assert.False(t, codec.Verify("", "$2a$04$corto"))
}

func TestCodec_HashVacio(t *testing.T) {
	_, err := password.NewCodec(0).Hash("")
	assert.ErrorIs(t, err, password.ErrEmpty)
}

func TestNewCodec_CostoInvalidoUsaDefault(t *testing.T) {
	codec := password.NewCodec(99)
	hash, err := codec.Hash("abc")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
