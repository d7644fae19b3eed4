package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sathler/bomlink/internal/application/auth"
	"github.com/sathler/bomlink/internal/application/dto"
	"github.com/sathler/bomlink/internal/application/memrepo"
	"github.com/sathler/bomlink/internal/domain"
	"github.com/sathler/bomlink/internal/domain/entity"
	pkgjwt "github.com/sathler/bomlink/pkg/jwt"
)

var testJWT = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "bomlink-test"}

func newAuthUC() *auth.UseCase {
	return auth.NewUseCase(memrepo.NewStore().UserRepo(), testJWT)
}

func TestRegister_RolPorDefectoEsGuest(t *testing.T) {
	uc := newAuthUC()

	out, err := uc.Register(dto.RegisterRequest{Username: "nuevo", Password: "secreta", Email: "n@x.local"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleGuest, out.Role)
	assert.Equal(t, "active", out.Status)
}

func TestRegister_UsernameTomado(t *testing.T) {
	uc := newAuthUC()
	_, err := uc.Register(dto.RegisterRequest{Username: "pm", Password: "x", Email: "a@x.local"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{Username: "pm", Password: "y", Email: "b@x.local"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegister_RolInvalido(t *testing.T) {
	uc := newAuthUC()
	_, err := uc.Register(dto.RegisterRequest{Username: "x", Password: "y", Role: "superuser"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El login devuelve un JWT verificable con los claims del usuario.
func TestLogin_TokenConClaims(t *testing.T) {
	uc := newAuthUC()
	reg, err := uc.Register(dto.RegisterRequest{Username: "pm", Password: "secreta", Email: "pm@x.local", Role: entity.RolePM})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Username: "pm", Password: "secreta"})
	require.NoError(t, err)

	userID, username, role, err := pkgjwt.Parse(testJWT.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, userID)
	assert.Equal(t, "pm", username)
	assert.Equal(t, entity.RolePM, role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc := newAuthUC()
	_, err := uc.Register(dto.RegisterRequest{Username: "pm", Password: "secreta"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Username: "pm", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newAuthUC()
	_, err := uc.Login(dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
