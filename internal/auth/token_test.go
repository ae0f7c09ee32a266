package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	token, err := GerarToken(42, true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidarToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UsuarioID)
	assert.True(t, claims.Admin)
}

func TestValidarTokenRejeitaLixo(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	_, err := ValidarToken("nao-e-um-jwt")
	assert.Error(t, err)
}

func TestMiddlewareAutenticacao(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	var usuarioNoCtx uint
	protegido := MiddlewareAutenticacao(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		usuarioNoCtx, _ = r.Context().Value(CtxUsuarioID).(uint)
		w.WriteHeader(http.StatusOK)
	}))

	// Sem header.
	rec := httptest.NewRecorder()
	protegido.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Token inválido.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer lixo")
	protegido.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Token válido.
	token, err := GerarToken(7, false)
	require.NoError(t, err)
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	protegido.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(7), usuarioNoCtx)
}
