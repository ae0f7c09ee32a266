package auth

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims do token de acesso (inclui RBAC simples: Admin).
type Claims struct {
	UsuarioID uint `json:"usuarioId"`
	Admin     bool `json:"admin"`
	jwt.RegisteredClaims
}

// Tempo de vida do access token.
const AccessTTL = 24 * time.Hour

var (
	segredoOnce sync.Once
	segredo     []byte
	segredoErr  error
)

func carregarSegredo() ([]byte, error) {
	segredoOnce.Do(func() {
		s := os.Getenv("JWT_SECRET")
		if s == "" {
			segredoErr = errors.New("JWT_SECRET não definida")
			return
		}
		segredo = []byte(s)
	})
	return segredo, segredoErr
}

// GerarToken gera um JWT HS256 com validade de AccessTTL.
func GerarToken(usuarioID uint, admin bool) (string, error) {
	chave, err := carregarSegredo()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := &Claims{
		UsuarioID: usuarioID,
		Admin:     admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(usuarioID),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(chave)
}

// ValidarToken valida assinatura e expiração e retorna as claims.
func ValidarToken(tokenStr string) (*Claims, error) {
	chave, err := carregarSegredo()
	if err != nil {
		return nil, err
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return chave, nil
	})
	if err != nil || !tok.Valid {
		return nil, fmt.Errorf("token inválido ou expirado: %w", err)
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok {
		return nil, errors.New("claims inválidas")
	}
	return claims, nil
}
