// internal/usuario/handler.go
package usuario

import (
	"encoding/json"
	"net/http"

	"github.com/decorart/api-financeiro/internal/auth"
	"github.com/decorart/api-financeiro/internal/utils"
)

// Handler gerencia as rotas de usuário.
type Handler struct {
	Repo *Repository
}

// NewHandler cria um novo Handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// Login trata POST /login. Valida e-mail e senha e devolve um token de acesso.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Senha string `json:"senha"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Senha == "" {
		http.Error(w, "Informe e-mail e senha", http.StatusBadRequest)
		return
	}

	u, err := h.Repo.FindByEmail(req.Email)
	if err != nil || !utils.CheckSenha(u.Senha, req.Senha) {
		// Mesma resposta para usuário inexistente e senha errada.
		http.Error(w, "Credenciais inválidas", http.StatusUnauthorized)
		return
	}

	token, err := auth.GerarToken(u.ID, u.Admin)
	if err != nil {
		http.Error(w, "Erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"token":   token,
		"usuario": u,
	})
}
