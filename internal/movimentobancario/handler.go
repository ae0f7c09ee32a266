// internal/movimentobancario/handler.go
package movimentobancario

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// Handler gerencia as rotas de movimentos bancários.
type Handler struct {
	Repo *Repository
}

// NewHandler cria um novo Handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// ListNaoConciliados trata GET /movimentos/nao-conciliados.
// Aceita um query param opcional `direcao` (credito|debito).
func (h *Handler) ListNaoConciliados(w http.ResponseWriter, r *http.Request) {
	direcao := r.URL.Query().Get("direcao")
	if direcao != "" && direcao != DirecaoCredito && direcao != DirecaoDebito {
		http.Error(w, "Direção inválida. Use 'credito' ou 'debito'.", http.StatusBadRequest)
		return
	}

	movimentos, err := h.Repo.ListNaoConciliados(direcao)
	if err != nil {
		http.Error(w, "Erro ao buscar movimentos", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(movimentos)
}

// SetIgnorado trata PATCH /movimentos/{id}/ignorado.
// Movimentos ignorados somem da busca de candidatos sem serem apagados.
func (h *Handler) SetIgnorado(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de movimento inválido", http.StatusBadRequest)
		return
	}

	var payload struct {
		Ignorado bool `json:"ignorado"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	m, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Movimento não encontrado", http.StatusNotFound)
		return
	}
	if m.Conciliado {
		http.Error(w, "Movimento já conciliado não pode ser ignorado", http.StatusBadRequest)
		return
	}

	if err := h.Repo.SetIgnorado(uint(id), payload.Ignorado); err != nil {
		http.Error(w, "Erro ao atualizar movimento", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"message":"Movimento atualizado com sucesso"}`))
}
