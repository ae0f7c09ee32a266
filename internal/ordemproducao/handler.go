// internal/ordemproducao/handler.go
package ordemproducao

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// Handler gerencia as rotas de ordem de produção.
type Handler struct {
	Repo *Repository
}

// NewHandler cria um novo Handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// List trata GET /ordens-producao.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ordens, err := h.Repo.ListAll()
	if err != nil {
		http.Error(w, "Erro ao buscar ordens de produção", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ordens)
}

// ListByOrcamento trata GET /orcamentos/{id}/ordens-producao.
func (h *Handler) ListByOrcamento(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de orçamento inválido", http.StatusBadRequest)
		return
	}

	ordens, err := h.Repo.ListByOrcamento(uint(id))
	if err != nil {
		http.Error(w, "Erro ao buscar ordens de produção", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ordens)
}
