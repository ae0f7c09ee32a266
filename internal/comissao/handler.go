// internal/comissao/handler.go
package comissao

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

// Handler gerencia as rotas de comissão.
type Handler struct {
	Repo *Repository
}

// NewHandler cria um novo Handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// List trata GET /comissoes.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	comissoes, err := h.Repo.ListAll()
	if err != nil {
		http.Error(w, "Erro ao buscar comissões", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(comissoes)
}

// MarcarPaga trata PATCH /comissoes/{id}/pagar.
// É a correção manual do achado de comissão defasada na auditoria.
func (h *Handler) MarcarPaga(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de comissão inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Comissão não encontrada", http.StatusNotFound)
		return
	}
	if c.Status == StatusPago {
		http.Error(w, "Comissão já está paga", http.StatusBadRequest)
		return
	}

	c.Status = StatusPago
	c.UpdatedAt = time.Now()
	if err := h.Repo.Update(c); err != nil {
		http.Error(w, "Erro ao atualizar comissão", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}
