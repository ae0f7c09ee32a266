// internal/orcamento/handler.go
package orcamento

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// Handler gerencia as rotas de orçamento.
type Handler struct {
	Repo *Repository
}

// NewHandler cria um novo Handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// List trata GET /orcamentos. Aceita um query param opcional `status`.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	var (
		orcamentos []Orcamento
		err        error
	)
	if status != "" {
		orcamentos, err = h.Repo.ListByStatus(Status(status))
	} else {
		orcamentos, err = h.Repo.ListAll()
	}
	if err != nil {
		http.Error(w, "Erro ao buscar orçamentos", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(orcamentos)
}

// Get trata GET /orcamentos/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de orçamento inválido", http.StatusBadRequest)
		return
	}

	o, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Orçamento não encontrado", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(o)
}

// ResumoFinanceiro trata GET /orcamentos/{id}/resumo-financeiro.
// Retorna os valores derivados da etiqueta de status (recebido, pendente,
// fração) sem tocar nas contas a receber.
func (h *Handler) ResumoFinanceiro(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de orçamento inválido", http.StatusBadRequest)
		return
	}

	o, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Orçamento não encontrado", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Resumo(o))
}
