// internal/contareceber/handler.go
package contareceber

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// Handler gerencia as rotas de contas a receber.
type Handler struct {
	Repo *Repository
}

// NewHandler cria um novo Handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// List trata GET /contas-receber. Inclui as parcelas de cada conta.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	contas, err := h.Repo.ListAll()
	if err != nil {
		http.Error(w, "Erro ao buscar contas a receber", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(contas)
}

// Get trata GET /contas-receber/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de conta inválido", http.StatusBadRequest)
		return
	}

	conta, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Conta a receber não encontrada", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(conta)
}

// Recalcular trata POST /contas-receber/{id}/recalcular.
// Refaz valor_pago e status a partir das parcelas pagas; correção manual
// para os achados da auditoria.
func (h *Handler) Recalcular(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de conta inválido", http.StatusBadRequest)
		return
	}

	if _, err := h.Repo.FindByID(uint(id)); err != nil {
		http.Error(w, "Conta a receber não encontrada", http.StatusNotFound)
		return
	}

	if err := h.Repo.RecalcValorPago(nil, uint(id)); err != nil {
		http.Error(w, "Erro ao recalcular a conta", http.StatusInternalServerError)
		return
	}

	conta, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Erro ao recarregar a conta", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(conta)
}
