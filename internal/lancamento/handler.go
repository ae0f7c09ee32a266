// internal/lancamento/handler.go
package lancamento

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// Handler gerencia as rotas de lançamento.
type Handler struct {
	Repo *Repository
}

// NewHandler cria um novo Handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// ListByVinculo trata GET /lancamentos?tipoVinculo=parcela&vinculoId=101.
// É o extrato interno de uma parcela ou conta a pagar.
func (h *Handler) ListByVinculo(w http.ResponseWriter, r *http.Request) {
	tipo := TipoVinculo(r.URL.Query().Get("tipoVinculo"))
	if tipo != VinculoParcela && tipo != VinculoContaPagar && tipo != VinculoManual {
		http.Error(w, "tipoVinculo inválido. Use 'parcela', 'conta_pagar' ou 'manual'.", http.StatusBadRequest)
		return
	}

	vinculoID, err := strconv.Atoi(r.URL.Query().Get("vinculoId"))
	if err != nil || vinculoID <= 0 {
		http.Error(w, "vinculoId inválido", http.StatusBadRequest)
		return
	}

	lancamentos, err := h.Repo.ListByVinculo(tipo, uint(vinculoID))
	if err != nil {
		http.Error(w, "Erro ao buscar lançamentos", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(lancamentos)
}
