// internal/margem/handler.go
package margem

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/decorart/api-financeiro/internal/orcamento"
)

// Handler gerencia as rotas do relatório de margem.
type Handler struct {
	Reporter *Reporter
}

// NewHandler cria um novo Handler.
func NewHandler(reporter *Reporter) *Handler {
	return &Handler{Reporter: reporter}
}

// Relatorio trata GET /relatorios/margem.
// Query params: `status` e `clienteId` filtram o conjunto; `limiar` troca o
// limiar crítico (pontos percentuais, normalmente negativo).
func (h *Handler) Relatorio(w http.ResponseWriter, r *http.Request) {
	filtro := Filtro{Status: orcamento.Status(r.URL.Query().Get("status"))}

	if raw := r.URL.Query().Get("clienteId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 0 {
			http.Error(w, "clienteId inválido", http.StatusBadRequest)
			return
		}
		filtro.ClienteID = uint(id)
	}

	limiar := LimiarCriticoPadrao
	if raw := r.URL.Query().Get("limiar"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			http.Error(w, "limiar inválido", http.StatusBadRequest)
			return
		}
		limiar = v
	}

	relatorio, err := h.Reporter.Gerar(filtro, limiar)
	if err != nil {
		http.Error(w, "Erro ao gerar o relatório de margem", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(relatorio)
}
