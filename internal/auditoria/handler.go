// internal/auditoria/handler.go
package auditoria

import (
	"encoding/json"
	"net/http"

	"github.com/decorart/api-financeiro/internal/cache"
)

const chaveRelatorio = "relatorio"

// Handler gerencia as rotas de auditoria.
type Handler struct {
	Auditor *Auditor
	Cache   *cache.Cache[*RelatorioAuditoria]
}

// NewHandler cria um novo Handler.
func NewHandler(auditor *Auditor, c *cache.Cache[*RelatorioAuditoria]) *Handler {
	return &Handler{Auditor: auditor, Cache: c}
}

// Relatorio trata GET /auditoria/relatorio. O resultado fica em cache até
// expirar ou até uma conciliação invalidar; `?atualizar=true` força uma
// execução nova.
func (h *Handler) Relatorio(w http.ResponseWriter, r *http.Request) {
	forcar := r.URL.Query().Get("atualizar") == "true"

	if h.Cache != nil && !forcar {
		if relatorio, ok := h.Cache.Get(chaveRelatorio); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			_ = json.NewEncoder(w).Encode(relatorio)
			return
		}
	}

	relatorio, err := h.Auditor.Executar()
	if err != nil {
		http.Error(w, "Erro ao executar a auditoria", http.StatusInternalServerError)
		return
	}
	if h.Cache != nil {
		h.Cache.Set(chaveRelatorio, relatorio)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(relatorio)
}

// Invalidar descarta o relatório em cache. Usado como gancho pós-conciliação.
func (h *Handler) Invalidar() {
	if h.Cache != nil {
		h.Cache.InvalidateAll()
	}
}
