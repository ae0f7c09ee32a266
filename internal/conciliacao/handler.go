// internal/conciliacao/handler.go
package conciliacao

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/decorart/api-financeiro/internal/contapagar"
	"github.com/decorart/api-financeiro/internal/movimentobancario"
	"github.com/decorart/api-financeiro/internal/parcela"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

/* ============================== Handler & DTOs ============================== */

// Handler gerencia as rotas de conciliação bancária.
type Handler struct {
	MovRepo        *movimentobancario.Repository
	ParcelaRepo    *parcela.Repository
	ContaPagarRepo *contapagar.Repository
	Servico        *ServicoLote

	// Invocado após um lote com sucessos; invalida relatórios cacheados.
	AoAplicar func()
}

// NewHandler cria um novo Handler.
func NewHandler(mov *movimentobancario.Repository, parc *parcela.Repository, cp *contapagar.Repository, servico *ServicoLote) *Handler {
	return &Handler{MovRepo: mov, ParcelaRepo: parc, ContaPagarRepo: cp, Servico: servico}
}

// DTO usado no POST /conciliacao/lote
type ItemLoteDTO struct {
	MovimentoID uint      `json:"movimentoId" validate:"required"`
	TipoAlvo    string    `json:"tipoAlvo" validate:"required,oneof=parcela conta_pagar"`
	AlvoID      uint      `json:"alvoId" validate:"required"`
	Valor       float64   `json:"valor" validate:"required,gt=0"`
	Data        time.Time `json:"data"` // opcional; vazio usa a data do movimento
}

type LoteDTO struct {
	Itens []ItemLoteDTO `json:"itens" validate:"required,min=1,dive"`
}

/* ============================== Endpoints ============================== */

// Candidatos trata GET /conciliacao/candidatos.
// Aceita um query param opcional `direcao` (credito|debito) para limitar a
// busca a recebíveis ou pagáveis.
func (h *Handler) Candidatos(w http.ResponseWriter, r *http.Request) {
	direcao := r.URL.Query().Get("direcao")
	if direcao != "" && direcao != movimentobancario.DirecaoCredito && direcao != movimentobancario.DirecaoDebito {
		http.Error(w, "Direção inválida. Use 'credito' ou 'debito'.", http.StatusBadRequest)
		return
	}

	movimentos, err := h.MovRepo.ListNaoConciliados(direcao)
	if err != nil {
		http.Error(w, "Erro ao buscar movimentos", http.StatusInternalServerError)
		return
	}

	var alvos []Alvo

	if direcao == "" || direcao == movimentobancario.DirecaoCredito {
		parcelas, err := h.ParcelaRepo.ListPendentes()
		if err != nil {
			http.Error(w, "Erro ao buscar parcelas em aberto", http.StatusInternalServerError)
			return
		}
		for _, p := range parcelas {
			alvos = append(alvos, Alvo{
				Tipo:         AlvoParcela,
				ID:           p.ID,
				Valor:        p.Valor,
				DataPrevista: p.DataVencimento,
			})
		}
	}

	if direcao == "" || direcao == movimentobancario.DirecaoDebito {
		contas, err := h.ContaPagarRepo.ListPendentes()
		if err != nil {
			http.Error(w, "Erro ao buscar contas a pagar em aberto", http.StatusInternalServerError)
			return
		}
		for _, c := range contas {
			alvos = append(alvos, Alvo{
				Tipo:         AlvoContaPagar,
				ID:           c.ID,
				Valor:        c.Valor,
				DataPrevista: c.DataVencimento,
				Descricao:    c.Descricao,
			})
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(BuscarCandidatos(movimentos, alvos))
}

// AplicarLote trata POST /conciliacao/lote.
// Sempre responde 200 com as contagens de sucesso/falha por item; só erros de
// preparação (JSON inválido, lote vazio) abortam a chamada inteira.
func (h *Handler) AplicarLote(w http.ResponseWriter, r *http.Request) {
	var dto LoteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(dto); err != nil {
		var verr validator.ValidationErrors
		if errors.As(err, &verr) {
			http.Error(w, "Lote inválido: "+verr.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Lote inválido", http.StatusBadRequest)
		return
	}

	itens := make([]ItemLote, 0, len(dto.Itens))
	for _, item := range dto.Itens {
		itens = append(itens, ItemLote{
			MovimentoID: item.MovimentoID,
			TipoAlvo:    TipoAlvo(item.TipoAlvo),
			AlvoID:      item.AlvoID,
			Valor:       item.Valor,
			Data:        item.Data,
		})
	}

	resultado := h.Servico.AplicarLote(r.Context(), itens)

	if resultado.Sucesso > 0 && h.AoAplicar != nil {
		h.AoAplicar()
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resultado)
}

// MarcarVencidas trata POST /manutencao/vencidas.
// Marca como vencidas as parcelas e contas a pagar pendentes cuja data de
// vencimento já passou. Pensado para rodar via agendador externo (cron).
func (h *Handler) MarcarVencidas(w http.ResponseWriter, r *http.Request) {
	referencia := time.Now()

	parcelas, err := h.ParcelaRepo.MarcarVencidas(referencia)
	if err != nil {
		http.Error(w, "Erro ao marcar parcelas vencidas", http.StatusInternalServerError)
		return
	}
	contas, err := h.ContaPagarRepo.MarcarVencidas(referencia)
	if err != nil {
		http.Error(w, "Erro ao marcar contas a pagar vencidas", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int64{
		"parcelasVencidas":    parcelas,
		"contasPagarVencidas": contas,
	})
}
