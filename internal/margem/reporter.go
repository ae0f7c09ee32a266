// internal/margem/reporter.go
package margem

import (
	"fmt"
	"sort"
	"time"

	"github.com/decorart/api-financeiro/internal/contapagar"
	"github.com/decorart/api-financeiro/internal/contareceber"
	"github.com/decorart/api-financeiro/internal/orcamento"
	"github.com/decorart/api-financeiro/internal/utils"
	"github.com/sirupsen/logrus"
)

// LimiarCriticoPadrao é a queda de margem (em pontos percentuais) a partir
// da qual um orçamento entra na lista de atenção.
const LimiarCriticoPadrao = -10.0

// Filtro restringe o conjunto de orçamentos do relatório.
type Filtro struct {
	Status    orcamento.Status
	ClienteID uint
}

// Fonte fornece as leituras do relatório de margem.
type Fonte interface {
	Orcamentos(filtro Filtro) ([]orcamento.Orcamento, error)
	ContasReceber() ([]contareceber.ContaReceber, error)
	ContasPagarPagas() ([]contapagar.ContaPagar, error)
}

// MargemOrcamento compara a margem projetada no fechamento da proposta com
// a margem realizada sobre o que de fato entrou e saiu.
type MargemOrcamento struct {
	OrcamentoID uint             `json:"orcamentoId"`
	Codigo      string           `json:"codigo"`
	Cliente     string           `json:"cliente"`
	Status      orcamento.Status `json:"status"`

	Receita         float64 `json:"receita"`
	CustoPago       float64 `json:"custoPago"`
	MargemProjetada float64 `json:"margemProjetada"`

	// Indefinida (nula) enquanto nada foi recebido: sem receita não há
	// margem realizada, e zero seria uma resposta errada.
	MargemRealizada *float64 `json:"margemRealizada"`
	Diferenca       *float64 `json:"diferenca"`
	Critico         bool     `json:"critico"`
}

// RelatorioMargem agrega o comparativo por orçamento e as médias do conjunto.
type RelatorioMargem struct {
	GeradoEm      time.Time `json:"geradoEm"`
	LimiarCritico float64   `json:"limiarCritico"`

	Orcamentos []MargemOrcamento `json:"orcamentos"`
	// Criticos lista, da pior para a menos ruim, os orçamentos cuja margem
	// realizada caiu abaixo do limiar em relação à projetada.
	Criticos []MargemOrcamento `json:"criticos"`

	MediaProjetada float64  `json:"mediaProjetada"`
	MediaRealizada *float64 `json:"mediaRealizada"`
	ComReceita     int      `json:"comReceita"`
}

// Reporter monta o relatório de margem projetada versus realizada.
type Reporter struct {
	fonte Fonte
	log   *logrus.Logger
}

// NewReporter cria o reporter.
func NewReporter(fonte Fonte, log *logrus.Logger) *Reporter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Reporter{fonte: fonte, log: log}
}

// Gerar calcula o relatório para o filtro informado. O limiar é em pontos
// percentuais e deve ser negativo para o uso normal (queda de margem).
func (r *Reporter) Gerar(filtro Filtro, limiarCritico float64) (*RelatorioMargem, error) {
	orcamentos, err := r.fonte.Orcamentos(filtro)
	if err != nil {
		return nil, fmt.Errorf("margem: carregar orçamentos: %w", err)
	}
	contas, err := r.fonte.ContasReceber()
	if err != nil {
		return nil, fmt.Errorf("margem: carregar contas a receber: %w", err)
	}
	pagas, err := r.fonte.ContasPagarPagas()
	if err != nil {
		return nil, fmt.Errorf("margem: carregar contas a pagar: %w", err)
	}

	receitaPorOrcamento := make(map[uint]float64)
	for _, c := range contas {
		if c.OrcamentoID != nil {
			receitaPorOrcamento[*c.OrcamentoID] += c.ValorPago
		}
	}
	custoPorOrcamento := make(map[uint]float64)
	for _, cp := range pagas {
		if cp.OrcamentoID != nil {
			custoPorOrcamento[*cp.OrcamentoID] += cp.Valor
		}
	}

	relatorio := &RelatorioMargem{
		GeradoEm:      time.Now(),
		LimiarCritico: limiarCritico,
		Orcamentos:    make([]MargemOrcamento, 0, len(orcamentos)),
	}

	var somaProjetada, somaRealizada float64
	for i := range orcamentos {
		o := &orcamentos[i]
		m := MargemOrcamento{
			OrcamentoID:     o.ID,
			Codigo:          o.Codigo,
			Cliente:         o.Cliente,
			Status:          o.Status,
			Receita:         utils.Round2(receitaPorOrcamento[o.ID]),
			CustoPago:       utils.Round2(custoPorOrcamento[o.ID]),
			MargemProjetada: o.MargemProjetada,
		}
		somaProjetada += o.MargemProjetada

		if m.Receita > 0 {
			realizada := utils.Round2((m.Receita - m.CustoPago) / m.Receita * 100)
			diferenca := utils.Round2(realizada - m.MargemProjetada)
			m.MargemRealizada = &realizada
			m.Diferenca = &diferenca
			m.Critico = diferenca < limiarCritico

			somaRealizada += realizada
			relatorio.ComReceita++
		}

		relatorio.Orcamentos = append(relatorio.Orcamentos, m)
		if m.Critico {
			relatorio.Criticos = append(relatorio.Criticos, m)
		}
	}

	if len(relatorio.Orcamentos) > 0 {
		relatorio.MediaProjetada = utils.Round2(somaProjetada / float64(len(relatorio.Orcamentos)))
	}
	if relatorio.ComReceita > 0 {
		media := utils.Round2(somaRealizada / float64(relatorio.ComReceita))
		relatorio.MediaRealizada = &media
	}

	// Da maior queda para a menor.
	sort.SliceStable(relatorio.Criticos, func(i, j int) bool {
		return *relatorio.Criticos[i].Diferenca < *relatorio.Criticos[j].Diferenca
	})

	r.log.WithFields(logrus.Fields{
		"orcamentos": len(relatorio.Orcamentos),
		"criticos":   len(relatorio.Criticos),
	}).Info("relatório de margem gerado")

	return relatorio, nil
}
