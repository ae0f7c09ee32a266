// internal/auditoria/auditor.go
package auditoria

import (
	"fmt"
	"sort"
	"time"

	"github.com/decorart/api-financeiro/internal/comissao"
	"github.com/decorart/api-financeiro/internal/contareceber"
	"github.com/decorart/api-financeiro/internal/orcamento"
	"github.com/decorart/api-financeiro/internal/ordemproducao"
	"github.com/sirupsen/logrus"
)

// Fonte fornece as leituras necessárias para uma execução da auditoria.
// Todas as regras são somente leitura; a auditoria nunca corrige dados.
type Fonte interface {
	Orcamentos() ([]orcamento.Orcamento, error)
	ContasReceber() ([]contareceber.ContaReceber, error)
	OrdensProducao() ([]ordemproducao.OrdemProducao, error)
	Comissoes() ([]comissao.Comissao, error)
}

// Auditor percorre o estado persistido e aponta inconsistências entre
// orçamentos, contas, ordens de produção e comissões.
type Auditor struct {
	fonte Fonte
	log   *logrus.Logger
}

// NewAuditor cria o auditor.
func NewAuditor(fonte Fonte, log *logrus.Logger) *Auditor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Auditor{fonte: fonte, log: log}
}

// Executar roda as seis verificações e devolve o relatório combinado.
// Registros individualmente malformados são pulados, nunca abortam a execução.
func (a *Auditor) Executar() (*RelatorioAuditoria, error) {
	orcamentos, err := a.fonte.Orcamentos()
	if err != nil {
		return nil, fmt.Errorf("auditoria: carregar orçamentos: %w", err)
	}
	contas, err := a.fonte.ContasReceber()
	if err != nil {
		return nil, fmt.Errorf("auditoria: carregar contas a receber: %w", err)
	}
	ordens, err := a.fonte.OrdensProducao()
	if err != nil {
		return nil, fmt.Errorf("auditoria: carregar ordens de produção: %w", err)
	}
	comissoes, err := a.fonte.Comissoes()
	if err != nil {
		return nil, fmt.Errorf("auditoria: carregar comissões: %w", err)
	}

	// Índices auxiliares compartilhados entre as regras.
	orcPorID := make(map[uint]*orcamento.Orcamento, len(orcamentos))
	for i := range orcamentos {
		orcPorID[orcamentos[i].ID] = &orcamentos[i]
	}
	contaPorOrcamento := make(map[uint]*contareceber.ContaReceber)
	for i := range contas {
		if contas[i].OrcamentoID != nil {
			contaPorOrcamento[*contas[i].OrcamentoID] = &contas[i]
		}
	}
	temOrdem := make(map[uint]bool)
	for i := range ordens {
		temOrdem[ordens[i].OrcamentoID] = true
	}

	relatorio := &RelatorioAuditoria{GeradoEm: time.Now()}

	a.verificarOrcamentosPagos(relatorio, orcamentos, contaPorOrcamento, temOrdem)
	a.verificarOrdens(relatorio, ordens, orcPorID)
	a.verificarContasOrfas(relatorio, contas, orcPorID)
	a.verificarStatusDivergente(relatorio, orcamentos, contaPorOrcamento)
	a.verificarComissoes(relatorio, comissoes, orcPorID, contaPorOrcamento)
	ordenar(relatorio)

	a.log.WithFields(logrus.Fields{
		"total":    relatorio.Total,
		"criticas": relatorio.Criticas,
		"altas":    relatorio.Altas,
		"medias":   relatorio.Medias,
	}).Info("auditoria concluída")

	return relatorio, nil
}

// verificarOrcamentosPagos cobre as regras 1 e 2: orçamento em status de
// pagamento sem ordem de produção (alta) e sem conta a receber (crítica).
func (a *Auditor) verificarOrcamentosPagos(r *RelatorioAuditoria, orcamentos []orcamento.Orcamento, contaPorOrcamento map[uint]*contareceber.ContaReceber, temOrdem map[uint]bool) {
	for i := range orcamentos {
		o := &orcamentos[i]
		if orcamento.FracaoPaga(o.Status) < 0.40 {
			continue
		}
		if !temOrdem[o.ID] {
			r.adicionar(Inconsistencia{
				Tipo:            TipoOrcamentoSemOrdem,
				Severidade:      SeveridadeAlta,
				Descricao:       fmt.Sprintf("Orçamento %s está em %s mas não tem ordem de produção", o.Codigo, o.Status),
				OrcamentoID:     o.ID,
				OrcamentoCodigo: o.Codigo,
				OrcamentoStatus: string(o.Status),
			})
		}
		if contaPorOrcamento[o.ID] == nil {
			r.adicionar(Inconsistencia{
				Tipo:            TipoOrcamentoSemConta,
				Severidade:      SeveridadeCritica,
				Descricao:       fmt.Sprintf("Orçamento %s está em %s mas não tem conta a receber: recebimento sem rastreio", o.Codigo, o.Status),
				OrcamentoID:     o.ID,
				OrcamentoCodigo: o.Codigo,
				OrcamentoStatus: string(o.Status),
			})
		}
	}
}

// verificarOrdens cobre a regra 3: ordem ativa cujo orçamento ainda não
// atingiu a faixa mínima de pagamento. Ordem apontando para orçamento
// inexistente entra na mesma regra, com descrição própria.
func (a *Auditor) verificarOrdens(r *RelatorioAuditoria, ordens []ordemproducao.OrdemProducao, orcPorID map[uint]*orcamento.Orcamento) {
	for i := range ordens {
		ord := &ordens[i]
		if !ord.Ativa() {
			continue
		}
		o := orcPorID[ord.OrcamentoID]
		if o == nil {
			r.adicionar(Inconsistencia{
				Tipo:        TipoOrdemSemPagamento,
				Severidade:  SeveridadeCritica,
				Descricao:   fmt.Sprintf("Ordem de produção %d referencia orçamento %d inexistente", ord.ID, ord.OrcamentoID),
				OrdemID:     ord.ID,
				OrcamentoID: ord.OrcamentoID,
			})
			continue
		}
		if orcamento.FracaoPaga(o.Status) < 0.40 {
			r.adicionar(Inconsistencia{
				Tipo:            TipoOrdemSemPagamento,
				Severidade:      SeveridadeCritica,
				Descricao:       fmt.Sprintf("Ordem de produção %d (%s) em andamento, mas orçamento %s está em %s, sem entrada registrada", ord.ID, ord.StatusProducao, o.Codigo, o.Status),
				OrdemID:         ord.ID,
				OrcamentoID:     o.ID,
				OrcamentoCodigo: o.Codigo,
				OrcamentoStatus: string(o.Status),
			})
		}
	}
}

// verificarContasOrfas cobre a regra 4: conta a receber apontando para
// orçamento inexistente. Contas avulsas (sem orçamento) são legítimas.
func (a *Auditor) verificarContasOrfas(r *RelatorioAuditoria, contas []contareceber.ContaReceber, orcPorID map[uint]*orcamento.Orcamento) {
	for i := range contas {
		c := &contas[i]
		if c.OrcamentoID == nil {
			continue
		}
		if orcPorID[*c.OrcamentoID] == nil {
			r.adicionar(Inconsistencia{
				Tipo:           TipoContaOrfa,
				Severidade:     SeveridadeMedia,
				Descricao:      fmt.Sprintf("Conta a receber %d referencia orçamento %d inexistente", c.ID, *c.OrcamentoID),
				ContaReceberID: c.ID,
				OrcamentoID:    *c.OrcamentoID,
				ValorTotal:     c.ValorTotal,
				ValorPago:      c.ValorPago,
			})
		}
	}
}

// verificarStatusDivergente cobre a regra 5: etiqueta de pagamento do
// orçamento acima da fração realmente quitada na conta. Só o sentido
// "etiqueta diz >=40%, conta diz menos" é apontado; o excesso no sentido
// inverso fica fora do relatório.
func (a *Auditor) verificarStatusDivergente(r *RelatorioAuditoria, orcamentos []orcamento.Orcamento, contaPorOrcamento map[uint]*contareceber.ContaReceber) {
	for i := range orcamentos {
		o := &orcamentos[i]
		if orcamento.FracaoPaga(o.Status) < 0.40 {
			continue
		}
		c := contaPorOrcamento[o.ID]
		if c == nil || c.ValorTotal <= 0 {
			continue // sem conta é a regra 2; total zerado não tem fração definida
		}
		fracao := c.ValorPago / c.ValorTotal
		if fracao < 0.40 {
			r.adicionar(Inconsistencia{
				Tipo:            TipoStatusDivergente,
				Severidade:      SeveridadeAlta,
				Descricao:       fmt.Sprintf("Orçamento %s está marcado como %s, mas a conta %d só tem %.0f%% quitado", o.Codigo, o.Status, c.ID, fracao*100),
				OrcamentoID:     o.ID,
				OrcamentoCodigo: o.Codigo,
				OrcamentoStatus: string(o.Status),
				ContaReceberID:  c.ID,
				ValorTotal:      c.ValorTotal,
				ValorPago:       c.ValorPago,
				FracaoReal:      fracao,
			})
		}
	}
}

// verificarComissoes cobre a regra 6: comissão ainda pendente depois de o
// orçamento já ter começado a receber.
func (a *Auditor) verificarComissoes(r *RelatorioAuditoria, comissoes []comissao.Comissao, orcPorID map[uint]*orcamento.Orcamento, contaPorOrcamento map[uint]*contareceber.ContaReceber) {
	for i := range comissoes {
		cm := &comissoes[i]
		if cm.Status != comissao.StatusPendente || cm.OrcamentoID == nil {
			continue
		}
		c := contaPorOrcamento[*cm.OrcamentoID]
		if c == nil || c.ValorPago <= 0 {
			continue
		}
		inc := Inconsistencia{
			Tipo:           TipoComissaoDefasada,
			Severidade:     SeveridadeMedia,
			ComissaoID:     cm.ID,
			OrcamentoID:    *cm.OrcamentoID,
			ContaReceberID: c.ID,
			ValorPago:      c.ValorPago,
		}
		if o := orcPorID[*cm.OrcamentoID]; o != nil {
			inc.OrcamentoCodigo = o.Codigo
			inc.Descricao = fmt.Sprintf("Comissão %d pendente, mas o orçamento %s já recebeu R$ %.2f", cm.ID, o.Codigo, c.ValorPago)
		} else {
			inc.Descricao = fmt.Sprintf("Comissão %d pendente, mas o orçamento %d já recebeu R$ %.2f", cm.ID, *cm.OrcamentoID, c.ValorPago)
		}
		r.adicionar(inc)
	}
}

// ordenar deixa o relatório determinístico: severidade (crítica primeiro),
// depois tipo, depois IDs.
func ordenar(r *RelatorioAuditoria) {
	peso := map[Severidade]int{SeveridadeCritica: 0, SeveridadeAlta: 1, SeveridadeMedia: 2}
	sort.SliceStable(r.Inconsistencias, func(i, j int) bool {
		a, b := r.Inconsistencias[i], r.Inconsistencias[j]
		if peso[a.Severidade] != peso[b.Severidade] {
			return peso[a.Severidade] < peso[b.Severidade]
		}
		if a.Tipo != b.Tipo {
			return a.Tipo < b.Tipo
		}
		return a.OrcamentoID < b.OrcamentoID
	})
}
