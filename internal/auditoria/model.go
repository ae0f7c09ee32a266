// internal/auditoria/model.go
package auditoria

import "time"

// Severidade classifica a gravidade de uma inconsistência.
type Severidade string

const (
	SeveridadeCritica Severidade = "critica"
	SeveridadeAlta    Severidade = "alta"
	SeveridadeMedia   Severidade = "media"
)

// Tipos de inconsistência que a auditoria reporta.
const (
	TipoOrcamentoSemOrdem = "orcamento_sem_ordem"
	TipoOrcamentoSemConta = "orcamento_sem_conta"
	TipoOrdemSemPagamento = "ordem_sem_pagamento"
	TipoContaOrfa         = "conta_orfa"
	TipoStatusDivergente  = "status_divergente"
	TipoComissaoDefasada  = "comissao_defasada"
)

// Inconsistencia é um achado da auditoria, com os dados brutos necessários
// para a correção manual.
type Inconsistencia struct {
	Tipo       string     `json:"tipo"`
	Severidade Severidade `json:"severidade"`
	Descricao  string     `json:"descricao"`

	OrcamentoID     uint    `json:"orcamentoId,omitempty"`
	OrcamentoCodigo string  `json:"orcamentoCodigo,omitempty"`
	OrcamentoStatus string  `json:"orcamentoStatus,omitempty"`
	ContaReceberID  uint    `json:"contaReceberId,omitempty"`
	OrdemID         uint    `json:"ordemId,omitempty"`
	ComissaoID      uint    `json:"comissaoId,omitempty"`
	ValorTotal      float64 `json:"valorTotal,omitempty"`
	ValorPago       float64 `json:"valorPago,omitempty"`
	FracaoReal      float64 `json:"fracaoReal,omitempty"`
}

// RelatorioAuditoria agrega os achados de uma execução completa.
type RelatorioAuditoria struct {
	GeradoEm        time.Time        `json:"geradoEm"`
	Total           int              `json:"total"`
	Criticas        int              `json:"criticas"`
	Altas           int              `json:"altas"`
	Medias          int              `json:"medias"`
	Inconsistencias []Inconsistencia `json:"inconsistencias"`
}

func (r *RelatorioAuditoria) adicionar(inc Inconsistencia) {
	r.Inconsistencias = append(r.Inconsistencias, inc)
	r.Total++
	switch inc.Severidade {
	case SeveridadeCritica:
		r.Criticas++
	case SeveridadeAlta:
		r.Altas++
	case SeveridadeMedia:
		r.Medias++
	}
}
