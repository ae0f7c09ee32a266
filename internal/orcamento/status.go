// internal/orcamento/status.go
package orcamento

// Status é a etiqueta de ciclo de vida do orçamento. O conjunto é fechado,
// mas valores desconhecidos (status futuros) degradam para o caso "sem
// pagamento" em vez de falhar.
type Status string

const (
	StatusRascunho    Status = "rascunho"
	StatusFinalizado  Status = "finalizado"
	StatusEnviado     Status = "enviado"
	StatusSemResposta Status = "sem_resposta"
	StatusRecusado    Status = "recusado"
	StatusPago40      Status = "pago_40"
	StatusPagoParcial Status = "pago_parcial" // 50%
	StatusPago60      Status = "pago_60"
	StatusPago        Status = "pago"
	StatusCancelado   Status = "cancelado"
)

// fracoes mapeia cada status de pagamento para a fração quitada.
var fracoes = map[Status]float64{
	StatusPago40:      0.40,
	StatusPagoParcial: 0.50,
	StatusPago60:      0.60,
	StatusPago:        1.0,
}

// ordemFunil define a ordem total usada em relatórios e ordenação.
var ordemFunil = map[Status]int{
	StatusRascunho:    1,
	StatusFinalizado:  2,
	StatusEnviado:     3,
	StatusSemResposta: 4,
	StatusRecusado:    5,
	StatusCancelado:   6,
	StatusPago40:      7,
	StatusPagoParcial: 8,
	StatusPago60:      9,
	StatusPago:        10,
}

// FracaoPaga retorna a fração quitada do orçamento segundo a etiqueta de
// status. Status sem pagamento (ou desconhecidos) retornam 0.
func FracaoPaga(s Status) float64 {
	return fracoes[s]
}

// OrdemFunil retorna a posição do status no funil comercial.
// Status desconhecidos ordenam por último.
func OrdemFunil(s Status) int {
	if ordem, ok := ordemFunil[s]; ok {
		return ordem
	}
	return 99
}

// ValorEfetivo retorna o valor líquido quando informado, senão o bruto.
func ValorEfetivo(o *Orcamento) float64 {
	if o.ValorLiquido > 0 {
		return o.ValorLiquido
	}
	return o.ValorBruto
}

// ValorRecebido retorna quanto já entrou segundo a etiqueta de status.
func ValorRecebido(o *Orcamento) float64 {
	return ValorEfetivo(o) * FracaoPaga(o.Status)
}

// ValorPendente retorna o saldo a receber. Só é definido (não zero) para os
// status de pagamento parcial; "pago" e os status sem pagamento retornam 0.
func ValorPendente(o *Orcamento) float64 {
	switch o.Status {
	case StatusPago40, StatusPagoParcial, StatusPago60:
		return ValorEfetivo(o) * (1 - FracaoPaga(o.Status))
	}
	return 0
}

// StatusParaFracao retorna o status de pagamento correspondente à maior faixa
// atingida pela fração (40/50/60/100%). Abaixo de 40% nenhuma faixa é
// atingida e ok=false: o status corrente do orçamento não deve mudar.
func StatusParaFracao(fracao float64) (Status, bool) {
	switch {
	case fracao >= 1.0:
		return StatusPago, true
	case fracao >= 0.60:
		return StatusPago60, true
	case fracao >= 0.50:
		return StatusPagoParcial, true
	case fracao >= 0.40:
		return StatusPago40, true
	}
	return "", false
}

// ResumoFinanceiro agrega as figuras derivadas do status para a API.
type ResumoFinanceiro struct {
	OrcamentoID   uint    `json:"orcamentoId"`
	Status        Status  `json:"status"`
	ValorEfetivo  float64 `json:"valorEfetivo"`
	Fracao        float64 `json:"fracao"`
	ValorRecebido float64 `json:"valorRecebido"`
	ValorPendente float64 `json:"valorPendente"`
}

// Resumo calcula o resumo financeiro derivado do orçamento.
func Resumo(o *Orcamento) ResumoFinanceiro {
	return ResumoFinanceiro{
		OrcamentoID:   o.ID,
		Status:        o.Status,
		ValorEfetivo:  ValorEfetivo(o),
		Fracao:        FracaoPaga(o.Status),
		ValorRecebido: ValorRecebido(o),
		ValorPendente: ValorPendente(o),
	}
}
