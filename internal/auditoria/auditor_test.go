package auditoria

import (
	"errors"
	"testing"

	"github.com/decorart/api-financeiro/internal/comissao"
	"github.com/decorart/api-financeiro/internal/contareceber"
	"github.com/decorart/api-financeiro/internal/orcamento"
	"github.com/decorart/api-financeiro/internal/ordemproducao"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFonte struct {
	orcamentos []orcamento.Orcamento
	contas     []contareceber.ContaReceber
	ordens     []ordemproducao.OrdemProducao
	comissoes  []comissao.Comissao
	erro       error
}

func (f *fakeFonte) Orcamentos() ([]orcamento.Orcamento, error) {
	return f.orcamentos, f.erro
}

func (f *fakeFonte) ContasReceber() ([]contareceber.ContaReceber, error) {
	return f.contas, f.erro
}

func (f *fakeFonte) OrdensProducao() ([]ordemproducao.OrdemProducao, error) {
	return f.ordens, f.erro
}

func (f *fakeFonte) Comissoes() ([]comissao.Comissao, error) {
	return f.comissoes, f.erro
}

func ref(v uint) *uint { return &v }

func porTipo(r *RelatorioAuditoria, tipo string) []Inconsistencia {
	var out []Inconsistencia
	for _, inc := range r.Inconsistencias {
		if inc.Tipo == tipo {
			out = append(out, inc)
		}
	}
	return out
}

// montarFonte monta um estado com um orçamento saudável e um exemplar de
// cada inconsistência.
func montarFonte() *fakeFonte {
	return &fakeFonte{
		orcamentos: []orcamento.Orcamento{
			// Saudável: pago_40, com ordem e conta coerentes.
			{ID: 1, Codigo: "ORC-001", Status: orcamento.StatusPago40, ValorBruto: 4500},
			// Etiqueta diz pago, conta só tem 35% quitado.
			{ID: 2, Codigo: "ORC-002", Status: orcamento.StatusPago, ValorBruto: 1000},
			// Em faixa de pagamento sem ordem nem conta.
			{ID: 3, Codigo: "ORC-003", Status: orcamento.StatusPago60, ValorBruto: 2000},
			// Abaixo da faixa, mas com produção em andamento.
			{ID: 4, Codigo: "ORC-004", Status: orcamento.StatusEnviado, ValorBruto: 3000},
		},
		contas: []contareceber.ContaReceber{
			{ID: 10, OrcamentoID: ref(1), ValorTotal: 4500, ValorPago: 2250, Status: contareceber.StatusParcial},
			{ID: 11, OrcamentoID: ref(2), ValorTotal: 1000, ValorPago: 350, Status: contareceber.StatusParcial},
			{ID: 12, OrcamentoID: ref(888), ValorTotal: 700, Status: contareceber.StatusPendente}, // órfã
			{ID: 13, ValorTotal: 500, Status: contareceber.StatusPendente},                        // avulsa, legítima
		},
		ordens: []ordemproducao.OrdemProducao{
			{ID: 100, OrcamentoID: 1, StatusProducao: ordemproducao.StatusEmProducao},
			{ID: 101, OrcamentoID: 2, StatusProducao: ordemproducao.StatusPronta},
			{ID: 102, OrcamentoID: 4, StatusProducao: ordemproducao.StatusEmProducao}, // sem pagamento
			{ID: 103, OrcamentoID: 999, StatusProducao: ordemproducao.StatusQualidade}, // orçamento inexistente
			{ID: 104, OrcamentoID: 4, StatusProducao: ordemproducao.StatusCancelada},   // inativa, ignorada
		},
		comissoes: []comissao.Comissao{
			{ID: 200, OrcamentoID: ref(1), Valor: 300, Status: comissao.StatusPendente}, // defasada
			{ID: 201, OrcamentoID: ref(1), Valor: 150, Status: comissao.StatusPago},
			{ID: 202, OrcamentoID: ref(3), Valor: 90, Status: comissao.StatusPendente}, // sem conta, ignorada
		},
	}
}

func TestAuditoriaCenarioCompleto(t *testing.T) {
	auditor := NewAuditor(montarFonte(), nil)

	relatorio, err := auditor.Executar()
	require.NoError(t, err)

	assert.Equal(t, 7, relatorio.Total)
	assert.Equal(t, 3, relatorio.Criticas)
	assert.Equal(t, 2, relatorio.Altas)
	assert.Equal(t, 2, relatorio.Medias)
	assert.Len(t, relatorio.Inconsistencias, relatorio.Total)

	semOrdem := porTipo(relatorio, TipoOrcamentoSemOrdem)
	require.Len(t, semOrdem, 1)
	assert.Equal(t, uint(3), semOrdem[0].OrcamentoID)
	assert.Equal(t, SeveridadeAlta, semOrdem[0].Severidade)

	semConta := porTipo(relatorio, TipoOrcamentoSemConta)
	require.Len(t, semConta, 1)
	assert.Equal(t, uint(3), semConta[0].OrcamentoID)
	assert.Equal(t, SeveridadeCritica, semConta[0].Severidade)

	semPagamento := porTipo(relatorio, TipoOrdemSemPagamento)
	require.Len(t, semPagamento, 2)
	ordens := []uint{semPagamento[0].OrdemID, semPagamento[1].OrdemID}
	assert.ElementsMatch(t, []uint{102, 103}, ordens)

	orfas := porTipo(relatorio, TipoContaOrfa)
	require.Len(t, orfas, 1)
	assert.Equal(t, uint(12), orfas[0].ContaReceberID)
	assert.Equal(t, uint(888), orfas[0].OrcamentoID)

	divergentes := porTipo(relatorio, TipoStatusDivergente)
	require.Len(t, divergentes, 1)
	assert.Equal(t, uint(2), divergentes[0].OrcamentoID)
	assert.InDelta(t, 0.35, divergentes[0].FracaoReal, 0.001)
	assert.Contains(t, divergentes[0].Descricao, "ORC-002")

	defasadas := porTipo(relatorio, TipoComissaoDefasada)
	require.Len(t, defasadas, 1)
	assert.Equal(t, uint(200), defasadas[0].ComissaoID)
}

func TestAuditoriaNaoApontaExcessoDeRecebimento(t *testing.T) {
	// Etiqueta em pago_40 com 90% quitado não é divergência: só a direção
	// "etiqueta acima da realidade" entra no relatório.
	fonte := &fakeFonte{
		orcamentos: []orcamento.Orcamento{
			{ID: 1, Codigo: "ORC-001", Status: orcamento.StatusPago40, ValorBruto: 1000},
		},
		contas: []contareceber.ContaReceber{
			{ID: 10, OrcamentoID: ref(1), ValorTotal: 1000, ValorPago: 900, Status: contareceber.StatusParcial},
		},
		ordens: []ordemproducao.OrdemProducao{
			{ID: 100, OrcamentoID: 1, StatusProducao: ordemproducao.StatusEmProducao},
		},
	}

	relatorio, err := NewAuditor(fonte, nil).Executar()
	require.NoError(t, err)
	assert.Empty(t, porTipo(relatorio, TipoStatusDivergente))
}

func TestAuditoriaIdempotente(t *testing.T) {
	fonte := montarFonte()
	auditor := NewAuditor(fonte, nil)

	primeiro, err := auditor.Executar()
	require.NoError(t, err)
	segundo, err := auditor.Executar()
	require.NoError(t, err)

	assert.Equal(t, primeiro.Inconsistencias, segundo.Inconsistencias)
	assert.Equal(t, primeiro.Criticas, segundo.Criticas)
}

func TestAuditoriaOrdenacaoPorSeveridade(t *testing.T) {
	relatorio, err := NewAuditor(montarFonte(), nil).Executar()
	require.NoError(t, err)

	peso := map[Severidade]int{SeveridadeCritica: 0, SeveridadeAlta: 1, SeveridadeMedia: 2}
	for i := 1; i < len(relatorio.Inconsistencias); i++ {
		anterior := peso[relatorio.Inconsistencias[i-1].Severidade]
		atual := peso[relatorio.Inconsistencias[i].Severidade]
		assert.LessOrEqual(t, anterior, atual)
	}
}

func TestAuditoriaDadosCoerentes(t *testing.T) {
	fonte := &fakeFonte{
		orcamentos: []orcamento.Orcamento{
			{ID: 1, Codigo: "ORC-001", Status: orcamento.StatusEnviado, ValorBruto: 1000},
		},
	}

	relatorio, err := NewAuditor(fonte, nil).Executar()
	require.NoError(t, err)
	assert.Zero(t, relatorio.Total)
	assert.Empty(t, relatorio.Inconsistencias)
}

func TestAuditoriaFalhaDeFonte(t *testing.T) {
	fonte := &fakeFonte{erro: errors.New("banco indisponível")}

	_, err := NewAuditor(fonte, nil).Executar()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "banco indisponível")
}
