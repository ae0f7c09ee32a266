package margem

import (
	"errors"
	"testing"

	"github.com/decorart/api-financeiro/internal/contapagar"
	"github.com/decorart/api-financeiro/internal/contareceber"
	"github.com/decorart/api-financeiro/internal/orcamento"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFonte struct {
	orcamentos []orcamento.Orcamento
	contas     []contareceber.ContaReceber
	pagas      []contapagar.ContaPagar
	erro       error
}

func (f *fakeFonte) Orcamentos(filtro Filtro) ([]orcamento.Orcamento, error) {
	if f.erro != nil {
		return nil, f.erro
	}
	var out []orcamento.Orcamento
	for _, o := range f.orcamentos {
		if filtro.Status != "" && o.Status != filtro.Status {
			continue
		}
		if filtro.ClienteID != 0 && o.ClienteID != filtro.ClienteID {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeFonte) ContasReceber() ([]contareceber.ContaReceber, error) {
	return f.contas, f.erro
}

func (f *fakeFonte) ContasPagarPagas() ([]contapagar.ContaPagar, error) {
	return f.pagas, f.erro
}

func ref(v uint) *uint { return &v }

func TestMargemRealizadaAcimaDaProjetada(t *testing.T) {
	fonte := &fakeFonte{
		orcamentos: []orcamento.Orcamento{
			{ID: 1, Codigo: "ORC-001", Status: orcamento.StatusPago, MargemProjetada: 38},
		},
		contas: []contareceber.ContaReceber{
			{ID: 10, OrcamentoID: ref(1), ValorTotal: 4500, ValorPago: 4500},
		},
		pagas: []contapagar.ContaPagar{
			{ID: 20, OrcamentoID: ref(1), Valor: 2500, Status: contapagar.StatusPago},
		},
	}

	relatorio, err := NewReporter(fonte, nil).Gerar(Filtro{}, LimiarCriticoPadrao)
	require.NoError(t, err)
	require.Len(t, relatorio.Orcamentos, 1)

	m := relatorio.Orcamentos[0]
	require.NotNil(t, m.MargemRealizada)
	assert.InDelta(t, 44.44, *m.MargemRealizada, 0.01)
	require.NotNil(t, m.Diferenca)
	assert.InDelta(t, 6.44, *m.Diferenca, 0.01)
	assert.False(t, m.Critico)
	assert.Empty(t, relatorio.Criticos)
}

func TestMargemSemReceitaFicaIndefinida(t *testing.T) {
	fonte := &fakeFonte{
		orcamentos: []orcamento.Orcamento{
			{ID: 1, Codigo: "ORC-001", Status: orcamento.StatusEnviado, MargemProjetada: 40},
		},
		pagas: []contapagar.ContaPagar{
			// Custo já pago antes de qualquer recebimento.
			{ID: 20, OrcamentoID: ref(1), Valor: 800, Status: contapagar.StatusPago},
		},
	}

	relatorio, err := NewReporter(fonte, nil).Gerar(Filtro{}, LimiarCriticoPadrao)
	require.NoError(t, err)
	require.Len(t, relatorio.Orcamentos, 1)

	m := relatorio.Orcamentos[0]
	assert.Nil(t, m.MargemRealizada)
	assert.Nil(t, m.Diferenca)
	assert.False(t, m.Critico)
	assert.Zero(t, relatorio.ComReceita)
	assert.Nil(t, relatorio.MediaRealizada)
	assert.InDelta(t, 40.0, relatorio.MediaProjetada, 0.001)
}

func TestMargemListaCriticosOrdenados(t *testing.T) {
	fonte := &fakeFonte{
		orcamentos: []orcamento.Orcamento{
			// Realizada 10%, projetada 45: queda de 35 pontos.
			{ID: 1, Codigo: "ORC-001", Status: orcamento.StatusPago, MargemProjetada: 45},
			// Realizada 20%, projetada 35: queda de 15 pontos.
			{ID: 2, Codigo: "ORC-002", Status: orcamento.StatusPago, MargemProjetada: 35},
			// Realizada 42%, projetada 40: dentro do limiar.
			{ID: 3, Codigo: "ORC-003", Status: orcamento.StatusPago, MargemProjetada: 40},
		},
		contas: []contareceber.ContaReceber{
			{ID: 10, OrcamentoID: ref(1), ValorTotal: 1000, ValorPago: 1000},
			{ID: 11, OrcamentoID: ref(2), ValorTotal: 2000, ValorPago: 2000},
			{ID: 12, OrcamentoID: ref(3), ValorTotal: 5000, ValorPago: 5000},
		},
		pagas: []contapagar.ContaPagar{
			{ID: 20, OrcamentoID: ref(1), Valor: 900, Status: contapagar.StatusPago},
			{ID: 21, OrcamentoID: ref(2), Valor: 1600, Status: contapagar.StatusPago},
			{ID: 22, OrcamentoID: ref(3), Valor: 2900, Status: contapagar.StatusPago},
		},
	}

	relatorio, err := NewReporter(fonte, nil).Gerar(Filtro{}, LimiarCriticoPadrao)
	require.NoError(t, err)

	require.Len(t, relatorio.Criticos, 2)
	assert.Equal(t, "ORC-001", relatorio.Criticos[0].Codigo)
	assert.Equal(t, "ORC-002", relatorio.Criticos[1].Codigo)
	assert.True(t, *relatorio.Criticos[0].Diferenca < *relatorio.Criticos[1].Diferenca)
}

func TestMargemSomaCustosEReceitasPorOrcamento(t *testing.T) {
	fonte := &fakeFonte{
		orcamentos: []orcamento.Orcamento{
			{ID: 1, Codigo: "ORC-001", Status: orcamento.StatusPagoParcial, MargemProjetada: 30},
		},
		contas: []contareceber.ContaReceber{
			{ID: 10, OrcamentoID: ref(1), ValorTotal: 3000, ValorPago: 1500},
			{ID: 11, OrcamentoID: ref(1), ValorTotal: 1000, ValorPago: 500},
		},
		pagas: []contapagar.ContaPagar{
			{ID: 20, OrcamentoID: ref(1), Valor: 400, Status: contapagar.StatusPago},
			{ID: 21, OrcamentoID: ref(1), Valor: 600, Status: contapagar.StatusPago},
		},
	}

	relatorio, err := NewReporter(fonte, nil).Gerar(Filtro{}, LimiarCriticoPadrao)
	require.NoError(t, err)
	require.Len(t, relatorio.Orcamentos, 1)

	m := relatorio.Orcamentos[0]
	assert.InDelta(t, 2000.0, m.Receita, 0.001)
	assert.InDelta(t, 1000.0, m.CustoPago, 0.001)
	require.NotNil(t, m.MargemRealizada)
	assert.InDelta(t, 50.0, *m.MargemRealizada, 0.001)
}

func TestMargemRespeitaFiltro(t *testing.T) {
	fonte := &fakeFonte{
		orcamentos: []orcamento.Orcamento{
			{ID: 1, Codigo: "ORC-001", ClienteID: 7, Status: orcamento.StatusPago, MargemProjetada: 30},
			{ID: 2, Codigo: "ORC-002", ClienteID: 8, Status: orcamento.StatusEnviado, MargemProjetada: 50},
		},
	}

	relatorio, err := NewReporter(fonte, nil).Gerar(Filtro{Status: orcamento.StatusPago}, LimiarCriticoPadrao)
	require.NoError(t, err)
	require.Len(t, relatorio.Orcamentos, 1)
	assert.Equal(t, "ORC-001", relatorio.Orcamentos[0].Codigo)
	assert.InDelta(t, 30.0, relatorio.MediaProjetada, 0.001)
}

func TestMargemFalhaDeFonte(t *testing.T) {
	fonte := &fakeFonte{erro: errors.New("banco indisponível")}

	_, err := NewReporter(fonte, nil).Gerar(Filtro{}, LimiarCriticoPadrao)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "banco indisponível")
}
