package conciliacao

import (
	"context"
	"fmt"
	"testing"

	"github.com/decorart/api-financeiro/internal/contapagar"
	"github.com/decorart/api-financeiro/internal/contareceber"
	"github.com/decorart/api-financeiro/internal/lancamento"
	"github.com/decorart/api-financeiro/internal/movimentobancario"
	"github.com/decorart/api-financeiro/internal/orcamento"
	"github.com/decorart/api-financeiro/internal/parcela"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ============================== Fake do Store ============================== */

// fakeStore implementa Store em memória, com semântica de cópia na leitura e
// na escrita (como um banco de verdade) e rollback por clonagem.
type fakeStore struct {
	movimentos    map[uint]*movimentobancario.MovimentoBancario
	parcelas      map[uint]*parcela.Parcela
	contasReceber map[uint]*contareceber.ContaReceber
	contasPagar   map[uint]*contapagar.ContaPagar
	orcamentos    map[uint]*orcamento.Orcamento
	lancamentos   []*lancamento.Lancamento
	proximoID     uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		movimentos:    map[uint]*movimentobancario.MovimentoBancario{},
		parcelas:      map[uint]*parcela.Parcela{},
		contasReceber: map[uint]*contareceber.ContaReceber{},
		contasPagar:   map[uint]*contapagar.ContaPagar{},
		orcamentos:    map[uint]*orcamento.Orcamento{},
	}
}

func clonarMapa[T any](m map[uint]*T) map[uint]*T {
	out := make(map[uint]*T, len(m))
	for k, v := range m {
		c := *v
		out[k] = &c
	}
	return out
}

func (f *fakeStore) clone() *fakeStore {
	c := &fakeStore{
		movimentos:    clonarMapa(f.movimentos),
		parcelas:      clonarMapa(f.parcelas),
		contasReceber: clonarMapa(f.contasReceber),
		contasPagar:   clonarMapa(f.contasPagar),
		orcamentos:    clonarMapa(f.orcamentos),
		proximoID:     f.proximoID,
	}
	c.lancamentos = append(c.lancamentos, f.lancamentos...)
	return c
}

func (f *fakeStore) Transacao(fn func(tx Store) error) error {
	clone := f.clone()
	if err := fn(clone); err != nil {
		return err
	}
	*f = *clone
	return nil
}

func (f *fakeStore) MovimentoPorID(id uint) (*movimentobancario.MovimentoBancario, error) {
	m, ok := f.movimentos[id]
	if !ok {
		return nil, fmt.Errorf("%w: movimento %d", ErrNaoEncontrado, id)
	}
	c := *m
	return &c, nil
}

func (f *fakeStore) SalvarMovimento(m *movimentobancario.MovimentoBancario) error {
	c := *m
	f.movimentos[m.ID] = &c
	return nil
}

func (f *fakeStore) ParcelaPorID(id uint) (*parcela.Parcela, error) {
	p, ok := f.parcelas[id]
	if !ok {
		return nil, fmt.Errorf("%w: parcela %d", ErrNaoEncontrado, id)
	}
	c := *p
	return &c, nil
}

func (f *fakeStore) SalvarParcela(p *parcela.Parcela) error {
	c := *p
	f.parcelas[p.ID] = &c
	return nil
}

func (f *fakeStore) ContaReceberPorID(id uint) (*contareceber.ContaReceber, error) {
	cr, ok := f.contasReceber[id]
	if !ok {
		return nil, fmt.Errorf("%w: conta a receber %d", ErrNaoEncontrado, id)
	}
	c := *cr
	return &c, nil
}

func (f *fakeStore) SalvarContaReceber(c *contareceber.ContaReceber) error {
	cp := *c
	f.contasReceber[c.ID] = &cp
	return nil
}

func (f *fakeStore) ContaPagarPorID(id uint) (*contapagar.ContaPagar, error) {
	cp, ok := f.contasPagar[id]
	if !ok {
		return nil, fmt.Errorf("%w: conta a pagar %d", ErrNaoEncontrado, id)
	}
	c := *cp
	return &c, nil
}

func (f *fakeStore) SalvarContaPagar(c *contapagar.ContaPagar) error {
	cp := *c
	f.contasPagar[c.ID] = &cp
	return nil
}

func (f *fakeStore) OrcamentoPorID(id uint) (*orcamento.Orcamento, error) {
	o, ok := f.orcamentos[id]
	if !ok {
		return nil, fmt.Errorf("%w: orçamento %d", ErrNaoEncontrado, id)
	}
	c := *o
	return &c, nil
}

func (f *fakeStore) SalvarOrcamento(o *orcamento.Orcamento) error {
	c := *o
	f.orcamentos[o.ID] = &c
	return nil
}

func (f *fakeStore) CriarLancamento(l *lancamento.Lancamento) error {
	f.proximoID++
	l.ID = f.proximoID
	c := *l
	f.lancamentos = append(f.lancamentos, &c)
	return nil
}

/* ============================== Cenário base ============================== */

// montarCenario cria um orçamento de 4500 com conta a receber em duas
// parcelas de 2250 e um crédito bancário compatível com a primeira.
func montarCenario() *fakeStore {
	f := newFakeStore()

	orcID := uint(1)
	f.orcamentos[1] = &orcamento.Orcamento{
		ID: 1, Codigo: "ORC-2025-014", Cliente: "Atelier Vila Flor",
		Status: orcamento.StatusEnviado, ValorBruto: 5000, ValorLiquido: 4500,
	}
	f.contasReceber[10] = &contareceber.ContaReceber{
		ID: 10, OrcamentoID: &orcID, ValorTotal: 4500, Status: contareceber.StatusPendente,
	}
	f.parcelas[101] = &parcela.Parcela{
		ID: 101, ContaReceberID: 10, Numero: 1, Valor: 2250,
		DataVencimento: dia(10), Status: parcela.StatusPendente,
	}
	f.parcelas[102] = &parcela.Parcela{
		ID: 102, ContaReceberID: 10, Numero: 2, Valor: 2250,
		DataVencimento: dia(25), Status: parcela.StatusPendente,
	}
	f.movimentos[201] = &movimentobancario.MovimentoBancario{
		ID: 201, Descricao: "PIX RECEBIDO", Valor: 2250,
		Direcao: movimentobancario.DirecaoCredito, Data: dia(11),
	}
	f.movimentos[202] = &movimentobancario.MovimentoBancario{
		ID: 202, Descricao: "TED RECEBIDA", Valor: 2250,
		Direcao: movimentobancario.DirecaoCredito, Data: dia(26),
	}
	return f
}

/* ============================== Testes ============================== */

func TestAplicarLoteQuitaParcelaERecalculaOrcamento(t *testing.T) {
	f := montarCenario()
	servico := NewServicoLote(f, nil)

	resultado := servico.AplicarLote(context.Background(), []ItemLote{
		{MovimentoID: 201, TipoAlvo: AlvoParcela, AlvoID: 101, Valor: 2250},
	})

	require.Equal(t, 1, resultado.Processados)
	require.Equal(t, 1, resultado.Sucesso)
	require.Equal(t, 0, resultado.Falha)

	// Lançamento criado com vínculo de parcela e descrição composta.
	require.Len(t, f.lancamentos, 1)
	l := f.lancamentos[0]
	assert.Equal(t, lancamento.VinculoParcela, l.TipoVinculo)
	require.NotNil(t, l.VinculoID)
	assert.Equal(t, uint(101), *l.VinculoID)
	assert.Contains(t, l.Descricao, "ORC-2025-014")
	assert.Contains(t, l.Descricao, "Atelier Vila Flor")

	// Movimento conciliado e vinculado uma única vez.
	mv := f.movimentos[201]
	assert.True(t, mv.Conciliado)
	require.NotNil(t, mv.LancamentoID)
	assert.Equal(t, l.ID, *mv.LancamentoID)

	// Parcela paga com a data do movimento.
	p := f.parcelas[101]
	assert.Equal(t, parcela.StatusPago, p.Status)
	require.NotNil(t, p.DataPagamento)
	assert.Equal(t, dia(11), *p.DataPagamento)

	// Conta parcial: 2250 de 4500.
	conta := f.contasReceber[10]
	assert.InDelta(t, 2250.0, conta.ValorPago, 0.001)
	assert.Equal(t, contareceber.StatusParcial, conta.Status)

	// 2250/4500 = 50%: a maior faixa atingida é pago_parcial.
	assert.Equal(t, orcamento.StatusPagoParcial, f.orcamentos[1].Status)
}

func TestAplicarLoteQuitacaoTotal(t *testing.T) {
	f := montarCenario()
	servico := NewServicoLote(f, nil)

	resultado := servico.AplicarLote(context.Background(), []ItemLote{
		{MovimentoID: 201, TipoAlvo: AlvoParcela, AlvoID: 101, Valor: 2250},
		{MovimentoID: 202, TipoAlvo: AlvoParcela, AlvoID: 102, Valor: 2250},
	})

	assert.Equal(t, 2, resultado.Sucesso)
	assert.Equal(t, contareceber.StatusPago, f.contasReceber[10].Status)
	assert.Equal(t, orcamento.StatusPago, f.orcamentos[1].Status)
}

func TestAplicarLoteIsolaFalhas(t *testing.T) {
	f := montarCenario()
	servico := NewServicoLote(f, nil)

	resultado := servico.AplicarLote(context.Background(), []ItemLote{
		{MovimentoID: 201, TipoAlvo: AlvoParcela, AlvoID: 101, Valor: 2250},
		{MovimentoID: 202, TipoAlvo: AlvoParcela, AlvoID: 999, Valor: 2250}, // parcela inexistente
		{MovimentoID: 202, TipoAlvo: AlvoParcela, AlvoID: 102, Valor: 2250},
	})

	require.Equal(t, 3, resultado.Processados)
	assert.Equal(t, 2, resultado.Sucesso)
	assert.Equal(t, 1, resultado.Falha)

	require.Len(t, resultado.Detalhes, 3)
	assert.True(t, resultado.Detalhes[0].Sucesso)
	assert.False(t, resultado.Detalhes[1].Sucesso)
	assert.Contains(t, resultado.Detalhes[1].Erro, "não encontrado")
	assert.True(t, resultado.Detalhes[2].Sucesso)

	// Os efeitos dos itens bem-sucedidos foram integralmente aplicados.
	assert.Len(t, f.lancamentos, 2)
	assert.Equal(t, contareceber.StatusPago, f.contasReceber[10].Status)
}

func TestAplicarLoteRejeitaMovimentoJaConciliado(t *testing.T) {
	f := montarCenario()
	f.movimentos[201].Conciliado = true
	servico := NewServicoLote(f, nil)

	resultado := servico.AplicarLote(context.Background(), []ItemLote{
		{MovimentoID: 201, TipoAlvo: AlvoParcela, AlvoID: 101, Valor: 2250},
	})

	assert.Equal(t, 1, resultado.Falha)
	assert.Contains(t, resultado.Detalhes[0].Erro, "já conciliado")
	// Nada persistiu.
	assert.Empty(t, f.lancamentos)
	assert.Equal(t, parcela.StatusPendente, f.parcelas[101].Status)
}

func TestAplicarLoteRejeitaDirecaoIncompativel(t *testing.T) {
	f := montarCenario()
	f.movimentos[201].Direcao = movimentobancario.DirecaoDebito
	servico := NewServicoLote(f, nil)

	resultado := servico.AplicarLote(context.Background(), []ItemLote{
		{MovimentoID: 201, TipoAlvo: AlvoParcela, AlvoID: 101, Valor: 2250},
	})

	assert.Equal(t, 1, resultado.Falha)
	assert.Contains(t, resultado.Detalhes[0].Erro, "crédito")
}

func TestAplicarLoteRejeitaValorInvalido(t *testing.T) {
	f := montarCenario()
	servico := NewServicoLote(f, nil)

	resultado := servico.AplicarLote(context.Background(), []ItemLote{
		{MovimentoID: 201, TipoAlvo: AlvoParcela, AlvoID: 101, Valor: 0},
		{MovimentoID: 201, TipoAlvo: AlvoParcela, AlvoID: 101, Valor: -50},
	})

	assert.Equal(t, 2, resultado.Falha)
	assert.Empty(t, f.lancamentos)
}

func TestAplicarLoteContaPagar(t *testing.T) {
	f := newFakeStore()
	f.contasPagar[30] = &contapagar.ContaPagar{
		ID: 30, Descricao: "Tecido blackout", Valor: 1200,
		DataVencimento: dia(15), Status: contapagar.StatusPendente,
	}
	f.movimentos[301] = &movimentobancario.MovimentoBancario{
		ID: 301, Valor: 1200, Direcao: movimentobancario.DirecaoDebito, Data: dia(16),
	}
	servico := NewServicoLote(f, nil)

	resultado := servico.AplicarLote(context.Background(), []ItemLote{
		{MovimentoID: 301, TipoAlvo: AlvoContaPagar, AlvoID: 30, Valor: 1200},
	})

	require.Equal(t, 1, resultado.Sucesso)

	cp := f.contasPagar[30]
	assert.Equal(t, contapagar.StatusPago, cp.Status)
	require.NotNil(t, cp.DataPagamento)
	assert.Equal(t, dia(16), *cp.DataPagamento)

	require.Len(t, f.lancamentos, 1)
	assert.Equal(t, lancamento.VinculoContaPagar, f.lancamentos[0].TipoVinculo)
	assert.Contains(t, f.lancamentos[0].Descricao, "Tecido blackout")
	assert.True(t, f.movimentos[301].Conciliado)
}

func TestAplicarLoteRespeitaContexto(t *testing.T) {
	f := montarCenario()
	servico := NewServicoLote(f, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resultado := servico.AplicarLote(ctx, []ItemLote{
		{MovimentoID: 201, TipoAlvo: AlvoParcela, AlvoID: 101, Valor: 2250},
	})

	assert.Equal(t, 0, resultado.Processados)
	assert.Empty(t, f.lancamentos)
}

func TestConciliacaoRoundTrip(t *testing.T) {
	// Depois de aplicar um pareamento aceito, o mesmo movimento não pode
	// voltar como candidato: ele está conciliado.
	f := montarCenario()
	servico := NewServicoLote(f, nil)

	alvos := []Alvo{{Tipo: AlvoParcela, ID: 101, Valor: 2250, DataPrevista: dia(10)}}
	movimentosAntes := []movimentobancario.MovimentoBancario{*f.movimentos[201]}
	antes := BuscarCandidatos(movimentosAntes, alvos)
	require.Len(t, antes[0].Candidatos, 1)

	resultado := servico.AplicarLote(context.Background(), []ItemLote{
		{MovimentoID: 201, TipoAlvo: AlvoParcela, AlvoID: 101, Valor: 2250},
	})
	require.Equal(t, 1, resultado.Sucesso)

	movimentosDepois := []movimentobancario.MovimentoBancario{*f.movimentos[201]}
	depois := BuscarCandidatos(movimentosDepois, alvos)
	assert.Empty(t, depois[0].Candidatos)
}
