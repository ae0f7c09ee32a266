// internal/conciliacao/store.go
package conciliacao

import (
	"github.com/decorart/api-financeiro/internal/contapagar"
	"github.com/decorart/api-financeiro/internal/contareceber"
	"github.com/decorart/api-financeiro/internal/lancamento"
	"github.com/decorart/api-financeiro/internal/movimentobancario"
	"github.com/decorart/api-financeiro/internal/orcamento"
	"github.com/decorart/api-financeiro/internal/parcela"
)

// Store é o contrato de armazenamento que o lote de conciliação consome.
// Transacao executa fn dentro de uma unidade de trabalho: ou todos os
// passos de um item persistem, ou nenhum. A implementação gorm trava a
// conta a receber (SELECT ... FOR UPDATE) para serializar incrementos
// concorrentes de valor_pago.
type Store interface {
	Transacao(fn func(tx Store) error) error

	MovimentoPorID(id uint) (*movimentobancario.MovimentoBancario, error)
	SalvarMovimento(m *movimentobancario.MovimentoBancario) error

	ParcelaPorID(id uint) (*parcela.Parcela, error)
	SalvarParcela(p *parcela.Parcela) error

	ContaReceberPorID(id uint) (*contareceber.ContaReceber, error)
	SalvarContaReceber(c *contareceber.ContaReceber) error

	ContaPagarPorID(id uint) (*contapagar.ContaPagar, error)
	SalvarContaPagar(c *contapagar.ContaPagar) error

	OrcamentoPorID(id uint) (*orcamento.Orcamento, error)
	SalvarOrcamento(o *orcamento.Orcamento) error

	CriarLancamento(l *lancamento.Lancamento) error
}
