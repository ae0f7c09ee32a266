// internal/conciliacao/store_gorm.go
package conciliacao

import (
	"errors"
	"fmt"

	"github.com/decorart/api-financeiro/internal/contapagar"
	"github.com/decorart/api-financeiro/internal/contareceber"
	"github.com/decorart/api-financeiro/internal/lancamento"
	"github.com/decorart/api-financeiro/internal/movimentobancario"
	"github.com/decorart/api-financeiro/internal/orcamento"
	"github.com/decorart/api-financeiro/internal/parcela"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// storeGorm implementa Store sobre gorm/PostgreSQL.
type storeGorm struct {
	db *gorm.DB
}

// NewStore cria o Store de produção a partir da conexão gorm.
func NewStore(db *gorm.DB) Store {
	return &storeGorm{db: db}
}

// Transacao abre uma transação e entrega um Store amarrado a ela.
func (s *storeGorm) Transacao(fn func(tx Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&storeGorm{db: tx})
	})
}

// traduz converte erros do gorm para a taxonomia do motor.
func traduz(err error, entidade string, id uint) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %d", ErrNaoEncontrado, entidade, id)
	}
	return fmt.Errorf("%w: %s %d: %v", ErrTransiente, entidade, id, err)
}

func (s *storeGorm) MovimentoPorID(id uint) (*movimentobancario.MovimentoBancario, error) {
	var m movimentobancario.MovimentoBancario
	if err := s.db.First(&m, id).Error; err != nil {
		return nil, traduz(err, "movimento", id)
	}
	return &m, nil
}

func (s *storeGorm) SalvarMovimento(m *movimentobancario.MovimentoBancario) error {
	return traduz(s.db.Save(m).Error, "movimento", m.ID)
}

func (s *storeGorm) ParcelaPorID(id uint) (*parcela.Parcela, error) {
	var p parcela.Parcela
	if err := s.db.First(&p, id).Error; err != nil {
		return nil, traduz(err, "parcela", id)
	}
	return &p, nil
}

func (s *storeGorm) SalvarParcela(p *parcela.Parcela) error {
	return traduz(s.db.Save(p).Error, "parcela", p.ID)
}

// ContaReceberPorID trava a linha (FOR UPDATE) para que dois lotes
// concorrentes não percam incrementos de valor_pago.
func (s *storeGorm) ContaReceberPorID(id uint) (*contareceber.ContaReceber, error) {
	var c contareceber.ContaReceber
	err := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, id).Error
	if err != nil {
		return nil, traduz(err, "conta a receber", id)
	}
	return &c, nil
}

func (s *storeGorm) SalvarContaReceber(c *contareceber.ContaReceber) error {
	return traduz(s.db.Save(c).Error, "conta a receber", c.ID)
}

func (s *storeGorm) ContaPagarPorID(id uint) (*contapagar.ContaPagar, error) {
	var c contapagar.ContaPagar
	if err := s.db.First(&c, id).Error; err != nil {
		return nil, traduz(err, "conta a pagar", id)
	}
	return &c, nil
}

func (s *storeGorm) SalvarContaPagar(c *contapagar.ContaPagar) error {
	return traduz(s.db.Save(c).Error, "conta a pagar", c.ID)
}

func (s *storeGorm) OrcamentoPorID(id uint) (*orcamento.Orcamento, error) {
	var o orcamento.Orcamento
	if err := s.db.First(&o, id).Error; err != nil {
		return nil, traduz(err, "orçamento", id)
	}
	return &o, nil
}

func (s *storeGorm) SalvarOrcamento(o *orcamento.Orcamento) error {
	return traduz(s.db.Save(o).Error, "orçamento", o.ID)
}

func (s *storeGorm) CriarLancamento(l *lancamento.Lancamento) error {
	return traduz(s.db.Create(l).Error, "lançamento", l.ID)
}
