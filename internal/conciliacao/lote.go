// internal/conciliacao/lote.go
package conciliacao

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/decorart/api-financeiro/internal/contapagar"
	"github.com/decorart/api-financeiro/internal/contareceber"
	"github.com/decorart/api-financeiro/internal/lancamento"
	"github.com/decorart/api-financeiro/internal/movimentobancario"
	"github.com/decorart/api-financeiro/internal/orcamento"
	"github.com/decorart/api-financeiro/internal/parcela"
	"github.com/decorart/api-financeiro/internal/utils"
	"github.com/sirupsen/logrus"
)

// ItemLote é um pareamento aceito pelo operador (ou por política externa).
type ItemLote struct {
	MovimentoID uint
	TipoAlvo    TipoAlvo
	AlvoID      uint
	Valor       float64
	Data        time.Time // data efetiva do pagamento; zero usa a do movimento
}

// DetalheItem registra o desfecho de um item do lote.
type DetalheItem struct {
	Indice       int      `json:"indice"`
	MovimentoID  uint     `json:"movimentoId"`
	TipoAlvo     TipoAlvo `json:"tipoAlvo"`
	AlvoID       uint     `json:"alvoId"`
	Sucesso      bool     `json:"sucesso"`
	LancamentoID uint     `json:"lancamentoId,omitempty"`
	Erro         string   `json:"erro,omitempty"`
}

// ResultadoLote resume o lote. Falha parcial nunca é silenciosa: o chamador
// recebe as contagens e os detalhes para reapresentar os itens que falharam.
type ResultadoLote struct {
	Processados int           `json:"processados"`
	Sucesso     int           `json:"sucesso"`
	Falha       int           `json:"falha"`
	Detalhes    []DetalheItem `json:"detalhes"`
}

// ServicoLote aplica lotes de conciliação aceitos.
type ServicoLote struct {
	store Store
	log   *logrus.Logger
}

// NewServicoLote cria o serviço de lote.
func NewServicoLote(store Store, log *logrus.Logger) *ServicoLote {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ServicoLote{store: store, log: log}
}

// AplicarLote aplica cada item de forma independente, cada um dentro da sua
// própria transação: a falha de um item não desfaz nem bloqueia os demais.
// O contexto é verificado entre itens (nunca no meio de um).
func (s *ServicoLote) AplicarLote(ctx context.Context, itens []ItemLote) ResultadoLote {
	resultado := ResultadoLote{Detalhes: make([]DetalheItem, 0, len(itens))}

	for i, item := range itens {
		if ctx.Err() != nil {
			s.log.WithField("restantes", len(itens)-i).Warn("lote interrompido pelo contexto")
			break
		}

		detalhe := DetalheItem{
			Indice:      i,
			MovimentoID: item.MovimentoID,
			TipoAlvo:    item.TipoAlvo,
			AlvoID:      item.AlvoID,
		}

		var lancamentoID uint
		err := s.store.Transacao(func(tx Store) error {
			id, err := s.aplicarItem(tx, item)
			lancamentoID = id
			return err
		})

		resultado.Processados++
		if err != nil {
			detalhe.Erro = err.Error()
			resultado.Falha++
			s.log.WithFields(logrus.Fields{
				"indice":    i,
				"movimento": item.MovimentoID,
				"alvo":      fmt.Sprintf("%s/%d", item.TipoAlvo, item.AlvoID),
			}).WithError(err).Warn("item de conciliação falhou")
		} else {
			detalhe.Sucesso = true
			detalhe.LancamentoID = lancamentoID
			resultado.Sucesso++
		}
		resultado.Detalhes = append(resultado.Detalhes, detalhe)
	}

	s.log.WithFields(logrus.Fields{
		"processados": resultado.Processados,
		"sucesso":     resultado.Sucesso,
		"falha":       resultado.Falha,
	}).Info("lote de conciliação aplicado")

	return resultado
}

// aplicarItem executa os quatro passos de um pareamento dentro da transação
// recebida: cria o lançamento, concilia o movimento, quita o alvo e
// recalcula conta e orçamento.
func (s *ServicoLote) aplicarItem(tx Store, item ItemLote) (uint, error) {
	if item.Valor <= 0 || math.IsNaN(item.Valor) || math.IsInf(item.Valor, 0) {
		return 0, fmt.Errorf("%w: %.2f", ErrValorInvalido, item.Valor)
	}

	mv, err := tx.MovimentoPorID(item.MovimentoID)
	if err != nil {
		return 0, err
	}
	if mv.Conciliado {
		return 0, fmt.Errorf("%w: movimento %d", ErrJaConciliado, mv.ID)
	}
	if mv.Ignorado {
		return 0, fmt.Errorf("%w: movimento %d está ignorado", ErrViolacaoRestricao, mv.ID)
	}

	data := item.Data
	if data.IsZero() {
		data = mv.Data
	}

	switch item.TipoAlvo {
	case AlvoParcela:
		return s.quitarParcela(tx, item, mv, data)
	case AlvoContaPagar:
		return s.quitarContaPagar(tx, item, mv, data)
	}
	return 0, fmt.Errorf("%w: tipo de alvo %q", ErrViolacaoRestricao, item.TipoAlvo)
}

func (s *ServicoLote) quitarParcela(tx Store, item ItemLote, mv *movimentobancario.MovimentoBancario, data time.Time) (uint, error) {
	if mv.Direcao != movimentobancario.DirecaoCredito {
		return 0, fmt.Errorf("%w: parcela exige movimento de crédito", ErrViolacaoRestricao)
	}

	p, err := tx.ParcelaPorID(item.AlvoID)
	if err != nil {
		return 0, err
	}
	if p.Status == parcela.StatusPago {
		return 0, fmt.Errorf("%w: parcela %d já está paga", ErrViolacaoRestricao, p.ID)
	}

	conta, err := tx.ContaReceberPorID(p.ContaReceberID)
	if err != nil {
		return 0, err
	}

	// Orçamento pode não existir (conta órfã); a auditoria aponta, a
	// conciliação segue com descrição genérica.
	var orc *orcamento.Orcamento
	if conta.OrcamentoID != nil {
		orc, err = tx.OrcamentoPorID(*conta.OrcamentoID)
		if err != nil && !ehNaoEncontrado(err) {
			return 0, err
		}
	}

	descricao := fmt.Sprintf("Recebimento parcela %d da conta %d", p.Numero, conta.ID)
	if orc != nil {
		descricao = fmt.Sprintf("Recebimento parcela %d do orçamento %s (%s)", p.Numero, orc.Codigo, orc.Cliente)
	}

	l := lancamento.NovoDeParcela(p.ID, descricao, item.Valor, data, mv.Direcao)
	if err := tx.CriarLancamento(l); err != nil {
		return 0, err
	}

	mv.Conciliado = true
	mv.LancamentoID = &l.ID
	if err := tx.SalvarMovimento(mv); err != nil {
		return 0, err
	}

	p.Status = parcela.StatusPago
	p.DataPagamento = &data
	if err := tx.SalvarParcela(p); err != nil {
		return 0, err
	}

	conta.ValorPago = utils.Round2(conta.ValorPago + p.Valor)
	if conta.Quitada() {
		conta.Status = contareceber.StatusPago
	} else {
		conta.Status = contareceber.StatusParcial
	}
	if err := tx.SalvarContaReceber(conta); err != nil {
		return 0, err
	}

	if orc != nil && conta.ValorTotal > 0 {
		fracao := conta.ValorPago / conta.ValorTotal
		if novo, ok := orcamento.StatusParaFracao(fracao); ok && novo != orc.Status {
			orc.Status = novo
			if err := tx.SalvarOrcamento(orc); err != nil {
				return 0, err
			}
		}
	}

	return l.ID, nil
}

func (s *ServicoLote) quitarContaPagar(tx Store, item ItemLote, mv *movimentobancario.MovimentoBancario, data time.Time) (uint, error) {
	if mv.Direcao != movimentobancario.DirecaoDebito {
		return 0, fmt.Errorf("%w: conta a pagar exige movimento de débito", ErrViolacaoRestricao)
	}

	cp, err := tx.ContaPagarPorID(item.AlvoID)
	if err != nil {
		return 0, err
	}
	if cp.Status == contapagar.StatusPago {
		return 0, fmt.Errorf("%w: conta a pagar %d já está paga", ErrViolacaoRestricao, cp.ID)
	}

	descricao := fmt.Sprintf("Pagamento: %s", cp.Descricao)
	if cp.OrcamentoID != nil {
		if orc, err := tx.OrcamentoPorID(*cp.OrcamentoID); err == nil {
			descricao = fmt.Sprintf("Pagamento: %s (orçamento %s)", cp.Descricao, orc.Codigo)
		} else if !ehNaoEncontrado(err) {
			return 0, err
		}
	}

	l := lancamento.NovoDeContaPagar(cp.ID, descricao, item.Valor, data, mv.Direcao)
	if err := tx.CriarLancamento(l); err != nil {
		return 0, err
	}

	mv.Conciliado = true
	mv.LancamentoID = &l.ID
	if err := tx.SalvarMovimento(mv); err != nil {
		return 0, err
	}

	cp.Status = contapagar.StatusPago
	cp.DataPagamento = &data
	if err := tx.SalvarContaPagar(cp); err != nil {
		return 0, err
	}

	return l.ID, nil
}

func ehNaoEncontrado(err error) bool {
	return errors.Is(err, ErrNaoEncontrado)
}
