// internal/auditoria/fonte_gorm.go
package auditoria

import (
	"github.com/decorart/api-financeiro/internal/comissao"
	"github.com/decorart/api-financeiro/internal/contareceber"
	"github.com/decorart/api-financeiro/internal/orcamento"
	"github.com/decorart/api-financeiro/internal/ordemproducao"
	"gorm.io/gorm"
)

// fonteGorm carrega o estado completo direto do banco. As leituras não
// travam linha nenhuma: o relatório é consultivo e aceita ver estado
// intermediário de um lote em andamento.
type fonteGorm struct {
	db *gorm.DB
}

// NewFonte cria a fonte de dados da auditoria sobre o banco.
func NewFonte(db *gorm.DB) Fonte {
	return &fonteGorm{db: db}
}

func (f *fonteGorm) Orcamentos() ([]orcamento.Orcamento, error) {
	var orcamentos []orcamento.Orcamento
	err := f.db.Order("id").Find(&orcamentos).Error
	return orcamentos, err
}

func (f *fonteGorm) ContasReceber() ([]contareceber.ContaReceber, error) {
	var contas []contareceber.ContaReceber
	err := f.db.Order("id").Find(&contas).Error
	return contas, err
}

func (f *fonteGorm) OrdensProducao() ([]ordemproducao.OrdemProducao, error) {
	var ordens []ordemproducao.OrdemProducao
	err := f.db.Order("id").Find(&ordens).Error
	return ordens, err
}

func (f *fonteGorm) Comissoes() ([]comissao.Comissao, error) {
	var comissoes []comissao.Comissao
	err := f.db.Where("status = ?", comissao.StatusPendente).Order("id").Find(&comissoes).Error
	return comissoes, err
}
