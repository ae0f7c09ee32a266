// internal/margem/fonte_gorm.go
package margem

import (
	"github.com/decorart/api-financeiro/internal/contapagar"
	"github.com/decorart/api-financeiro/internal/contareceber"
	"github.com/decorart/api-financeiro/internal/orcamento"
	"gorm.io/gorm"
)

type fonteGorm struct {
	db *gorm.DB
}

// NewFonte cria a fonte de dados do relatório de margem sobre o banco.
func NewFonte(db *gorm.DB) Fonte {
	return &fonteGorm{db: db}
}

func (f *fonteGorm) Orcamentos(filtro Filtro) ([]orcamento.Orcamento, error) {
	consulta := f.db.Order("id")
	if filtro.Status != "" {
		consulta = consulta.Where("status = ?", filtro.Status)
	}
	if filtro.ClienteID != 0 {
		consulta = consulta.Where("cliente_id = ?", filtro.ClienteID)
	}

	var orcamentos []orcamento.Orcamento
	err := consulta.Find(&orcamentos).Error
	return orcamentos, err
}

func (f *fonteGorm) ContasReceber() ([]contareceber.ContaReceber, error) {
	var contas []contareceber.ContaReceber
	err := f.db.Where("orcamento_id IS NOT NULL").Find(&contas).Error
	return contas, err
}

func (f *fonteGorm) ContasPagarPagas() ([]contapagar.ContaPagar, error) {
	var contas []contapagar.ContaPagar
	err := f.db.Where("status = ? AND orcamento_id IS NOT NULL", contapagar.StatusPago).Find(&contas).Error
	return contas, err
}
