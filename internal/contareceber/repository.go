// internal/contareceber/repository.go
package contareceber

import (
	"github.com/decorart/api-financeiro/internal/parcela"
	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de Contas a Receber.
type Repository struct {
	DB *gorm.DB
}

// NewRepository instancia um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// WithDB retorna uma cópia do repo usando um *gorm.DB específico (ex.: tx).
func (r *Repository) WithDB(db *gorm.DB) *Repository {
	if db == nil {
		db = r.DB
	}
	return &Repository{DB: db}
}

// FindByID busca uma conta pelo seu ID.
func (r *Repository) FindByID(id uint) (*ContaReceber, error) {
	var conta ContaReceber
	if err := r.DB.First(&conta, id).Error; err != nil {
		return nil, err
	}
	return &conta, nil
}

// FindByOrcamentoID busca a conta vinculada a um orçamento.
func (r *Repository) FindByOrcamentoID(orcamentoID uint) (*ContaReceber, error) {
	var conta ContaReceber
	if err := r.DB.Where("orcamento_id = ?", orcamentoID).First(&conta).Error; err != nil {
		return nil, err
	}
	return &conta, nil
}

// ListAll lista todas as contas com suas parcelas.
func (r *Repository) ListAll() ([]ContaReceber, error) {
	var contas []ContaReceber
	err := r.DB.Preload("Parcelas").Order("created_at DESC").Find(&contas).Error
	return contas, err
}

// Update atualiza todos os campos de uma conta existente (Save exige PK).
func (r *Repository) Update(conta *ContaReceber) error {
	return r.DB.Save(conta).Error
}

/* ======================= Soma e recálculo do valor_pago ======================= */

// SumParcelasPagas soma os valores das parcelas pagas da conta.
// Se db == nil, usa o r.DB. Permite usar dentro de transação.
func (r *Repository) SumParcelasPagas(db *gorm.DB, contaID uint) (float64, error) {
	if db == nil {
		db = r.DB
	}
	var total float64
	err := db.Model(&parcela.Parcela{}).
		Where("conta_receber_id = ? AND status = ?", contaID, parcela.StatusPago).
		Select("COALESCE(SUM(valor), 0)").
		Scan(&total).Error
	return total, err
}

// RecalcValorPago recalcula valor_pago e o status da conta a partir das
// parcelas pagas. Se db == nil, usa o r.DB.
func (r *Repository) RecalcValorPago(db *gorm.DB, contaID uint) error {
	if db == nil {
		db = r.DB
	}
	total, err := r.SumParcelasPagas(db, contaID)
	if err != nil {
		return err
	}

	var conta ContaReceber
	if err := db.First(&conta, contaID).Error; err != nil {
		return err
	}

	status := StatusParcial
	if total <= 0 {
		status = StatusPendente
	} else if total >= conta.ValorTotal-0.01 {
		status = StatusPago
	}

	return db.Model(&ContaReceber{}).
		Where("id = ?", contaID).
		Updates(map[string]interface{}{"valor_pago": total, "status": status}).Error
}
