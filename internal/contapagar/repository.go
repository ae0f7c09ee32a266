// internal/contapagar/repository.go
package contapagar

import (
	"time"

	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de Contas a Pagar.
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
func (r *Repository) FindByID(id uint) (*ContaPagar, error) {
	var conta ContaPagar
	if err := r.DB.First(&conta, id).Error; err != nil {
		return nil, err
	}
	return &conta, nil
}

// ListPendentes busca as contas ainda não pagas, vencimento mais antigo
// primeiro. São os alvos de débito do matcher.
func (r *Repository) ListPendentes() ([]ContaPagar, error) {
	var contas []ContaPagar
	err := r.DB.
		Where("status IN ?", []string{StatusPendente, StatusVencido}).
		Order("data_vencimento ASC").
		Find(&contas).Error
	return contas, err
}

// ListPagasByOrcamento busca as contas pagas de um orçamento (custo real).
func (r *Repository) ListPagasByOrcamento(orcamentoID uint) ([]ContaPagar, error) {
	var contas []ContaPagar
	err := r.DB.
		Where("orcamento_id = ? AND status = ?", orcamentoID, StatusPago).
		Find(&contas).Error
	return contas, err
}

// Update atualiza todos os campos de uma conta existente (Save exige PK).
func (r *Repository) Update(conta *ContaPagar) error {
	return r.DB.Save(conta).Error
}

// MarcarVencidas move para "vencido" as contas pendentes com vencimento
// anterior à data de referência.
func (r *Repository) MarcarVencidas(referencia time.Time) (int64, error) {
	res := r.DB.Model(&ContaPagar{}).
		Where("status = ? AND data_vencimento < ?", StatusPendente, referencia).
		Update("status", StatusVencido)
	return res.RowsAffected, res.Error
}
