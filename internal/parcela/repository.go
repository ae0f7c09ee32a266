// internal/parcela/repository.go
package parcela

import (
	"time"

	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de Parcelas.
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

// CreateInBatch cria múltiplas parcelas de uma vez (ignora se vazio).
func (r *Repository) CreateInBatch(parcelas []*Parcela) error {
	if len(parcelas) == 0 {
		return nil
	}
	return r.DB.Create(parcelas).Error
}

// FindByID busca uma única parcela pelo seu ID.
func (r *Repository) FindByID(id uint) (*Parcela, error) {
	var p Parcela
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByContaID busca todas as parcelas de uma conta a receber.
func (r *Repository) ListByContaID(contaID uint) ([]Parcela, error) {
	var parcelas []Parcela
	err := r.DB.
		Where("conta_receber_id = ?", contaID).
		Order("numero ASC").
		Find(&parcelas).Error
	return parcelas, err
}

// ListPendentes busca todas as parcelas ainda não pagas (pendentes ou
// vencidas), vencimento mais antigo primeiro. São os alvos do matcher.
func (r *Repository) ListPendentes() ([]Parcela, error) {
	var parcelas []Parcela
	err := r.DB.
		Where("status IN ?", []string{StatusPendente, StatusVencido}).
		Order("data_vencimento ASC").
		Find(&parcelas).Error
	return parcelas, err
}

// Update atualiza todos os campos de uma parcela existente (Save exige PK).
func (r *Repository) Update(p *Parcela) error {
	return r.DB.Save(p).Error
}

// MarcarVencidas move para "vencido" as parcelas pendentes com vencimento
// anterior à data de referência. Retorna quantas foram alteradas.
func (r *Repository) MarcarVencidas(referencia time.Time) (int64, error) {
	res := r.DB.Model(&Parcela{}).
		Where("status = ? AND data_vencimento < ?", StatusPendente, referencia).
		Update("status", StatusVencido)
	return res.RowsAffected, res.Error
}
