// internal/lancamento/repository.go
package lancamento

import (
	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de Lançamentos.
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

// Create persiste um novo lançamento.
func (r *Repository) Create(l *Lancamento) error {
	return r.DB.Create(l).Error
}

// FindByID busca um lançamento pelo seu ID.
func (r *Repository) FindByID(id uint) (*Lancamento, error) {
	var l Lancamento
	if err := r.DB.First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// ListByVinculo busca os lançamentos de um vínculo específico.
func (r *Repository) ListByVinculo(tipo TipoVinculo, vinculoID uint) ([]Lancamento, error) {
	var lancamentos []Lancamento
	err := r.DB.
		Where("tipo_vinculo = ? AND vinculo_id = ?", tipo, vinculoID).
		Order("data ASC").
		Find(&lancamentos).Error
	return lancamentos, err
}
