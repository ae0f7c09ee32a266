// internal/orcamento/repository.go
package orcamento

import (
	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de Orçamentos.
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

// FindByID busca um orçamento pelo seu ID.
func (r *Repository) FindByID(id uint) (*Orcamento, error) {
	var o Orcamento
	if err := r.DB.First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// ListAll lista todos os orçamentos, mais recentes primeiro.
func (r *Repository) ListAll() ([]Orcamento, error) {
	var orcamentos []Orcamento
	err := r.DB.Order("created_at DESC").Find(&orcamentos).Error
	return orcamentos, err
}

// ListByStatus lista os orçamentos em um status específico.
func (r *Repository) ListByStatus(status Status) ([]Orcamento, error) {
	var orcamentos []Orcamento
	err := r.DB.Where("status = ?", status).Order("created_at DESC").Find(&orcamentos).Error
	return orcamentos, err
}

// Update atualiza todos os campos de um orçamento existente (Save exige PK).
func (r *Repository) Update(o *Orcamento) error {
	return r.DB.Save(o).Error
}

// UpdateStatus atualiza apenas a etiqueta de status.
func (r *Repository) UpdateStatus(id uint, status Status) error {
	return r.DB.Model(&Orcamento{}).
		Where("id = ?", id).
		Update("status", status).Error
}
