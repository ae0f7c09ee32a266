// internal/comissao/repository.go
package comissao

import (
	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de Comissões.
type Repository struct {
	DB *gorm.DB
}

// NewRepository instancia um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// FindByID busca uma comissão pelo seu ID.
func (r *Repository) FindByID(id uint) (*Comissao, error) {
	var c Comissao
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListAll lista todas as comissões.
func (r *Repository) ListAll() ([]Comissao, error) {
	var comissoes []Comissao
	err := r.DB.Order("created_at ASC").Find(&comissoes).Error
	return comissoes, err
}

// Update atualiza todos os campos de uma comissão existente (Save exige PK).
func (r *Repository) Update(c *Comissao) error {
	return r.DB.Save(c).Error
}
