// internal/ordemproducao/repository.go
package ordemproducao

import (
	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de Ordens de Produção.
type Repository struct {
	DB *gorm.DB
}

// NewRepository instancia um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// FindByID busca uma ordem pelo seu ID.
func (r *Repository) FindByID(id uint) (*OrdemProducao, error) {
	var o OrdemProducao
	if err := r.DB.First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// ListAll lista todas as ordens de produção.
func (r *Repository) ListAll() ([]OrdemProducao, error) {
	var ordens []OrdemProducao
	err := r.DB.Order("created_at ASC").Find(&ordens).Error
	return ordens, err
}

// ListByOrcamento lista as ordens de um orçamento.
func (r *Repository) ListByOrcamento(orcamentoID uint) ([]OrdemProducao, error) {
	var ordens []OrdemProducao
	err := r.DB.Where("orcamento_id = ?", orcamentoID).Find(&ordens).Error
	return ordens, err
}
