// internal/movimentobancario/repository.go
package movimentobancario

import (
	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de Movimentos Bancários.
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

// FindByID busca um movimento pelo seu ID.
func (r *Repository) FindByID(id uint) (*MovimentoBancario, error) {
	var m MovimentoBancario
	if err := r.DB.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ListNaoConciliados busca os movimentos ainda não conciliados e não
// ignorados, opcionalmente filtrados por direção. É a entrada do matcher.
func (r *Repository) ListNaoConciliados(direcao string) ([]MovimentoBancario, error) {
	q := r.DB.Where("conciliado = FALSE AND ignorado = FALSE")
	if direcao != "" {
		q = q.Where("direcao = ?", direcao)
	}
	var movimentos []MovimentoBancario
	err := q.Order("data ASC").Find(&movimentos).Error
	return movimentos, err
}

// Update atualiza todos os campos de um movimento existente (Save exige PK).
func (r *Repository) Update(m *MovimentoBancario) error {
	return r.DB.Save(m).Error
}

// SetIgnorado marca ou desmarca um movimento como ruído de extrato.
func (r *Repository) SetIgnorado(id uint, ignorado bool) error {
	return r.DB.Model(&MovimentoBancario{}).
		Where("id = ?", id).
		Update("ignorado", ignorado).Error
}
