// internal/comissao/model.go
package comissao

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusPendente = "pendente"
	StatusPago     = "pago"
)

// Comissao é o repasse devido a um vendedor, opcionalmente vinculado a um
// orçamento.
type Comissao struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrcamentoID *uint     `gorm:"index" json:"orcamentoId"`
	Valor       float64   `gorm:"not null;default:0" json:"valor"`
	Status      string    `gorm:"size:50;not null;default:'pendente';index" json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Comissao{})
}
