// internal/contapagar/model.go
package contapagar

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusPendente = "pendente"
	StatusPago     = "pago"
	StatusVencido  = "vencido"
)

// ContaPagar representa um compromisso da empresa (material, costura,
// instalação) opcionalmente vinculado a um orçamento.
type ContaPagar struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	OrcamentoID    *uint      `gorm:"index" json:"orcamentoId"`
	Descricao      string     `gorm:"size:255" json:"descricao"`
	Valor          float64    `gorm:"not null;default:0" json:"valor"`
	Status         string     `gorm:"size:50;not null;default:'pendente';index" json:"status"`
	DataVencimento time.Time  `gorm:"not null" json:"dataVencimento"`
	DataPagamento  *time.Time `json:"dataPagamento"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&ContaPagar{})
}
