// internal/contareceber/model.go
package contareceber

import (
	"time"

	"github.com/decorart/api-financeiro/internal/parcela"
	"gorm.io/gorm"
)

const (
	StatusPendente = "pendente"
	StatusParcial  = "parcial"
	StatusPago     = "pago"
)

// ContaReceber agrega o que a empresa tem a receber por um orçamento.
// Invariante: valor_pago == soma das parcelas pagas; mantido pela conciliação
// e apenas verificado (não corrigido) pela auditoria.
type ContaReceber struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrcamentoID *uint   `gorm:"index" json:"orcamentoId"` // nulo em contas avulsas
	ValorTotal  float64 `gorm:"not null;default:0" json:"valorTotal"`
	ValorPago   float64 `gorm:"not null;default:0" json:"valorPago"`
	Status      string  `gorm:"size:50;not null;default:'pendente';index" json:"status"`

	// Parcelas geradas na criação da conta como divisão fixa do total.
	Parcelas []parcela.Parcela `gorm:"foreignKey:ContaReceberID;constraint:OnDelete:CASCADE" json:"parcelas"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Quitada informa se o total já foi coberto (tolerância de um centavo).
func (c *ContaReceber) Quitada() bool {
	return c.ValorPago >= c.ValorTotal-0.01
}

// Migrate cria a tabela no banco de dados e aplica relacionamentos.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&ContaReceber{})
}
