// internal/parcela/model.go
package parcela

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusPendente = "pendente"
	StatusPago     = "pago"
	StatusVencido  = "vencido"
)

// Parcela representa um pagamento parcial agendado de uma conta a receber.
// Criada na abertura da conta; só a conciliação altera seu status.
type Parcela struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	ContaReceberID uint       `gorm:"not null;index" json:"contaReceberId"`
	Numero         int        `gorm:"not null" json:"numero"` // 1-based, único dentro da conta
	Valor          float64    `gorm:"not null;default:0" json:"valor"`
	DataVencimento time.Time  `gorm:"not null" json:"dataVencimento"`
	DataPagamento  *time.Time `json:"dataPagamento"`
	Status         string     `gorm:"size:50;not null;default:'pendente';index" json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Parcela{}); err != nil {
		return err
	}
	// Número único dentro da conta.
	return db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_parcelas_conta_numero ON parcelas (conta_receber_id, numero)",
	).Error
}
