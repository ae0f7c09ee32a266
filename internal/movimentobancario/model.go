// internal/movimentobancario/model.go
package movimentobancario

import (
	"time"

	"gorm.io/gorm"
)

const (
	DirecaoCredito = "credito"
	DirecaoDebito  = "debito"
)

// MovimentoBancario é uma linha do extrato importado. Transiciona
// conciliado=false→true uma única vez, quando vinculado a um lançamento de
// mesmo valor e direção.
type MovimentoBancario struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Descricao    string    `gorm:"size:255" json:"descricao"`
	Valor        float64   `gorm:"not null;default:0" json:"valor"`
	Direcao      string    `gorm:"size:20;not null;index" json:"direcao"`
	Data         time.Time `gorm:"not null;index" json:"data"`
	Conciliado   bool      `gorm:"not null;default:false;index" json:"conciliado"`
	Ignorado     bool      `gorm:"not null;default:false" json:"ignorado"`
	LancamentoID *uint     `gorm:"index" json:"lancamentoId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&MovimentoBancario{})
}
