// internal/orcamento/model.go
package orcamento

import (
	"time"

	"gorm.io/gorm"
)

// Orcamento é o registro comercial raiz: a proposta precificada de um cliente.
type Orcamento struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Codigo    string         `gorm:"size:50;uniqueIndex;not null" json:"codigo"`
	ClienteID uint           `gorm:"index" json:"clienteId"`
	Cliente   string         `gorm:"size:255" json:"cliente"`
	Status    Status         `gorm:"size:50;not null;default:'rascunho';index" json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	// Valores registrados no fechamento da proposta.
	ValorBruto   float64 `gorm:"not null;default:0" json:"valorBruto"`
	ValorLiquido float64 `gorm:"not null;default:0" json:"valorLiquido"` // pós-desconto; 0 = usa o bruto

	// Projeções feitas na criação do orçamento, usadas pelo relatório de margem.
	CustoProjetado  float64 `gorm:"not null;default:0" json:"custoProjetado"`
	MargemProjetada float64 `gorm:"not null;default:0" json:"margemProjetada"` // percentual
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Orcamento{})
}
