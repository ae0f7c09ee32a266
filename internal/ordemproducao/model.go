// internal/ordemproducao/model.go
package ordemproducao

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusAguardandoMaterial = "aguardando_material"
	StatusEmProducao         = "em_producao"
	StatusQualidade          = "qualidade"
	StatusPronta             = "pronta"
	StatusEntregue           = "entregue"
	StatusCancelada          = "cancelada"
)

// OrdemProducao acompanha a confecção e instalação vinculada a um orçamento.
// A auditoria a consome somente para leitura.
type OrdemProducao struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrcamentoID    uint      `gorm:"not null;index" json:"orcamentoId"`
	StatusProducao string    `gorm:"size:50;not null;default:'aguardando_material';index" json:"statusProducao"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Ativa informa se a ordem ainda demanda produção (nem entregue nem cancelada).
func (o *OrdemProducao) Ativa() bool {
	return o.StatusProducao != StatusEntregue && o.StatusProducao != StatusCancelada
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&OrdemProducao{})
}
