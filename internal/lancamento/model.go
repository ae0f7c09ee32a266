// internal/lancamento/model.go
package lancamento

import (
	"time"

	"gorm.io/gorm"
)

// TipoVinculo discrimina a origem do lançamento: exatamente uma parcela, uma
// conta a pagar, ou nenhuma (lançamento manual). Nunca mais de uma.
type TipoVinculo string

const (
	VinculoParcela    TipoVinculo = "parcela"
	VinculoContaPagar TipoVinculo = "conta_pagar"
	VinculoManual     TipoVinculo = "manual"
)

// Lancamento é o registro interno de entrada/saída. Criado apenas por ações
// de conciliação e imutável depois disso: correções criam um novo lançamento
// e desvinculam o movimento, nunca editam no lugar.
type Lancamento struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Descricao string    `gorm:"size:255" json:"descricao"`
	Valor     float64   `gorm:"not null;default:0" json:"valor"`
	Data      time.Time `gorm:"not null" json:"data"`
	Direcao   string    `gorm:"size:20;not null" json:"direcao"`

	// União discriminada: tipo_vinculo diz o que vinculo_id referencia;
	// em lançamentos manuais vinculo_id é nulo.
	TipoVinculo TipoVinculo `gorm:"size:20;not null;index" json:"tipoVinculo"`
	VinculoID   *uint       `gorm:"index" json:"vinculoId"`

	CreatedAt time.Time `json:"createdAt"`
}

// NovoDeParcela cria um lançamento vinculado a uma parcela de conta a receber.
func NovoDeParcela(parcelaID uint, descricao string, valor float64, data time.Time, direcao string) *Lancamento {
	id := parcelaID
	return &Lancamento{
		Descricao:   descricao,
		Valor:       valor,
		Data:        data,
		Direcao:     direcao,
		TipoVinculo: VinculoParcela,
		VinculoID:   &id,
	}
}

// NovoDeContaPagar cria um lançamento vinculado a uma conta a pagar.
func NovoDeContaPagar(contaPagarID uint, descricao string, valor float64, data time.Time, direcao string) *Lancamento {
	id := contaPagarID
	return &Lancamento{
		Descricao:   descricao,
		Valor:       valor,
		Data:        data,
		Direcao:     direcao,
		TipoVinculo: VinculoContaPagar,
		VinculoID:   &id,
	}
}

// NovoManual cria um lançamento sem vínculo.
func NovoManual(descricao string, valor float64, data time.Time, direcao string) *Lancamento {
	return &Lancamento{
		Descricao:   descricao,
		Valor:       valor,
		Data:        data,
		Direcao:     direcao,
		TipoVinculo: VinculoManual,
	}
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Lancamento{})
}
