// internal/usuario/model.go
package usuario

import (
	"time"

	"gorm.io/gorm"
)

// Usuario é quem opera o financeiro (dono, vendedor ou administrativo).
type Usuario struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nome      string    `gorm:"size:255;not null" json:"nome"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Senha     string    `gorm:"size:255;not null" json:"-"` // hash bcrypt
	Admin     bool      `gorm:"not null;default:false" json:"admin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Usuario{})
}
