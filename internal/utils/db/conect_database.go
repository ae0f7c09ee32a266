package db

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect abre a conexão com o Postgres a partir das variáveis de ambiente
// DB_HOST, DB_PORT, DB_USER, DB_PASSWORD e DB_NAME.
func Connect() (*gorm.DB, error) {
	host := envOu("DB_HOST", "localhost")
	port := envOu("DB_PORT", "5432")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	if user == "" || dbname == "" {
		return nil, fmt.Errorf("DB_USER e DB_NAME são obrigatórias")
	}

	var sslMode string
	if os.Getenv("DB_SSL_MODE_DISABLE") == "true" {
		sslMode = " sslmode=disable"
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s%s", host, user, password, dbname, port, sslMode)
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
}

func envOu(chave, padrao string) string {
	if v := os.Getenv(chave); v != "" {
		return v
	}
	return padrao
}
