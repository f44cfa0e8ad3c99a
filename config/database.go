package config

import (
	"log/slog"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB abre la conexión a Postgres usando DB_URL. Sin base de datos el
// portal no puede arrancar.
func ConnectDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		slog.Error("la variable de entorno DB_URL no está configurada")
		os.Exit(1)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		slog.Error("error conectando a la base de datos", "error", err)
		os.Exit(1)
	}

	DB = db
	slog.Info("conexión a la base de datos establecida")
}
