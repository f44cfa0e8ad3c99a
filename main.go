package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Jusetreynoso/saas-residencial/config"
	"github.com/Jusetreynoso/saas-residencial/internal/handlers"
	"github.com/Jusetreynoso/saas-residencial/internal/ledger"
	"github.com/Jusetreynoso/saas-residencial/internal/notify"
	"github.com/Jusetreynoso/saas-residencial/internal/routes"
	"github.com/Jusetreynoso/saas-residencial/models"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("sin archivo .env, usando variables del entorno")
	}

	config.InitJwt()
	config.ConnectDB()
	config.ConnectRedis()
	if err := config.InitGoogleServices(); err != nil {
		// El reconocimiento de comprobantes es opcional.
		slog.Warn("Gemini deshabilitado", "error", err)
	}

	if err := config.DB.AutoMigrate(models.All()...); err != nil {
		slog.Error("fallo la migración de la base de datos", "error", err)
		os.Exit(1)
	}

	notifier := buildNotifier()
	handlers.Init(ledger.New(config.DB, notifier), notifier)

	r := gin.Default()
	r.MaxMultipartMemory = 30 << 20
	routes.SetupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	slog.Info("portal escuchando", "port", port)
	if err := r.Run(":" + port); err != nil {
		slog.Error("el servidor terminó con error", "error", err)
		os.Exit(1)
	}
}

// buildNotifier arma los canales de aviso disponibles: WhatsApp simulado por
// consola siempre, correo sólo si el SMTP está configurado.
func buildNotifier() notify.Notifier {
	channels := notify.Multi{notify.WhatsApp{}}
	if mail := notify.MailFromEnv(); mail != nil {
		channels = append(channels, mail)
	}
	return channels
}
