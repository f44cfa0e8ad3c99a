package config

import (
	"log/slog"
	"os"
)

// JwtKey firma los tokens de sesión. Se carga con InitJwt después de leer el
// entorno; en producción JWT_SECRET es obligatoria.
var JwtKey []byte

func InitJwt() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		slog.Warn("JWT_SECRET no está configurada, usando clave de desarrollo")
		secret = "dev-secret-cambiar-en-produccion"
	}
	JwtKey = []byte(secret)
}
