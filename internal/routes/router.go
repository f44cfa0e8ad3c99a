package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Jusetreynoso/saas-residencial/internal/middleware"
)

// SetupRoutes registra todos los endpoints del portal.
func SetupRoutes(r *gin.Engine) {
	// Rutas públicas: login y archivos estáticos (comprobantes, fotos).
	RegisterAuthRoutes(r)
	r.Static("/static", "./static")

	// Todo lo demás exige sesión válida.
	authRequired := r.Group("/")
	authRequired.Use(middleware.AuthMiddleware())
	{
		RegisterAPIRoutes(authRequired)
	}
}
