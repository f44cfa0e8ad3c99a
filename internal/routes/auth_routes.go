package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Jusetreynoso/saas-residencial/internal/handlers"
)

// RegisterAuthRoutes registra los endpoints públicos de autenticación.
func RegisterAuthRoutes(r *gin.Engine) {
	r.POST("/login", handlers.LoginHandler)
	r.GET("/logout", handlers.LogoutHandler)
}
