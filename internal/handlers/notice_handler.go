package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jusetreynoso/saas-residencial/config"
	"github.com/Jusetreynoso/saas-residencial/models"
)

type NoticeInput struct {
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// CreateNoticeHandler publica un aviso de la administración.
func CreateNoticeHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	var input NoticeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Título y mensaje son requeridos"})
		return
	}

	notice := models.Notice{TenantID: tenantID, Title: input.Title, Message: input.Message}
	if err := config.DB.Create(&notice).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo publicar el aviso"})
		return
	}
	c.JSON(http.StatusCreated, notice)
}

// ListNoticesHandler lista los avisos del residencial, del más reciente al
// más viejo.
func ListNoticesHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	var notices []models.Notice
	if err := config.DB.Where("tenant_id = ?", tenantID).
		Order("id desc").Find(&notices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron obtener los avisos"})
		return
	}
	if notices == nil {
		notices = make([]models.Notice, 0)
	}
	c.JSON(http.StatusOK, gin.H{"data": notices})
}

// DeleteNoticeHandler retira un aviso publicado.
func DeleteNoticeHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	result := config.DB.Where("tenant_id = ?", tenantID).
		Delete(&models.Notice{}, c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo eliminar el aviso"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aviso no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Aviso eliminado"})
}
