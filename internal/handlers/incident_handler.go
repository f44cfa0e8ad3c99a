package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jusetreynoso/saas-residencial/config"
	"github.com/Jusetreynoso/saas-residencial/models"
)

// CreateIncidentHandler recibe el reporte de avería de un residente, con
// foto opcional (multipart).
func CreateIncidentHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El título es obligatorio"})
		return
	}

	photoPath, err := saveUploadedFile(c, "photo", "incidents")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incident := models.Incident{
		TenantID:    tenantID,
		UserID:      currentUserID(c),
		Title:       title,
		Description: c.PostForm("description"),
		PhotoPath:   photoPath,
		Status:      models.IncidentPending,
	}
	if err := config.DB.Create(&incident).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo guardar la incidencia"})
		return
	}
	c.JSON(http.StatusCreated, incident)
}

// ListIncidentsHandler lista incidencias: propias para residentes, todas las
// del residencial para el administrador.
func ListIncidentsHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	query := config.DB.Preload("User").
		Where("tenant_id = ?", tenantID).
		Order("id desc")
	if !isAdmin(c) {
		query = query.Where("user_id = ?", currentUserID(c))
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var incidents []models.Incident
	if err := query.Find(&incidents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron obtener las incidencias"})
		return
	}
	if incidents == nil {
		incidents = make([]models.Incident, 0)
	}
	c.JSON(http.StatusOK, gin.H{"data": incidents})
}

// UpdateIncidentHandler cambia el estado de una incidencia y deja el
// comentario del administrador.
func UpdateIncidentHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	var payload struct {
		Status       string `json:"status" binding:"required"`
		AdminComment string `json:"adminComment"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El estado es obligatorio"})
		return
	}
	switch payload.Status {
	case models.IncidentPending, models.IncidentInProgress, models.IncidentResolved, models.IncidentRejected:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Estado de incidencia desconocido"})
		return
	}

	var incident models.Incident
	if err := config.DB.Where("tenant_id = ?", tenantID).
		First(&incident, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Incidencia no encontrada"})
		return
	}

	incident.Status = payload.Status
	incident.AdminComment = payload.AdminComment
	if err := config.DB.Save(&incident).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar la incidencia"})
		return
	}
	c.JSON(http.StatusOK, incident)
}
