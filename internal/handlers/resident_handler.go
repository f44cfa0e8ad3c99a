package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Jusetreynoso/saas-residencial/config"
	"github.com/Jusetreynoso/saas-residencial/internal/middleware"
	"github.com/Jusetreynoso/saas-residencial/models"
)

type CreateResidentInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	UnitID   *uint  `json:"unitId"`
}

type UpdateResidentInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	UnitID   *uint  `json:"unitId"`
	Password string `json:"password"`
}

// CreateResidentHandler da de alta un residente del residencial.
func CreateResidentHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	var input CreateResidentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de residente inválidos: " + err.Error()})
		return
	}

	if input.UnitID != nil {
		var unit models.Unit
		if err := config.DB.Where("id = ? AND tenant_id = ?", *input.UnitID, tenantID).
			First(&unit).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "El apartamento no pertenece a este residencial"})
			return
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo procesar la contraseña"})
		return
	}

	user := models.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		Email:        input.Email,
		Phone:        input.Phone,
		Role:         models.RoleResident,
		TenantID:     &tenantID,
		UnitID:       input.UnitID,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "El nombre de usuario ya existe"})
		return
	}
	c.JSON(http.StatusCreated, user)
}

// ListResidentsHandler lista los residentes del residencial con su
// apartamento y billeteras.
func ListResidentsHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	query := config.DB.Model(&models.User{}).
		Preload("Unit").
		Where("tenant_id = ? AND role = ?", tenantID, models.RoleResident).
		Order("full_name asc")

	var totalRows int64
	query.Count(&totalRows)

	var residents []models.User
	if err := query.Scopes(Paginate(c)).Find(&residents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron obtener los residentes"})
		return
	}
	if residents == nil {
		residents = make([]models.User, 0)
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, residents, totalRows))
}

// UpdateResidentHandler actualiza los datos de contacto, apartamento o
// contraseña de un residente.
func UpdateResidentHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de residente inválido"})
		return
	}

	var user models.User
	if err := config.DB.Where("tenant_id = ? AND role = ?", tenantID, models.RoleResident).
		First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Residente no encontrado"})
		return
	}

	var input UpdateResidentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.UnitID != nil {
		var unit models.Unit
		if err := config.DB.Where("id = ? AND tenant_id = ?", *input.UnitID, tenantID).
			First(&unit).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "El apartamento no pertenece a este residencial"})
			return
		}
		user.UnitID = input.UnitID
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo procesar la contraseña"})
			return
		}
		user.PasswordHash = string(hash)
	}

	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar el residente"})
		return
	}

	middleware.InvalidateUserCache(user.ID)
	c.JSON(http.StatusOK, user)
}

// DeactivateResidentHandler da de baja un residente (borrado suave). Sus
// facturas y pagos históricos permanecen.
func DeactivateResidentHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de residente inválido"})
		return
	}

	result := config.DB.Where("tenant_id = ? AND role = ?", tenantID, models.RoleResident).
		Delete(&models.User{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo dar de baja al residente"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Residente no encontrado"})
		return
	}

	middleware.InvalidateUserCache(uint(id))
	c.JSON(http.StatusOK, gin.H{"message": "Residente dado de baja"})
}
