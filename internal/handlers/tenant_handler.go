package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Jusetreynoso/saas-residencial/config"
	"github.com/Jusetreynoso/saas-residencial/models"
)

type TenantInput struct {
	Name               string           `json:"name" binding:"required"`
	Address            string           `json:"address"`
	AllowsReservations *bool            `json:"allowsReservations"`
	MinAdvanceDays     *int             `json:"minAdvanceDays"`
	MaxAdvanceDays     *int             `json:"maxAdvanceDays"`
	MaxDurationHours   *int             `json:"maxDurationHours"`
	CutoffDay          *int             `json:"cutoffDay"`
	GraceDays          *int             `json:"graceDays"`
	LateFeePercent     *decimal.Decimal `json:"lateFeePercent"`
	StartingBalance    *decimal.Decimal `json:"startingBalance"`
}

func applyTenantInput(tenant *models.Tenant, input *TenantInput) {
	tenant.Name = input.Name
	tenant.Address = input.Address
	if input.AllowsReservations != nil {
		tenant.AllowsReservations = *input.AllowsReservations
	}
	if input.MinAdvanceDays != nil {
		tenant.MinAdvanceDays = *input.MinAdvanceDays
	}
	if input.MaxAdvanceDays != nil {
		tenant.MaxAdvanceDays = *input.MaxAdvanceDays
	}
	if input.MaxDurationHours != nil {
		tenant.MaxDurationHours = *input.MaxDurationHours
	}
	if input.CutoffDay != nil {
		tenant.CutoffDay = *input.CutoffDay
	}
	if input.GraceDays != nil {
		tenant.GraceDays = *input.GraceDays
	}
	if input.LateFeePercent != nil {
		tenant.LateFeePercent = input.LateFeePercent.Round(2)
	}
	if input.StartingBalance != nil {
		tenant.StartingBalance = input.StartingBalance.Round(2)
	}
}

func validTenantConfig(tenant *models.Tenant) (string, bool) {
	if tenant.CutoffDay < 1 || tenant.CutoffDay > 31 {
		return "El día de corte debe estar entre 1 y 31", false
	}
	if tenant.LateFeePercent.Sign() < 0 {
		return "El porcentaje de mora no puede ser negativo", false
	}
	if tenant.GraceDays < 0 {
		return "Los días de gracia no pueden ser negativos", false
	}
	return "", true
}

// CreateTenantHandler da de alta un residencial.
func CreateTenantHandler(c *gin.Context) {
	var input TenantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de residencial inválidos: " + err.Error()})
		return
	}

	tenant := models.Tenant{
		AllowsReservations: true,
		MinAdvanceDays:     7,
		MaxAdvanceDays:     30,
		MaxDurationHours:   5,
		CutoffDay:          1,
		GraceDays:          15,
		LateFeePercent:     decimal.NewFromFloat(5.00),
	}
	applyTenantInput(&tenant, &input)
	if msg, ok := validTenantConfig(&tenant); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if err := config.DB.Create(&tenant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear el residencial"})
		return
	}
	c.JSON(http.StatusCreated, tenant)
}

// ListTenantsHandler lista todos los residenciales del sistema.
func ListTenantsHandler(c *gin.Context) {
	var tenants []models.Tenant
	if err := config.DB.Order("name asc").Find(&tenants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron obtener los residenciales"})
		return
	}
	if tenants == nil {
		tenants = make([]models.Tenant, 0)
	}
	c.JSON(http.StatusOK, gin.H{"data": tenants})
}

// GetTenantHandler devuelve la configuración de un residencial.
func GetTenantHandler(c *gin.Context) {
	var tenant models.Tenant
	if err := config.DB.First(&tenant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Residencial no encontrado"})
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// UpdateTenantHandler actualiza la configuración de un residencial.
func UpdateTenantHandler(c *gin.Context) {
	var tenant models.Tenant
	if err := config.DB.First(&tenant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Residencial no encontrado"})
		return
	}

	var input TenantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de residencial inválidos"})
		return
	}
	applyTenantInput(&tenant, &input)
	if msg, ok := validTenantConfig(&tenant); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if err := config.DB.Save(&tenant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar el residencial"})
		return
	}
	c.JSON(http.StatusOK, tenant)
}
