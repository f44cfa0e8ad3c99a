package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Jusetreynoso/saas-residencial/config"
	"github.com/Jusetreynoso/saas-residencial/models"
)

type UnitInput struct {
	Number     string          `json:"number" binding:"required"`
	Floor      string          `json:"floor"`
	FeeAmount  decimal.Decimal `json:"feeAmount"`
	FeeFormula string          `json:"feeFormula"`
	AreaM2     decimal.Decimal `json:"areaM2"`
}

// CreateUnitHandler da de alta un apartamento.
func CreateUnitHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	var input UnitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de apartamento inválidos: " + err.Error()})
		return
	}

	unit := models.Unit{
		TenantID:   tenantID,
		Number:     input.Number,
		Floor:      input.Floor,
		FeeAmount:  input.FeeAmount.Round(2),
		FeeFormula: input.FeeFormula,
		AreaM2:     input.AreaM2.Round(2),
	}
	if err := config.DB.Create(&unit).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "El número de apartamento ya existe en este residencial"})
		return
	}
	c.JSON(http.StatusCreated, unit)
}

// ListUnitsHandler lista los apartamentos del residencial con su titular de
// facturación.
func ListUnitsHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	var units []models.Unit
	if err := config.DB.Preload("BillingOwner").
		Where("tenant_id = ?", tenantID).
		Order("number asc").Find(&units).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron obtener los apartamentos"})
		return
	}
	if units == nil {
		units = make([]models.Unit, 0)
	}
	c.JSON(http.StatusOK, gin.H{"data": units})
}

// UpdateUnitHandler actualiza los datos y la cuota de un apartamento.
func UpdateUnitHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	var unit models.Unit
	if err := config.DB.Where("tenant_id = ?", tenantID).
		First(&unit, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Apartamento no encontrado"})
		return
	}

	var input UnitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de apartamento inválidos"})
		return
	}

	unit.Number = input.Number
	unit.Floor = input.Floor
	unit.FeeAmount = input.FeeAmount.Round(2)
	unit.FeeFormula = input.FeeFormula
	unit.AreaM2 = input.AreaM2.Round(2)
	if err := config.DB.Save(&unit).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "No se pudo actualizar el apartamento"})
		return
	}
	c.JSON(http.StatusOK, unit)
}

// SetBillingOwnerHandler asigna (o retira, con userId nulo) el titular de
// facturación del apartamento. Sin titular, el apartamento no recibe cuotas
// ni facturas de gas.
func SetBillingOwnerHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de apartamento inválido"})
		return
	}

	var unit models.Unit
	if err := config.DB.Where("tenant_id = ?", tenantID).First(&unit, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Apartamento no encontrado"})
		return
	}

	var payload struct {
		UserID *uint `json:"userId"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de la petición inválido"})
		return
	}

	if payload.UserID != nil {
		var owner models.User
		if err := config.DB.Where("id = ? AND tenant_id = ?", *payload.UserID, tenantID).
			First(&owner).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "El residente no pertenece a este residencial"})
			return
		}
	}

	// Update con map: un puntero nulo debe limpiar la columna.
	if err := config.DB.Model(&unit).
		Update("billing_owner_id", payload.UserID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo asignar el titular"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Titular de facturación actualizado"})
}
