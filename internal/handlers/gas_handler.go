package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Jusetreynoso/saas-residencial/config"
	"github.com/Jusetreynoso/saas-residencial/internal/ledger"
	"github.com/Jusetreynoso/saas-residencial/models"
)

type CreateReadingInput struct {
	UnitID           uint            `json:"unitId" binding:"required"`
	Previous         decimal.Decimal `json:"previous"`
	Current          decimal.Decimal `json:"current" binding:"required"`
	UnitPrice        decimal.Decimal `json:"unitPrice" binding:"required"`
	ConversionFactor decimal.Decimal `json:"conversionFactor"`
}

// CreateReadingHandler registra la lectura mensual de gas de un apartamento.
// Si el apartamento tiene titular de facturación, la factura GAS sale en el
// mismo commit.
func CreateReadingHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	var input CreateReadingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de lectura inválidos: " + err.Error()})
		return
	}

	reading, err := Ledger.RecordReading(ledger.ReadingInput{
		TenantID:         tenantID,
		UnitID:           input.UnitID,
		Previous:         input.Previous,
		Current:          input.Current,
		UnitPrice:        input.UnitPrice,
		ConversionFactor: input.ConversionFactor,
	})
	if err != nil {
		abortLedgerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, reading)
}

// ListReadingsHandler lista el historial de lecturas del residencial, con
// filtro opcional por apartamento.
func ListReadingsHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	query := config.DB.Model(&models.MeterReading{}).
		Preload("Unit").
		Where("tenant_id = ?", tenantID).
		Order("reading_date desc, id desc")
	if unitID := c.Query("unitId"); unitID != "" {
		query = query.Where("unit_id = ?", unitID)
	}

	var totalRows int64
	query.Count(&totalRows)

	var readings []models.MeterReading
	if err := query.Scopes(Paginate(c)).Find(&readings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron obtener las lecturas"})
		return
	}
	if readings == nil {
		readings = make([]models.MeterReading, 0)
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, readings, totalRows))
}

// meterStatusRow es el estado del medidor de un apartamento: su última
// lectura, o nada si nunca se le ha leído.
type meterStatusRow struct {
	UnitID      uint             `json:"unitId"`
	UnitNumber  string           `json:"unitNumber"`
	LastReading *decimal.Decimal `json:"lastReading"`
	LastDate    *time.Time       `json:"lastDate"`
	PendingThis bool             `json:"pendingThisMonth"`
}

// MeterStatusHandler arma la tabla de toma de lecturas: por apartamento, la
// última lectura registrada y si falta la del mes en curso.
func MeterStatusHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	var units []models.Unit
	if err := config.DB.Where("tenant_id = ?", tenantID).
		Order("number asc").Find(&units).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron obtener los apartamentos"})
		return
	}

	// Última lectura por apartamento en una sola consulta.
	var latest []models.MeterReading
	sub := config.DB.Model(&models.MeterReading{}).
		Select("MAX(id)").
		Where("tenant_id = ?", tenantID).
		Group("unit_id")
	if err := config.DB.Where("id IN (?)", sub).Find(&latest).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron obtener las lecturas"})
		return
	}
	byUnit := make(map[uint]*models.MeterReading, len(latest))
	for i := range latest {
		byUnit[latest[i].UnitID] = &latest[i]
	}

	now := time.Now()
	rows := make([]meterStatusRow, 0, len(units))
	for _, unit := range units {
		row := meterStatusRow{UnitID: unit.ID, UnitNumber: unit.Number, PendingThis: true}
		if r, ok := byUnit[unit.ID]; ok {
			reading := r.Current
			date := r.ReadingDate
			row.LastReading = &reading
			row.LastDate = &date
			if date.Year() == now.Year() && date.Month() == now.Month() {
				row.PendingThis = false
			}
		}
		rows = append(rows, row)
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}
