package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Jusetreynoso/saas-residencial/config"
	"github.com/Jusetreynoso/saas-residencial/models"
)

type CreateExpenseInput struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        string          `json:"date" binding:"required"` // 2006-01-02
	Category    string          `json:"category"`
}

// monthParam interpreta ?month=aaaa-mm; sin parámetro, el mes en curso.
func monthParam(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if v := c.Query("month"); v != "" {
		parsed, err := time.Parse("2006-01", v)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("mes inválido (aaaa-mm): %q", v)
		}
		month = parsed
	}
	return month, month.AddDate(0, 1, 0), nil
}

// CreateExpenseHandler registra un gasto operativo del residencial.
func CreateExpenseHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	var input CreateExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de gasto inválidos: " + err.Error()})
		return
	}
	if input.Amount.Sign() <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El monto debe ser mayor que cero"})
		return
	}
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha inválida (aaaa-mm-dd)"})
		return
	}
	category := input.Category
	if category == "" {
		category = models.ExpenseOther
	}

	expense := models.Expense{
		TenantID:    tenantID,
		Description: input.Description,
		Amount:      input.Amount.Round(2),
		Date:        date,
		Category:    category,
	}
	if err := config.DB.Create(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo guardar el gasto"})
		return
	}
	c.JSON(http.StatusCreated, expense)
}

// ListExpensesHandler lista los gastos de un mes con su total.
func ListExpensesHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	from, to, err := monthParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := config.DB.Where("tenant_id = ? AND date >= ? AND date < ?", tenantID, from, to)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var expenses []models.Expense
	if err := query.Order("date desc, id desc").Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron obtener los gastos"})
		return
	}

	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	if expenses == nil {
		expenses = make([]models.Expense, 0)
	}
	c.JSON(http.StatusOK, gin.H{"data": expenses, "total": total, "month": from.Format("2006-01")})
}

// DeleteExpenseHandler elimina un gasto mal registrado.
func DeleteExpenseHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	result := config.DB.Where("tenant_id = ?", tenantID).
		Delete(&models.Expense{}, c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo eliminar el gasto"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Gasto no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Gasto eliminado"})
}

// ExportExpensesHandler descarga los gastos del mes en Excel.
func ExportExpensesHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	from, to, err := monthParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var expenses []models.Expense
	if err := config.DB.Where("tenant_id = ? AND date >= ? AND date < ?", tenantID, from, to).
		Order("date asc").Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron obtener los datos para exportar"})
		return
	}

	f := excelize.NewFile()
	sheetName := "Gastos"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Fecha", "Descripción", "Categoría", "Monto"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}
	for i, e := range expenses {
		row := i + 2
		values := []interface{}{
			e.Date.Format("2006-01-02"), e.Description, e.Category, e.Amount.InexactFloat64(),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	fileName := fmt.Sprintf("gastos_%s.xlsx", from.Format("2006-01"))
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo generar el archivo"})
	}
}
