package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Jusetreynoso/saas-residencial/config"
	"github.com/Jusetreynoso/saas-residencial/models"
)

type categoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// FinancialReportHandler arma el resumen financiero de un mes: ingresos
// cobrados (por fecha de pago), gastos, balance del mes y balance general
// acumulado del residencial.
func FinancialReportHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	from, to, err := monthParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var incomes []categoryTotal
	if err := config.DB.Model(&models.Invoice{}).
		Select("category, COALESCE(SUM(amount_paid), 0) as total").
		Where("tenant_id = ? AND paid_date >= ? AND paid_date < ?", tenantID, from, to).
		Group("category").
		Scan(&incomes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron calcular los ingresos"})
		return
	}

	var expenses []categoryTotal
	if err := config.DB.Model(&models.Expense{}).
		Select("category, COALESCE(SUM(amount), 0) as total").
		Where("tenant_id = ? AND date >= ? AND date < ?", tenantID, from, to).
		Group("category").
		Scan(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron calcular los gastos"})
		return
	}

	totalIncome := decimal.Zero
	for _, row := range incomes {
		totalIncome = totalIncome.Add(row.Total)
	}
	totalExpense := decimal.Zero
	for _, row := range expenses {
		totalExpense = totalExpense.Add(row.Total)
	}

	// Balance general: saldo inicial + todo lo cobrado - todo lo gastado.
	var tenant models.Tenant
	if err := config.DB.First(&tenant, tenantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Residencial no encontrado"})
		return
	}

	var allIncome, allExpense decimal.Decimal
	config.DB.Model(&models.Invoice{}).
		Where("tenant_id = ?", tenantID).
		Select("COALESCE(SUM(amount_paid), 0)").
		Row().Scan(&allIncome)
	config.DB.Model(&models.Expense{}).
		Where("tenant_id = ?", tenantID).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&allExpense)

	if incomes == nil {
		incomes = make([]categoryTotal, 0)
	}
	if expenses == nil {
		expenses = make([]categoryTotal, 0)
	}

	c.JSON(http.StatusOK, gin.H{
		"month":          from.Format("2006-01"),
		"incomes":        incomes,
		"expenses":       expenses,
		"totalIncome":    totalIncome,
		"totalExpense":   totalExpense,
		"monthBalance":   totalIncome.Sub(totalExpense),
		"generalBalance": tenant.StartingBalance.Add(allIncome).Sub(allExpense),
	})
}
