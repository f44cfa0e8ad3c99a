package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Jusetreynoso/saas-residencial/config"
	"github.com/Jusetreynoso/saas-residencial/models"
)

type CreateInvoiceInput struct {
	UserID   uint            `json:"userId" binding:"required"`
	UnitID   *uint           `json:"unitId"`
	Category string          `json:"category" binding:"required"`
	Concept  string          `json:"concept" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	DueDate  string          `json:"dueDate" binding:"required"` // 2006-01-02
}

type PayInvoiceInput struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// ListInvoicesHandler lista facturas. Un residente sólo ve las suyas; el
// administrador ve las de todo el residencial, con filtros opcionales de
// estado y categoría.
func ListInvoicesHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	query := config.DB.Model(&models.Invoice{}).
		Preload("User").
		Where("tenant_id = ?", tenantID).
		Order("due_date desc, id desc")

	if !isAdmin(c) {
		query = query.Where("user_id = ?", currentUserID(c))
	} else if userID := c.Query("userId"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var totalRows int64
	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron contar las facturas"})
		return
	}

	var invoices []models.Invoice
	if err := query.Scopes(Paginate(c)).Find(&invoices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron obtener las facturas"})
		return
	}
	if invoices == nil {
		invoices = make([]models.Invoice, 0)
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, invoices, totalRows))
}

// GetInvoiceHandler devuelve una factura. Un residente sólo puede ver las
// propias.
func GetInvoiceHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	var invoice models.Invoice
	if err := config.DB.Preload("User").
		Where("tenant_id = ?", tenantID).
		First(&invoice, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Factura no encontrada"})
		return
	}
	if !isAdmin(c) && invoice.UserID != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes permiso para ver esta factura"})
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// CreateInvoiceHandler crea un cargo manual (cuota extraordinaria u otro
// concepto puntual) a cargo de un residente del residencial.
func CreateInvoiceHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	var input CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de factura inválidos: " + err.Error()})
		return
	}

	dueDate, err := time.Parse("2006-01-02", input.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha de vencimiento inválida (aaaa-mm-dd)"})
		return
	}

	category := models.InvoiceCategory(input.Category)
	switch category {
	case models.CategoryRecurringFee, models.CategoryGas, models.CategoryExtra, models.CategoryOther:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Categoría de factura desconocida"})
		return
	}

	// El destinatario debe pertenecer al residencial del administrador.
	var user models.User
	if err := config.DB.Where("id = ? AND tenant_id = ?", input.UserID, tenantID).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "El residente no pertenece a este residencial"})
		return
	}

	invoice, err := Ledger.CreateInvoice(tenantID, input.UserID, input.UnitID,
		category, input.Concept, input.Amount, dueDate)
	if err != nil {
		abortLedgerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

// PayInvoiceHandler registra un pago directo (cobro en oficina) sobre una
// factura del residencial.
func PayInvoiceHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de factura inválido"})
		return
	}

	var input PayInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Monto requerido"})
		return
	}

	var invoice models.Invoice
	if err := config.DB.Where("tenant_id = ?", tenantID).First(&invoice, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Factura no encontrada"})
		return
	}

	result, err := Ledger.ApplyPayment(invoice.ID, input.Amount)
	if err != nil {
		abortLedgerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pago registrado", "result": result})
}

// receivableRow es una fila de cuentas por cobrar para listado y export.
type receivableRow struct {
	InvoiceID  uint            `json:"invoiceId"`
	Resident   string          `json:"resident"`
	UnitNumber string          `json:"unitNumber"`
	Category   string          `json:"category"`
	Concept    string          `json:"concept"`
	Amount     decimal.Decimal `json:"amount"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
	BalanceDue decimal.Decimal `json:"balanceDue"`
	Status     string          `json:"status"`
	DueDate    time.Time       `json:"dueDate"`
}

func fetchReceivables(tenantID uint) ([]receivableRow, error) {
	var rows []receivableRow
	err := config.DB.Table("invoices i").
		Select(`i.id as invoice_id, u.full_name as resident,
			COALESCE(ap.number, '') as unit_number,
			i.category, i.concept, i.amount, i.amount_paid, i.balance_due,
			i.status, i.due_date`).
		Joins("JOIN users u ON u.id = i.user_id").
		Joins("LEFT JOIN units ap ON ap.id = i.unit_id").
		Where("i.tenant_id = ? AND i.status IN ? AND i.deleted_at IS NULL",
			tenantID, []string{string(models.InvoicePending), string(models.InvoicePartial)}).
		Order("i.due_date asc").
		Scan(&rows).Error
	return rows, err
}

// ListReceivablesHandler devuelve las cuentas por cobrar del residencial y
// el total adeudado.
func ListReceivablesHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	rows, err := fetchReceivables(tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron obtener las cuentas por cobrar"})
		return
	}

	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.BalanceDue)
	}
	if rows == nil {
		rows = make([]receivableRow, 0)
	}
	c.JSON(http.StatusOK, gin.H{"data": rows, "totalDue": total})
}

// ExportReceivablesHandler descarga las cuentas por cobrar en Excel.
func ExportReceivablesHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	rows, err := fetchReceivables(tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron obtener los datos para exportar"})
		return
	}

	f := excelize.NewFile()
	sheetName := "Cuentas por Cobrar"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Factura", "Residente", "Apartamento", "Categoría", "Concepto", "Monto", "Pagado", "Pendiente", "Estado", "Vencimiento"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, r := range rows {
		row := i + 2
		values := []interface{}{
			r.InvoiceID, r.Resident, r.UnitNumber, r.Category, r.Concept,
			r.Amount.InexactFloat64(), r.AmountPaid.InexactFloat64(),
			r.BalanceDue.InexactFloat64(), r.Status, r.DueDate.Format("2006-01-02"),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	fileName := fmt.Sprintf("cuentas_por_cobrar_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo generar el archivo"})
	}
}
