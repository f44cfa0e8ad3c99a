package handlers

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"github.com/shopspring/decimal"

	"github.com/Jusetreynoso/saas-residencial/config"
	"github.com/Jusetreynoso/saas-residencial/models"
)

// SubmitProofHandler recibe el reporte de pago de un residente: monto
// declarado, tipo y comprobante adjunto. Queda PENDIENTE hasta que el
// administrador lo decida.
func SubmitProofHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	amount, err := decimal.NewFromString(c.PostForm("amount"))
	if err != nil || amount.Sign() <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Monto inválido"})
		return
	}

	paymentType := models.CategoryRecurringFee
	if c.PostForm("paymentType") == string(models.CategoryGas) {
		paymentType = models.CategoryGas
	}

	evidencePath, err := saveUploadedFile(c, "evidence", "proofs")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proof := models.PaymentProof{
		TenantID:     tenantID,
		UserID:       currentUserID(c),
		Amount:       amount.Round(2),
		PaymentType:  paymentType,
		EvidencePath: evidencePath,
		UserNote:     c.PostForm("userNote"),
		Status:       models.ProofPending,
	}
	if err := config.DB.Create(&proof).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo guardar el reporte de pago"})
		return
	}
	c.JSON(http.StatusCreated, proof)
}

// ListProofsHandler lista reportes de pago: los propios para un residente,
// los de todo el residencial (filtrables por estado) para el administrador.
func ListProofsHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	query := config.DB.Model(&models.PaymentProof{}).
		Preload("User").
		Where("tenant_id = ?", tenantID).
		Order("id desc")

	if !isAdmin(c) {
		query = query.Where("user_id = ?", currentUserID(c))
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var totalRows int64
	query.Count(&totalRows)

	var proofs []models.PaymentProof
	if err := query.Scopes(Paginate(c)).Find(&proofs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron obtener los reportes"})
		return
	}
	if proofs == nil {
		proofs = make([]models.PaymentProof, 0)
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, proofs, totalRows))
}

// proofInTenant carga el reporte verificando que pertenece al residencial.
func proofInTenant(c *gin.Context, tenantID uint) (*models.PaymentProof, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de reporte inválido"})
		return nil, false
	}
	var proof models.PaymentProof
	if err := config.DB.Where("tenant_id = ?", tenantID).First(&proof, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reporte de pago no encontrado"})
		return nil, false
	}
	return &proof, true
}

// ApproveProofHandler aprueba un reporte y liquida su monto contra la deuda
// del residente (FIFO por vencimiento); el sobrante va al saldo a favor.
func ApproveProofHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	proof, ok := proofInTenant(c, tenantID)
	if !ok {
		return
	}

	result, err := Ledger.SettleProof(proof.ID)
	if err != nil {
		abortLedgerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reporte aprobado", "result": result})
}

// RejectProofHandler rechaza un reporte pendiente, sin efecto monetario.
func RejectProofHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	proof, ok := proofInTenant(c, tenantID)
	if !ok {
		return
	}

	var payload struct {
		Comment string `json:"comment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El motivo del rechazo es obligatorio"})
		return
	}

	if err := Ledger.RejectProof(proof.ID, payload.Comment); err != nil {
		abortLedgerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reporte rechazado"})
}

// RecognizeProofHandler extrae monto, fecha y referencia de un comprobante
// con Gemini, para pre-llenar el formulario del residente.
func RecognizeProofHandler(c *gin.Context) {
	if config.GeminiClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "El reconocimiento de comprobantes no está disponible"})
		return
	}

	file, header, err := c.Request.FormFile("evidence")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El comprobante es requerido"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo leer el archivo"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	prompt := []genai.Part{
		genai.Text("Eres un experto en procesar comprobantes de transferencias bancarias. Analiza el archivo adjunto y extrae: el monto total transferido, la fecha de la operación y el número de referencia o confirmación. Responde únicamente en formato JSON, sin texto adicional, con esta estructura:\n" +
			"{\"amount\": \"0.00\", \"date\": \"aaaa-mm-dd\", \"reference\": \"\"}"),
		&genai.Blob{MIMEType: header.Header.Get("Content-Type"), Data: data},
	}

	resp, err := config.GeminiClient.GenerateContent(ctx, prompt...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error de reconocimiento: " + err.Error()})
		return
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "El modelo no devolvió resultado"})
		return
	}
	jsonResponse, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Respuesta del modelo en formato inesperado"})
		return
	}

	cleanJSON := strings.Trim(string(jsonResponse), "```json \n")
	c.Data(http.StatusOK, "application/json", []byte(cleanJSON))
}
