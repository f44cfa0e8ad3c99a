package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Jusetreynoso/saas-residencial/config"
	"github.com/Jusetreynoso/saas-residencial/models"
)

// DashboardHandler devuelve los contadores del panel del administrador:
// reportes por revisar, incidencias abiertas, reservas pendientes y el total
// de cuentas por cobrar.
func DashboardHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	var pendingProofs, openIncidents, pendingReservations, unitCount, residentCount int64
	config.DB.Model(&models.PaymentProof{}).
		Where("tenant_id = ? AND status = ?", tenantID, models.ProofPending).
		Count(&pendingProofs)
	config.DB.Model(&models.Incident{}).
		Where("tenant_id = ? AND status IN ?", tenantID,
			[]string{models.IncidentPending, models.IncidentInProgress}).
		Count(&openIncidents)
	config.DB.Model(&models.Reservation{}).
		Where("tenant_id = ? AND status = ?", tenantID, models.ReservationPending).
		Count(&pendingReservations)
	config.DB.Model(&models.Unit{}).
		Where("tenant_id = ?", tenantID).Count(&unitCount)
	config.DB.Model(&models.User{}).
		Where("tenant_id = ? AND role = ?", tenantID, models.RoleResident).
		Count(&residentCount)

	var totalDue decimal.Decimal
	config.DB.Model(&models.Invoice{}).
		Where("tenant_id = ? AND status IN ?", tenantID,
			[]models.InvoiceStatus{models.InvoicePending, models.InvoicePartial}).
		Select("COALESCE(SUM(balance_due), 0)").
		Row().Scan(&totalDue)

	c.JSON(http.StatusOK, gin.H{
		"pendingProofs":       pendingProofs,
		"openIncidents":       openIncidents,
		"pendingReservations": pendingReservations,
		"units":               unitCount,
		"residents":           residentCount,
		"totalReceivable":     totalDue,
	})
}
