package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RunBillingCycleHandler dispara el ciclo mensual de cuotas del residencial
// del administrador. El recorrido global de todos los residenciales es del
// cron; re-ejecutar este no duplica cobros.
func RunBillingCycleHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	count, err := Ledger.RunTenantCycle(tenantID, time.Now())
	if err != nil {
		abortLedgerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ciclo de cuotas ejecutado", "generated": count})
}

// AccrueLateFeesHandler aplica la mora a las cuotas vencidas del residencial.
func AccrueLateFeesHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	count, err := Ledger.AccrueLateFees(tenantID, time.Now())
	if err != nil {
		abortLedgerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Mora aplicada", "surcharged": count})
}
