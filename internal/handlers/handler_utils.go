package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Jusetreynoso/saas-residencial/internal/ledger"
	"github.com/Jusetreynoso/saas-residencial/internal/notify"
	"github.com/Jusetreynoso/saas-residencial/models"
)

// Dependencias compartidas de los handlers, inyectadas una vez en main.
var (
	Ledger   *ledger.Service
	Notifier notify.Notifier
)

// Init conecta los handlers con el libro mayor y el canal de avisos.
func Init(svc *ledger.Service, notifier notify.Notifier) {
	Ledger = svc
	Notifier = notifier
}

// abortLedgerErr traduce la taxonomía del libro mayor a códigos HTTP.
func abortLedgerErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrInvalidAmount), errors.Is(err, ledger.ErrInvalidReading):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrDuplicateReading),
		errors.Is(err, ledger.ErrDuplicateBilling),
		errors.Is(err, ledger.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func currentUserID(c *gin.Context) uint {
	return c.GetUint("user_id")
}

func currentRole(c *gin.Context) string {
	return c.GetString("role")
}

func isAdmin(c *gin.Context) bool {
	role := currentRole(c)
	return role == models.RoleSuperAdmin || role == models.RoleTenantAdmin
}

// currentTenantID resuelve el residencial sobre el que opera el request. Los
// usuarios normales traen el suyo en el token; un SUPERADMIN sin residencial
// propio debe indicarlo con ?tenantId=.
func currentTenantID(c *gin.Context) (uint, bool) {
	if v, ok := c.Get("tenant_id"); ok {
		if id, ok := v.(uint); ok {
			return id, true
		}
	}
	if currentRole(c) == models.RoleSuperAdmin {
		if id, err := strconv.Atoi(c.Query("tenantId")); err == nil && id > 0 {
			return uint(id), true
		}
	}
	return 0, false
}

// requireTenant corta el request con 400 si no hay residencial resoluble.
func requireTenant(c *gin.Context) (uint, bool) {
	tenantID, ok := currentTenantID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No se pudo determinar el residencial"})
	}
	return tenantID, ok
}

// sendNotice despacha un aviso sin bloquear el request. Fallos sólo al log.
func sendNotice(msg notify.Message) {
	if Notifier == nil || msg.Recipient == "" {
		return
	}
	go func() {
		_ = Notifier.Send(msg)
	}()
}
