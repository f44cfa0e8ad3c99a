package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jusetreynoso/saas-residencial/config"
	"github.com/Jusetreynoso/saas-residencial/models"
)

// billingFixture extiende el escenario web con datos facturables en dos
// residenciales: cada uno con un apartamento con titular y cuota.
type billingFixture struct {
	*webFixture
	adminA  models.User
	tenantB models.Tenant
	unitB1  models.Unit
	ownerB  models.User
}

func newBillingFixture(t *testing.T) *billingFixture {
	t.Helper()
	f := &billingFixture{webFixture: newWebFixture(t)}

	fee := decimal.RequireFromString("100.00")
	require.NoError(t, config.DB.Model(&models.Unit{}).Where("id = ?", f.unitA.ID).
		Updates(map[string]interface{}{"fee_amount": fee, "billing_owner_id": f.userA.ID}).Error)

	f.adminA = models.User{Username: "adminA", Role: models.RoleTenantAdmin, TenantID: &f.tenant.ID}
	require.NoError(t, config.DB.Create(&f.adminA).Error)

	f.tenantB = models.Tenant{Name: "Residencial Los Pinos", CutoffDay: 1, GraceDays: 15}
	require.NoError(t, config.DB.Create(&f.tenantB).Error)
	f.unitB1 = models.Unit{TenantID: f.tenantB.ID, Number: "P-101", FeeAmount: fee}
	require.NoError(t, config.DB.Create(&f.unitB1).Error)
	f.ownerB = models.User{Username: "vecinoP", Role: models.RoleResident, TenantID: &f.tenantB.ID, UnitID: &f.unitB1.ID}
	require.NoError(t, config.DB.Create(&f.ownerB).Error)
	require.NoError(t, config.DB.Model(&models.Unit{}).Where("id = ?", f.unitB1.ID).
		Update("billing_owner_id", f.ownerB.ID).Error)

	return f
}

func (f *billingFixture) runCycle(t *testing.T, admin *models.User) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/billing/run", nil)
	c.Set("user_id", admin.ID)
	c.Set("role", admin.Role)
	if admin.TenantID != nil {
		c.Set("tenant_id", *admin.TenantID)
	}
	RunBillingCycleHandler(c)
	return w
}

func (f *billingFixture) invoiceCount(t *testing.T, tenantID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, config.DB.Model(&models.Invoice{}).
		Where("tenant_id = ?", tenantID).Count(&count).Error)
	return count
}

// El administrador de un residencial sólo puede facturar el suyo: los demás
// residenciales quedan intactos aunque también estén en corte.
func TestRunBillingCycleScopedToAdminTenant(t *testing.T) {
	f := newBillingFixture(t)

	w := f.runCycle(t, &f.adminA)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.EqualValues(t, 1, f.invoiceCount(t, f.tenant.ID))
	assert.Zero(t, f.invoiceCount(t, f.tenantB.ID), "el otro residencial no se toca")
}

func TestRunBillingCycleRerunGeneratesNothing(t *testing.T) {
	f := newBillingFixture(t)

	w := f.runCycle(t, &f.adminA)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = f.runCycle(t, &f.adminA)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.EqualValues(t, 1, f.invoiceCount(t, f.tenant.ID))
}

// Un SUPERADMIN no tiene residencial propio: sin ?tenantId= el request no es
// resoluble y no se factura nada.
func TestRunBillingCycleSuperadminNeedsTenant(t *testing.T) {
	f := newBillingFixture(t)
	super := models.User{Username: "root", Role: models.RoleSuperAdmin}
	require.NoError(t, config.DB.Create(&super).Error)

	w := f.runCycle(t, &super)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, f.invoiceCount(t, f.tenant.ID))
	assert.Zero(t, f.invoiceCount(t, f.tenantB.ID))
}
