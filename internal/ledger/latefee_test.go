package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jusetreynoso/saas-residencial/models"
)

func TestAccrueLateFeesSurchargesOverdue(t *testing.T) {
	f := newFixture(t)

	// Vencida hace un mes y sin mora previa.
	inv, err := f.svc.CreateInvoice(f.tenant.ID, f.owner.ID, &f.unit.ID,
		models.CategoryRecurringFee, "Mantenimiento Febrero 2024", dec("100.00"), f.today.AddDate(0, -1, 0))
	require.NoError(t, err)

	touched, err := f.svc.AccrueLateFees(f.tenant.ID, f.today)
	require.NoError(t, err)
	assert.Equal(t, 1, touched)

	got := f.reloadInvoice(t, inv.ID)
	requireInvariant(t, got)
	assert.Equal(t, "105.00", got.Amount.StringFixed(2))
	assert.Equal(t, "105.00", got.BalanceDue.StringFixed(2))
	assert.Contains(t, got.Concept, "Mora")
	require.NotNil(t, got.LastLateFeeAt)
}

func TestAccrueLateFeesIsIdempotentWithinWindow(t *testing.T) {
	f := newFixture(t)

	inv, err := f.svc.CreateInvoice(f.tenant.ID, f.owner.ID, &f.unit.ID,
		models.CategoryRecurringFee, "Mantenimiento Febrero 2024", dec("100.00"), f.today.AddDate(0, -1, 0))
	require.NoError(t, err)

	_, err = f.svc.AccrueLateFees(f.tenant.ID, f.today)
	require.NoError(t, err)

	// Segunda corrida el mismo día: no toca nada.
	touched, err := f.svc.AccrueLateFees(f.tenant.ID, f.today)
	require.NoError(t, err)
	assert.Zero(t, touched)

	// A los 29 días tampoco.
	touched, err = f.svc.AccrueLateFees(f.tenant.ID, f.today.AddDate(0, 0, 29))
	require.NoError(t, err)
	assert.Zero(t, touched)

	got := f.reloadInvoice(t, inv.ID)
	assert.Equal(t, "105.00", got.Amount.StringFixed(2))
}

// Pasada la ventana de 30 días la mora compone sobre el saldo pendiente
// actual, no sobre el principal original.
func TestAccrueLateFeesCompoundsOnBalance(t *testing.T) {
	f := newFixture(t)

	inv, err := f.svc.CreateInvoice(f.tenant.ID, f.owner.ID, &f.unit.ID,
		models.CategoryRecurringFee, "Mantenimiento Febrero 2024", dec("100.00"), f.today.AddDate(0, -1, 0))
	require.NoError(t, err)

	_, err = f.svc.AccrueLateFees(f.tenant.ID, f.today)
	require.NoError(t, err)

	// Abono parcial: saldo queda en 55.00.
	_, err = f.svc.ApplyPayment(inv.ID, dec("50.00"))
	require.NoError(t, err)

	touched, err := f.svc.AccrueLateFees(f.tenant.ID, f.today.AddDate(0, 0, 30))
	require.NoError(t, err)
	assert.Equal(t, 1, touched)

	got := f.reloadInvoice(t, inv.ID)
	requireInvariant(t, got)
	// 5% de 55.00 = 2.75, no 5% de 100.00.
	assert.Equal(t, "57.75", got.BalanceDue.StringFixed(2))
	assert.Equal(t, "107.75", got.Amount.StringFixed(2))
}

func TestAccrueLateFeesIgnoresOtherCategoriesAndCurrentInvoices(t *testing.T) {
	f := newFixture(t)

	// Gas vencida: la mora sólo aplica a cuotas de mantenimiento.
	gas, err := f.svc.CreateInvoice(f.tenant.ID, f.owner.ID, &f.unit.ID,
		models.CategoryGas, "Gas", dec("40.00"), f.today.AddDate(0, -1, 0))
	require.NoError(t, err)

	// Cuota al día (vence en el futuro).
	current, err := f.svc.CreateInvoice(f.tenant.ID, f.owner.ID, &f.unit.ID,
		models.CategoryRecurringFee, "Mantenimiento Marzo 2024", dec("100.00"), f.today.AddDate(0, 0, 15))
	require.NoError(t, err)

	touched, err := f.svc.AccrueLateFees(f.tenant.ID, f.today)
	require.NoError(t, err)
	assert.Zero(t, touched)

	assert.Equal(t, "40.00", f.reloadInvoice(t, gas.ID).Amount.StringFixed(2))
	assert.Equal(t, "100.00", f.reloadInvoice(t, current.ID).Amount.StringFixed(2))
}

func TestAccrueLateFeesZeroPercentTenant(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Model(&models.Tenant{}).Where("id = ?", f.tenant.ID).
		Update("late_fee_percent", dec("0")).Error)

	_, err := f.svc.CreateInvoice(f.tenant.ID, f.owner.ID, &f.unit.ID,
		models.CategoryRecurringFee, "Mantenimiento Febrero 2024", dec("100.00"), f.today.AddDate(0, -1, 0))
	require.NoError(t, err)

	touched, err := f.svc.AccrueLateFees(f.tenant.ID, f.today)
	require.NoError(t, err)
	assert.Zero(t, touched)
}
