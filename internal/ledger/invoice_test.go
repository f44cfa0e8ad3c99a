package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jusetreynoso/saas-residencial/models"
)

func TestCreateInvoiceRejectsNonPositiveAmount(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateInvoice(f.tenant.ID, f.owner.ID, nil,
		models.CategoryRecurringFee, "Cuota", dec("0"), f.today)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = f.svc.CreateInvoice(f.tenant.ID, f.owner.ID, nil,
		models.CategoryRecurringFee, "Cuota", dec("-5"), f.today)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	var count int64
	f.db.Model(&models.Invoice{}).Count(&count)
	assert.Zero(t, count, "no debe persistir nada")
}

func TestCreateInvoiceOffsetsFullWallet(t *testing.T) {
	f := newFixture(t)
	f.setWallet(t, f.owner.ID, "150.00", "0")

	inv, err := f.svc.CreateInvoice(f.tenant.ID, f.owner.ID, &f.unit.ID,
		models.CategoryRecurringFee, "Mantenimiento Marzo 2024", dec("100.00"), f.today.AddDate(0, 0, 15))
	require.NoError(t, err)

	got := f.reloadInvoice(t, inv.ID)
	requireInvariant(t, got)
	assert.Equal(t, models.InvoicePaid, got.Status)
	assert.Equal(t, "100.00", got.AmountPaid.StringFixed(2))
	require.NotNil(t, got.PaidDate)

	owner := f.reloadUser(t, f.owner.ID)
	assert.Equal(t, "50.00", owner.WalletMaintenance.StringFixed(2))
}

func TestCreateInvoiceOffsetsPartialWallet(t *testing.T) {
	f := newFixture(t)
	f.setWallet(t, f.owner.ID, "30.00", "0")

	inv, err := f.svc.CreateInvoice(f.tenant.ID, f.owner.ID, &f.unit.ID,
		models.CategoryRecurringFee, "Mantenimiento Marzo 2024", dec("100.00"), f.today.AddDate(0, 0, 15))
	require.NoError(t, err)

	got := f.reloadInvoice(t, inv.ID)
	requireInvariant(t, got)
	assert.Equal(t, models.InvoicePartial, got.Status)
	assert.Equal(t, "30.00", got.AmountPaid.StringFixed(2))
	assert.Equal(t, "70.00", got.BalanceDue.StringFixed(2))
	assert.Nil(t, got.PaidDate)

	owner := f.reloadUser(t, f.owner.ID)
	assert.True(t, owner.WalletMaintenance.IsZero(), "la billetera debe quedar en cero")
}

func TestCreateInvoiceEmptyWalletIsNoOp(t *testing.T) {
	f := newFixture(t)

	inv, err := f.svc.CreateInvoice(f.tenant.ID, f.owner.ID, &f.unit.ID,
		models.CategoryRecurringFee, "Mantenimiento Marzo 2024", dec("100.00"), f.today.AddDate(0, 0, 15))
	require.NoError(t, err)

	got := f.reloadInvoice(t, inv.ID)
	requireInvariant(t, got)
	assert.Equal(t, models.InvoicePending, got.Status)
	assert.True(t, got.AmountPaid.IsZero())
}

func TestCreateInvoiceGasDrawsFromGasWallet(t *testing.T) {
	f := newFixture(t)
	f.setWallet(t, f.owner.ID, "500.00", "20.00")

	inv, err := f.svc.CreateInvoice(f.tenant.ID, f.owner.ID, &f.unit.ID,
		models.CategoryGas, "Gas: 10.000 -> 15.000", dec("60.00"), f.today.AddDate(0, 0, 15))
	require.NoError(t, err)

	got := f.reloadInvoice(t, inv.ID)
	requireInvariant(t, got)
	assert.Equal(t, models.InvoicePartial, got.Status)
	assert.Equal(t, "20.00", got.AmountPaid.StringFixed(2))

	owner := f.reloadUser(t, f.owner.ID)
	assert.True(t, owner.WalletGas.IsZero())
	assert.Equal(t, "500.00", owner.WalletMaintenance.StringFixed(2), "el saldo de mantenimiento no se toca")
}

func TestCreateInvoiceExtraIsNotOffset(t *testing.T) {
	f := newFixture(t)
	f.setWallet(t, f.owner.ID, "500.00", "0")

	inv, err := f.svc.CreateInvoice(f.tenant.ID, f.owner.ID, nil,
		models.CategoryExtra, "Cuota extraordinaria pintura", dec("80.00"), f.today.AddDate(0, 0, 30))
	require.NoError(t, err)

	got := f.reloadInvoice(t, inv.ID)
	requireInvariant(t, got)
	assert.Equal(t, models.InvoicePending, got.Status)

	owner := f.reloadUser(t, f.owner.ID)
	assert.Equal(t, "500.00", owner.WalletMaintenance.StringFixed(2))
}

func TestApplyPaymentRejectsNonPositiveAmount(t *testing.T) {
	f := newFixture(t)
	inv, err := f.svc.CreateInvoice(f.tenant.ID, f.owner.ID, nil,
		models.CategoryRecurringFee, "Cuota", dec("100.00"), f.today)
	require.NoError(t, err)

	_, err = f.svc.ApplyPayment(inv.ID, dec("0"))
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = f.svc.ApplyPayment(inv.ID, dec("-10"))
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestApplyPaymentPartialLeavesPartial(t *testing.T) {
	f := newFixture(t)
	inv, err := f.svc.CreateInvoice(f.tenant.ID, f.owner.ID, nil,
		models.CategoryRecurringFee, "Cuota", dec("100.00"), f.today)
	require.NoError(t, err)

	res, err := f.svc.ApplyPayment(inv.ID, dec("40.00"))
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePartial, res.Status)
	assert.True(t, res.CreditToWallet.IsZero())

	got := f.reloadInvoice(t, inv.ID)
	requireInvariant(t, got)
	assert.Equal(t, "40.00", got.AmountPaid.StringFixed(2))
	assert.Equal(t, "60.00", got.BalanceDue.StringFixed(2))
}

func TestApplyPaymentExactPaysInFull(t *testing.T) {
	f := newFixture(t)
	inv, err := f.svc.CreateInvoice(f.tenant.ID, f.owner.ID, nil,
		models.CategoryRecurringFee, "Cuota", dec("100.00"), f.today)
	require.NoError(t, err)

	res, err := f.svc.ApplyPayment(inv.ID, dec("100.00"))
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, res.Status)
	assert.True(t, res.CreditToWallet.IsZero())

	got := f.reloadInvoice(t, inv.ID)
	requireInvariant(t, got)
	require.NotNil(t, got.PaidDate)
}

func TestApplyPaymentOverflowCreditsWallet(t *testing.T) {
	f := newFixture(t)
	inv, err := f.svc.CreateInvoice(f.tenant.ID, f.owner.ID, nil,
		models.CategoryGas, "Gas", dec("60.00"), f.today)
	require.NoError(t, err)

	res, err := f.svc.ApplyPayment(inv.ID, dec("75.00"))
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, res.Status)
	assert.Equal(t, "15.00", res.CreditToWallet.StringFixed(2))

	got := f.reloadInvoice(t, inv.ID)
	requireInvariant(t, got)

	owner := f.reloadUser(t, f.owner.ID)
	assert.Equal(t, "15.00", owner.WalletGas.StringFixed(2))
	assert.True(t, owner.WalletMaintenance.IsZero())
}

// El pago conserva el dinero: lo recibido termina repartido entre la factura
// y la billetera, sin crear ni destruir un centavo.
func TestApplyPaymentConservesMoney(t *testing.T) {
	f := newFixture(t)
	inv, err := f.svc.CreateInvoice(f.tenant.ID, f.owner.ID, nil,
		models.CategoryRecurringFee, "Cuota", dec("100.00"), f.today)
	require.NoError(t, err)

	for _, amount := range []string{"33.33", "33.33", "50.00"} {
		before := f.reloadInvoice(t, inv.ID)
		ownerBefore := f.reloadUser(t, f.owner.ID)

		_, err := f.svc.ApplyPayment(inv.ID, dec(amount))
		require.NoError(t, err)

		after := f.reloadInvoice(t, inv.ID)
		ownerAfter := f.reloadUser(t, f.owner.ID)
		requireInvariant(t, after)

		deltaPaid := after.AmountPaid.Sub(before.AmountPaid)
		deltaWallet := ownerAfter.WalletMaintenance.Sub(ownerBefore.WalletMaintenance)
		assert.Equal(t, dec(amount).StringFixed(2), deltaPaid.Add(deltaWallet).StringFixed(2))
	}
}
