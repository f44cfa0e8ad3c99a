package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jusetreynoso/saas-residencial/models"
)

// twoDebts crea dos cuotas de mantenimiento: $50 que venció el 2024-01-05 y
// $80 que venció el 2024-02-05.
func (f *fixture) twoDebts(t *testing.T) (models.Invoice, models.Invoice) {
	t.Helper()
	old, err := f.svc.CreateInvoice(f.tenant.ID, f.owner.ID, &f.unit.ID,
		models.CategoryRecurringFee, "Mantenimiento Enero 2024", dec("50.00"),
		time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	newer, err := f.svc.CreateInvoice(f.tenant.ID, f.owner.ID, &f.unit.ID,
		models.CategoryRecurringFee, "Mantenimiento Febrero 2024", dec("80.00"),
		time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return *old, *newer
}

func (f *fixture) newProof(t *testing.T, amount string, paymentType models.InvoiceCategory) models.PaymentProof {
	t.Helper()
	proof := models.PaymentProof{
		TenantID:    f.tenant.ID,
		UserID:      f.owner.ID,
		Amount:      dec(amount),
		PaymentType: paymentType,
		UserNote:    "Pago de Marzo y Abril",
	}
	require.NoError(t, f.db.Create(&proof).Error)
	return proof
}

func TestSettleProofFIFOPartial(t *testing.T) {
	f := newFixture(t)
	old, newer := f.twoDebts(t)
	proof := f.newProof(t, "100.00", models.CategoryRecurringFee)

	res, err := f.svc.SettleProof(proof.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, res.InvoicesPaid)
	assert.True(t, res.WalletCredit.IsZero())
	assert.Equal(t, "100.00", res.AmountSettled.StringFixed(2))

	first := f.reloadInvoice(t, old.ID)
	requireInvariant(t, first)
	assert.Equal(t, models.InvoicePaid, first.Status)

	second := f.reloadInvoice(t, newer.ID)
	requireInvariant(t, second)
	assert.Equal(t, models.InvoicePartial, second.Status)
	assert.Equal(t, "30.00", second.BalanceDue.StringFixed(2))

	var got models.PaymentProof
	require.NoError(t, f.db.First(&got, proof.ID).Error)
	assert.Equal(t, models.ProofApproved, got.Status)
	assert.Contains(t, got.AdminComment, "1 factura(s)")

	owner := f.reloadUser(t, f.owner.ID)
	assert.True(t, owner.WalletMaintenance.IsZero())
}

func TestSettleProofOverflowToWallet(t *testing.T) {
	f := newFixture(t)
	old, newer := f.twoDebts(t)
	proof := f.newProof(t, "200.00", models.CategoryRecurringFee)

	res, err := f.svc.SettleProof(proof.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, res.InvoicesPaid)
	assert.Equal(t, "70.00", res.WalletCredit.StringFixed(2))

	assert.Equal(t, models.InvoicePaid, f.reloadInvoice(t, old.ID).Status)
	assert.Equal(t, models.InvoicePaid, f.reloadInvoice(t, newer.ID).Status)

	owner := f.reloadUser(t, f.owner.ID)
	assert.Equal(t, "70.00", owner.WalletMaintenance.StringFixed(2))
}

func TestSettleProofGasCategoryOnlyTouchesGasDebt(t *testing.T) {
	f := newFixture(t)
	old, _ := f.twoDebts(t)

	gasInv, err := f.svc.CreateInvoice(f.tenant.ID, f.owner.ID, &f.unit.ID,
		models.CategoryGas, "Gas", dec("45.00"), time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	proof := f.newProof(t, "60.00", models.CategoryGas)
	res, err := f.svc.SettleProof(proof.ID)
	require.NoError(t, err)

	assert.Equal(t, models.CategoryGas, res.Category)
	assert.Equal(t, 1, res.InvoicesPaid)
	assert.Equal(t, "15.00", res.WalletCredit.StringFixed(2))

	assert.Equal(t, models.InvoicePaid, f.reloadInvoice(t, gasInv.ID).Status)
	// La deuda de mantenimiento no se toca.
	assert.Equal(t, models.InvoicePending, f.reloadInvoice(t, old.ID).Status)

	owner := f.reloadUser(t, f.owner.ID)
	assert.Equal(t, "15.00", owner.WalletGas.StringFixed(2))
	assert.True(t, owner.WalletMaintenance.IsZero())
}

func TestSettleProofWithNoDebtCreditsEverything(t *testing.T) {
	f := newFixture(t)
	proof := f.newProof(t, "120.00", models.CategoryRecurringFee)

	res, err := f.svc.SettleProof(proof.ID)
	require.NoError(t, err)
	assert.Zero(t, res.InvoicesPaid)
	assert.Equal(t, "120.00", res.WalletCredit.StringFixed(2))

	owner := f.reloadUser(t, f.owner.ID)
	assert.Equal(t, "120.00", owner.WalletMaintenance.StringFixed(2))
}

func TestSettleProofRequiresPendingState(t *testing.T) {
	f := newFixture(t)
	proof := f.newProof(t, "50.00", models.CategoryRecurringFee)

	_, err := f.svc.SettleProof(proof.ID)
	require.NoError(t, err)

	// Un reporte ya liquidado es inmutable.
	_, err = f.svc.SettleProof(proof.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	err = f.svc.RejectProof(proof.ID, "duplicado")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRejectProofHasNoMonetaryEffect(t *testing.T) {
	f := newFixture(t)
	old, _ := f.twoDebts(t)
	proof := f.newProof(t, "100.00", models.CategoryRecurringFee)

	require.NoError(t, f.svc.RejectProof(proof.ID, "comprobante ilegible"))

	var got models.PaymentProof
	require.NoError(t, f.db.First(&got, proof.ID).Error)
	assert.Equal(t, models.ProofRejected, got.Status)
	assert.Equal(t, "comprobante ilegible", got.AdminComment)

	assert.Equal(t, models.InvoicePending, f.reloadInvoice(t, old.ID).Status)
	owner := f.reloadUser(t, f.owner.ID)
	assert.True(t, owner.WalletMaintenance.IsZero())

	// Y tampoco se puede aprobar después.
	_, err := f.svc.SettleProof(proof.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestSettleProofUnknownProof(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.SettleProof(424242)
	assert.ErrorIs(t, err, ErrNotFound)
}
