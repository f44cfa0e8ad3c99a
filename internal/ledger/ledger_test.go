package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Jusetreynoso/saas-residencial/models"
)

// fixture levanta una base sqlite en memoria con un residencial, un
// apartamento y su titular de facturación.
type fixture struct {
	db     *gorm.DB
	svc    *Service
	tenant models.Tenant
	unit   models.Unit
	owner  models.User
	today  time.Time
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := setupDB(t)
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	svc := New(db, nil)
	svc.Now = func() time.Time { return today }

	f := &fixture{db: db, svc: svc, today: today}

	f.tenant = models.Tenant{
		Name:           "Residencial Las Palmas",
		CutoffDay:      1,
		GraceDays:      15,
		LateFeePercent: dec("5.00"),
	}
	require.NoError(t, db.Create(&f.tenant).Error)

	f.owner = models.User{
		Username: "vecino1",
		FullName: "Juan Pérez",
		Email:    "juan@example.com",
		Role:     models.RoleResident,
		TenantID: &f.tenant.ID,
	}
	require.NoError(t, db.Create(&f.owner).Error)

	f.unit = models.Unit{
		TenantID:       f.tenant.ID,
		Number:         "C-102",
		FeeAmount:      dec("100.00"),
		BillingOwnerID: &f.owner.ID,
	}
	require.NoError(t, db.Create(&f.unit).Error)
	return f
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// setWallet fija los saldos a favor del usuario directamente en la base.
func (f *fixture) setWallet(t *testing.T, userID uint, maintenance, gas string) {
	t.Helper()
	require.NoError(t, f.db.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"wallet_maintenance": dec(maintenance),
			"wallet_gas":         dec(gas),
		}).Error)
}

func (f *fixture) reloadUser(t *testing.T, id uint) models.User {
	t.Helper()
	var u models.User
	require.NoError(t, f.db.First(&u, id).Error)
	return u
}

func (f *fixture) reloadInvoice(t *testing.T, id uint) models.Invoice {
	t.Helper()
	var inv models.Invoice
	require.NoError(t, f.db.First(&inv, id).Error)
	return inv
}

// requireInvariant verifica AmountPaid + BalanceDue == Amount y la
// equivalencia PAID <=> saldo cero.
func requireInvariant(t *testing.T, inv models.Invoice) {
	t.Helper()
	require.True(t, inv.AmountPaid.Add(inv.BalanceDue).Equal(inv.Amount),
		"pagado %s + pendiente %s != monto %s", inv.AmountPaid, inv.BalanceDue, inv.Amount)
	if inv.Status == models.InvoicePaid {
		require.True(t, inv.BalanceDue.IsZero(), "factura PAID con saldo %s", inv.BalanceDue)
	} else {
		require.False(t, inv.BalanceDue.IsZero(), "factura %s con saldo cero", inv.Status)
	}
}
