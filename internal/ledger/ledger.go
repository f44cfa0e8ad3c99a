// Package ledger implementa las reglas de dinero del portal: ciclo de vida
// de facturas, compensación contra saldos a favor, mora, facturación de gas,
// ciclo mensual de cuotas y liquidación de reportes de pago.
//
// Toda operación que muta dinero corre dentro de una única transacción y
// bloquea las filas de usuario/factura afectadas, de modo que dos pagos
// concurrentes sobre la misma factura no se intercalen.
package ledger

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Jusetreynoso/saas-residencial/internal/notify"
	"github.com/Jusetreynoso/saas-residencial/models"
)

// Service agrupa las operaciones del libro mayor sobre una conexión GORM.
// El notificador es opcional: los envíos son best-effort y nunca afectan
// la transacción que los origina.
type Service struct {
	db       *gorm.DB
	notifier notify.Notifier

	// Now se puede sustituir en pruebas.
	Now func() time.Time
}

// New crea un Service. notifier puede ser nil.
func New(db *gorm.DB, notifier notify.Notifier) *Service {
	return &Service{db: db, notifier: notifier, Now: time.Now}
}

// WalletColumn mapea cada categoría de factura a la columna del saldo a
// favor contra el que se compensa. Tabla explícita: gas contra wallet_gas,
// todo lo demás contra mantenimiento.
var WalletColumn = map[models.InvoiceCategory]string{
	models.CategoryRecurringFee: "wallet_maintenance",
	models.CategoryGas:          "wallet_gas",
	models.CategoryExtra:        "wallet_maintenance",
	models.CategoryOther:        "wallet_maintenance",
}

// forUpdate agrega SELECT ... FOR UPDATE en postgres. En sqlite (pruebas)
// la conexión única ya serializa a los escritores.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// dateOf trunca un instante a su fecha calendario.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// monthRange devuelve [inicio, fin) del mes calendario de t.
func monthRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// walletBalance lee el saldo que corresponde a la columna dada.
func walletBalance(u *models.User, column string) decimal.Decimal {
	if column == "wallet_gas" {
		return u.WalletGas
	}
	return u.WalletMaintenance
}

// creditWallet suma amount al saldo a favor del usuario dentro de tx.
func creditWallet(tx *gorm.DB, userID uint, column string, amount decimal.Decimal) error {
	var user models.User
	if err := forUpdate(tx).First(&user, userID).Error; err != nil {
		return fmt.Errorf("credit wallet: %w", translateGormErr(err))
	}
	newBalance := walletBalance(&user, column).Add(amount)
	if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
		Update(column, newBalance).Error; err != nil {
		return fmt.Errorf("credit wallet: %w", err)
	}
	return nil
}

// notifyAsync despacha una notificación fuera de la transacción. Los fallos
// de entrega se registran y se descartan.
func (s *Service) notifyAsync(msg notify.Message) {
	if s.notifier == nil || msg.Recipient == "" {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("pánico en notificador", "panic", r)
			}
		}()
		if err := s.notifier.Send(msg); err != nil {
			slog.Warn("no se pudo enviar la notificación", "recipient", msg.Recipient, "error", err)
		}
	}()
}

// spanishMonths para los conceptos de factura ("Mantenimiento Enero 2025").
var spanishMonths = map[time.Month]string{
	time.January: "Enero", time.February: "Febrero", time.March: "Marzo",
	time.April: "Abril", time.May: "Mayo", time.June: "Junio",
	time.July: "Julio", time.August: "Agosto", time.September: "Septiembre",
	time.October: "Octubre", time.November: "Noviembre", time.December: "Diciembre",
}
