package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Jusetreynoso/saas-residencial/models"
)

// PaymentResult resume la aplicación de un pago directo.
type PaymentResult struct {
	Status         models.InvoiceStatus `json:"status"`
	CreditToWallet decimal.Decimal      `json:"creditToWallet"`
}

// CreateInvoice crea una factura y, para cuotas de mantenimiento y gas, la
// compensa de inmediato contra el saldo a favor del residente. Todo en una
// sola transacción.
func (s *Service) CreateInvoice(tenantID, userID uint, unitID *uint, category models.InvoiceCategory, concept string, amount decimal.Decimal, dueDate time.Time) (*models.Invoice, error) {
	var inv *models.Invoice
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		inv, err = s.createInvoiceTx(tx, tenantID, userID, unitID, category, concept, amount, dueDate, dateOf(s.Now()))
		return err
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// createInvoiceTx es el paso interno compartido por la creación directa, la
// facturación de gas y el ciclo mensual. Exige amount > 0: los llamadores
// tratan el monto cero como "no facturar", nunca esta operación.
func (s *Service) createInvoiceTx(tx *gorm.DB, tenantID, userID uint, unitID *uint, category models.InvoiceCategory, concept string, amount decimal.Decimal, dueDate, today time.Time) (*models.Invoice, error) {
	if amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	amount = amount.Round(2)

	inv := &models.Invoice{
		TenantID:   tenantID,
		UserID:     userID,
		UnitID:     unitID,
		Category:   category,
		Concept:    concept,
		Amount:     amount,
		AmountPaid: decimal.Zero,
		BalanceDue: amount,
		Status:     models.InvoicePending,
		IssueDate:  today,
		DueDate:    dateOf(dueDate),
	}
	if err := tx.Create(inv).Error; err != nil {
		return nil, fmt.Errorf("crear factura: %w", err)
	}

	// Las cuotas y el gas se compensan al crearse; las facturas EXTRA/OTHER
	// no (el sobrante de sus pagos sí alimenta el saldo de mantenimiento).
	if category == models.CategoryRecurringFee || category == models.CategoryGas {
		if err := s.offsetWithWallet(tx, inv, today); err != nil {
			return nil, err
		}
	}
	return inv, nil
}

// offsetWithWallet aplica el saldo a favor del residente a una factura recién
// creada. Drena la billetera y acredita la factura en el mismo commit: nunca
// puede quedar una sin la otra.
func (s *Service) offsetWithWallet(tx *gorm.DB, inv *models.Invoice, today time.Time) error {
	var user models.User
	if err := forUpdate(tx).First(&user, inv.UserID).Error; err != nil {
		return fmt.Errorf("compensar factura: %w", translateGormErr(err))
	}

	column := WalletColumn[inv.Category]
	balance := walletBalance(&user, column)
	if balance.Sign() <= 0 {
		return nil
	}

	var remainder decimal.Decimal
	if balance.Cmp(inv.BalanceDue) >= 0 {
		// El saldo cubre la factura completa.
		remainder = balance.Sub(inv.BalanceDue)
		inv.AmountPaid = inv.Amount
		inv.BalanceDue = decimal.Zero
		inv.Status = models.InvoicePaid
		paid := today
		inv.PaidDate = &paid
	} else {
		// Abono parcial: la billetera queda en cero.
		remainder = decimal.Zero
		inv.AmountPaid = inv.AmountPaid.Add(balance)
		inv.BalanceDue = inv.BalanceDue.Sub(balance)
		inv.Status = models.InvoicePartial
	}

	if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
		Update(column, remainder).Error; err != nil {
		return fmt.Errorf("compensar factura: %w", err)
	}
	if err := tx.Save(inv).Error; err != nil {
		return fmt.Errorf("compensar factura: %w", err)
	}
	return nil
}

// ApplyPayment aplica un pago directo (cobro en oficina) a una factura.
// Conserva el dinero: lo recibido termina o en la factura o en el saldo a
// favor de la categoría, nunca en ambos ni en ninguno.
func (s *Service) ApplyPayment(invoiceID uint, amountReceived decimal.Decimal) (*PaymentResult, error) {
	if amountReceived.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	amountReceived = amountReceived.Round(2)

	result := &PaymentResult{CreditToWallet: decimal.Zero}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var inv models.Invoice
		if err := forUpdate(tx).First(&inv, invoiceID).Error; err != nil {
			return translateGormErr(err)
		}

		today := dateOf(s.Now())
		remaining := inv.Amount.Sub(inv.AmountPaid)

		if amountReceived.Cmp(remaining) >= 0 {
			// Pago total; el excedente va al saldo a favor de la categoría.
			overflow := amountReceived.Sub(remaining)
			inv.AmountPaid = inv.Amount
			inv.BalanceDue = decimal.Zero
			if inv.Status != models.InvoicePaid {
				inv.Status = models.InvoicePaid
				paid := today
				inv.PaidDate = &paid
			}
			if overflow.Sign() > 0 {
				if err := creditWallet(tx, inv.UserID, WalletColumn[inv.Category], overflow); err != nil {
					return err
				}
				result.CreditToWallet = overflow
			}
		} else {
			inv.AmountPaid = inv.AmountPaid.Add(amountReceived)
			inv.BalanceDue = remaining.Sub(amountReceived)
			inv.Status = models.InvoicePartial
		}

		if err := tx.Save(&inv).Error; err != nil {
			return fmt.Errorf("aplicar pago: %w", err)
		}
		result.Status = inv.Status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
