package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Jusetreynoso/saas-residencial/internal/notify"
	"github.com/Jusetreynoso/saas-residencial/models"
)

// SettlementResult resume la liquidación de un reporte de pago.
type SettlementResult struct {
	Category      models.InvoiceCategory `json:"category"`
	InvoicesPaid  int                    `json:"invoicesPaid"`
	WalletCredit  decimal.Decimal        `json:"walletCredit"`
	AmountSettled decimal.Decimal        `json:"amountSettled"`
}

// SettleProof aprueba un reporte de pago y distribuye su monto contra las
// facturas pendientes del residente, de la deuda más vieja a la más nueva
// (FIFO por fecha de vencimiento), dentro de la categoría declarada. El
// sobrante se acredita al saldo a favor correspondiente. El recorrido
// completo, el abono a la billetera y el cambio de estado del reporte
// confirman juntos: un commit parcial crearía o destruiría dinero.
func (s *Service) SettleProof(proofID uint) (*SettlementResult, error) {
	result := &SettlementResult{WalletCredit: decimal.Zero, AmountSettled: decimal.Zero}
	var notice *notify.Message

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var proof models.PaymentProof
		if err := forUpdate(tx).First(&proof, proofID).Error; err != nil {
			return translateGormErr(err)
		}
		if proof.Status != models.ProofPending {
			return ErrInvalidState
		}

		// GAS se liquida contra facturas de gas; cualquier otra pista cae en
		// el bucket de mantenimiento.
		category := models.CategoryRecurringFee
		if proof.PaymentType == models.CategoryGas {
			category = models.CategoryGas
		}
		result.Category = category

		var outstanding []models.Invoice
		if err := forUpdate(tx).
			Where("user_id = ? AND category = ? AND status IN ?",
				proof.UserID, category,
				[]models.InvoiceStatus{models.InvoicePending, models.InvoicePartial}).
			Order("due_date asc").
			Find(&outstanding).Error; err != nil {
			return fmt.Errorf("buscar deuda pendiente: %w", err)
		}

		today := dateOf(s.Now())
		remaining := proof.Amount

		for i := range outstanding {
			if remaining.Sign() <= 0 {
				break
			}
			inv := &outstanding[i]

			if remaining.Cmp(inv.BalanceDue) >= 0 {
				// Cubre la factura completa; seguimos con la siguiente deuda.
				remaining = remaining.Sub(inv.BalanceDue)
				result.AmountSettled = result.AmountSettled.Add(inv.BalanceDue)
				inv.AmountPaid = inv.Amount
				inv.BalanceDue = decimal.Zero
				inv.Status = models.InvoicePaid
				paid := today
				inv.PaidDate = &paid
				result.InvoicesPaid++
			} else {
				// Abono parcial a la más vieja que no alcanza a cubrir.
				inv.AmountPaid = inv.AmountPaid.Add(remaining)
				inv.BalanceDue = inv.BalanceDue.Sub(remaining)
				inv.Status = models.InvoicePartial
				result.AmountSettled = result.AmountSettled.Add(remaining)
				remaining = decimal.Zero
			}

			if err := tx.Save(inv).Error; err != nil {
				return fmt.Errorf("liquidar factura: %w", err)
			}
		}

		if remaining.Sign() > 0 {
			if err := creditWallet(tx, proof.UserID, WalletColumn[category], remaining); err != nil {
				return err
			}
			result.WalletCredit = remaining
		}

		proof.Status = models.ProofApproved
		proof.AdminComment = fmt.Sprintf("Aprobado: %d factura(s) saldada(s), %s a favor",
			result.InvoicesPaid, result.WalletCredit.StringFixed(2))
		if err := tx.Save(&proof).Error; err != nil {
			return fmt.Errorf("aprobar reporte: %w", err)
		}

		var user models.User
		if err := tx.First(&user, proof.UserID).Error; err == nil {
			msg := notify.ProofApprovedMessage(&user, &proof, result.InvoicesPaid, result.WalletCredit)
			notice = &msg
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if notice != nil {
		s.notifyAsync(*notice)
	}
	return result, nil
}

// RejectProof rechaza un reporte de pago pendiente. Terminal y sin efecto
// monetario.
func (s *Service) RejectProof(proofID uint, comment string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var proof models.PaymentProof
		if err := forUpdate(tx).First(&proof, proofID).Error; err != nil {
			return translateGormErr(err)
		}
		if proof.Status != models.ProofPending {
			return ErrInvalidState
		}
		proof.Status = models.ProofRejected
		proof.AdminComment = comment
		return tx.Save(&proof).Error
	})
}
