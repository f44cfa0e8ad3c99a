package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Jusetreynoso/saas-residencial/models"
)

// lateFeeWindowDays: una factura recibe mora a lo sumo una vez por ventana.
const lateFeeWindowDays = 30

var oneHundred = decimal.NewFromInt(100)

// AccrueLateFees recarga mora a las cuotas de mantenimiento vencidas del
// residencial. El recargo es porcentaje del saldo pendiente, no del principal
// original: el interés compone sobre lo que aún se debe. Correrlo dos veces
// el mismo día no toca las facturas ya recargadas.
func (s *Service) AccrueLateFees(tenantID uint, today time.Time) (int, error) {
	today = dateOf(today)

	var tenant models.Tenant
	if err := s.db.First(&tenant, tenantID).Error; err != nil {
		return 0, translateGormErr(err)
	}
	if tenant.LateFeePercent.Sign() <= 0 {
		return 0, nil
	}

	touched := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var overdue []models.Invoice
		if err := forUpdate(tx).
			Where("tenant_id = ? AND category = ? AND status IN ? AND due_date < ?",
				tenantID, models.CategoryRecurringFee,
				[]models.InvoiceStatus{models.InvoicePending, models.InvoicePartial}, today).
			Find(&overdue).Error; err != nil {
			return fmt.Errorf("buscar facturas vencidas: %w", err)
		}

		for i := range overdue {
			inv := &overdue[i]
			if inv.LastLateFeeAt != nil && today.Before(inv.LastLateFeeAt.AddDate(0, 0, lateFeeWindowDays)) {
				continue
			}

			surcharge := inv.BalanceDue.Mul(tenant.LateFeePercent).Div(oneHundred).Round(2)
			if surcharge.Sign() <= 0 {
				continue
			}

			inv.Amount = inv.Amount.Add(surcharge)
			inv.BalanceDue = inv.BalanceDue.Add(surcharge)
			inv.Concept = fmt.Sprintf("%s (+Mora %s)", inv.Concept, surcharge.StringFixed(2))
			stamp := today
			inv.LastLateFeeAt = &stamp

			if err := tx.Save(inv).Error; err != nil {
				return fmt.Errorf("aplicar mora: %w", err)
			}
			touched++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return touched, nil
}
