package ledger

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Jusetreynoso/saas-residencial/internal/notify"
	"github.com/Jusetreynoso/saas-residencial/models"
)

// gasDueDays: plazo de pago de una factura de gas.
const gasDueDays = 15

// ReadingInput son los datos de una lectura de medidor de gas.
type ReadingInput struct {
	TenantID         uint
	UnitID           uint
	Previous         decimal.Decimal
	Current          decimal.Decimal
	UnitPrice        decimal.Decimal
	ConversionFactor decimal.Decimal
}

// RecordReading registra la lectura mensual de gas de un apartamento y, si
// el apartamento tiene titular de facturación, genera la factura GAS
// compensada contra wallet_gas. Una lectura con actual < anterior no
// persiste nada; un apartamento sin titular guarda la lectura sin factura
// (advertencia, no error).
func (s *Service) RecordReading(in ReadingInput) (*models.MeterReading, error) {
	if in.Current.Cmp(in.Previous) < 0 {
		return nil, ErrInvalidReading
	}
	if in.ConversionFactor.Sign() <= 0 {
		in.ConversionFactor = decimal.NewFromFloat(1.20)
	}

	today := dateOf(s.Now())
	var reading *models.MeterReading
	var ownerNotice *notify.Message

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var unit models.Unit
		if err := tx.Where("id = ? AND tenant_id = ?", in.UnitID, in.TenantID).
			First(&unit).Error; err != nil {
			return translateGormErr(err)
		}

		monthStart, monthEnd := monthRange(today)
		var count int64
		if err := tx.Model(&models.MeterReading{}).
			Where("unit_id = ? AND reading_date >= ? AND reading_date < ?", unit.ID, monthStart, monthEnd).
			Count(&count).Error; err != nil {
			return fmt.Errorf("validar lectura: %w", err)
		}
		if count > 0 {
			return ErrDuplicateReading
		}

		consumed := in.Current.Sub(in.Previous).Mul(in.ConversionFactor).Round(2)
		amountDue := consumed.Mul(in.UnitPrice).Round(2)

		reading = &models.MeterReading{
			TenantID:         in.TenantID,
			UnitID:           unit.ID,
			ReadingDate:      today,
			Previous:         in.Previous.Round(3),
			Current:          in.Current.Round(3),
			UnitPrice:        in.UnitPrice.Round(2),
			ConversionFactor: in.ConversionFactor,
			ConsumedVolume:   consumed,
			AmountDue:        amountDue,
		}
		if err := tx.Create(reading).Error; err != nil {
			return fmt.Errorf("guardar lectura: %w", err)
		}

		if unit.BillingOwnerID == nil {
			slog.Warn("lectura sin factura: apartamento sin titular de facturación",
				"unit", unit.Number, "tenant_id", in.TenantID)
			return nil
		}
		if amountDue.Sign() <= 0 {
			// Consumo cero: la lectura queda registrada, no hay qué cobrar.
			return nil
		}

		concept := fmt.Sprintf("Gas: %s -> %s (%s gls)",
			in.Previous.StringFixed(3), in.Current.StringFixed(3), consumed.StringFixed(2))
		inv, err := s.createInvoiceTx(tx, in.TenantID, *unit.BillingOwnerID, &unit.ID,
			models.CategoryGas, concept, amountDue, today.AddDate(0, 0, gasDueDays), today)
		if err != nil {
			return err
		}
		reading.InvoiceID = &inv.ID
		if err := tx.Save(reading).Error; err != nil {
			return fmt.Errorf("enlazar factura de gas: %w", err)
		}

		var owner models.User
		if err := tx.First(&owner, *unit.BillingOwnerID).Error; err == nil {
			msg := notify.GasInvoiceMessage(&owner, reading, inv)
			ownerNotice = &msg
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if ownerNotice != nil {
		s.notifyAsync(*ownerNotice)
	}
	return reading, nil
}
