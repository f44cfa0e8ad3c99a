package ledger

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Knetic/govaluate"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Jusetreynoso/saas-residencial/internal/notify"
	"github.com/Jusetreynoso/saas-residencial/models"
)

// RunMonthlyCycle genera las cuotas de mantenimiento del mes para todos los
// residenciales cuyo día de corte ya llegó. Es seguro re-ejecutarlo: la
// llave de idempotencia es por apartamento y mes (tenant, unit, período),
// así que un corte a mitad de ciclo se completa en el siguiente intento sin
// duplicar cobros. Un día sin nada que hacer devuelve 0 sin error.
func (s *Service) RunMonthlyCycle(today time.Time) (int, error) {
	today = dateOf(today)

	var tenants []models.Tenant
	if err := s.db.Where("cutoff_day > 0").Find(&tenants).Error; err != nil {
		return 0, fmt.Errorf("listar residenciales: %w", err)
	}

	total := 0
	for i := range tenants {
		n, err := s.runTenantCycle(&tenants[i], today)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// RunTenantCycle genera las cuotas del mes de un solo residencial. Es la
// variante que usa el panel de administración: el ciclo global queda para el
// cron. Misma llave de idempotencia que RunMonthlyCycle.
func (s *Service) RunTenantCycle(tenantID uint, today time.Time) (int, error) {
	var tenant models.Tenant
	if err := s.db.First(&tenant, tenantID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("buscar residencial: %w", err)
	}
	return s.runTenantCycle(&tenant, dateOf(today))
}

// runTenantCycle factura un residencial. Se activa si hoy es igual o mayor
// al día de corte: si el servidor estuvo apagado el día exacto, el ciclo se
// pone al día en la siguiente corrida.
func (s *Service) runTenantCycle(tenant *models.Tenant, today time.Time) (int, error) {
	if today.Day() < tenant.CutoffDay {
		slog.Debug("aún no es día de corte", "tenant", tenant.Name, "cutoff", tenant.CutoffDay)
		return 0, nil
	}

	var units []models.Unit
	if err := s.db.
		Where("tenant_id = ? AND billing_owner_id IS NOT NULL AND (fee_amount > 0 OR fee_formula <> '')", tenant.ID).
		Find(&units).Error; err != nil {
		return 0, fmt.Errorf("listar apartamentos: %w", err)
	}

	monthStart, monthEnd := monthRange(today)
	concept := fmt.Sprintf("Mantenimiento %s %d", spanishMonths[today.Month()], today.Year())
	dueDate := today.AddDate(0, 0, tenant.GraceDays)

	generated := 0
	for i := range units {
		unit := &units[i]

		fee := s.unitFee(unit)
		if fee.Sign() <= 0 {
			continue
		}

		var notice *notify.Message
		err := s.db.Transaction(func(tx *gorm.DB) error {
			// Llave de idempotencia (tenant, unit, mes): si el apartamento ya
			// tiene cuota emitida este mes, no se vuelve a cobrar.
			var count int64
			if err := tx.Model(&models.Invoice{}).
				Where("unit_id = ? AND category = ? AND issue_date >= ? AND issue_date < ?",
					unit.ID, models.CategoryRecurringFee, monthStart, monthEnd).
				Count(&count).Error; err != nil {
				return fmt.Errorf("verificar ciclo: %w", err)
			}
			if count > 0 {
				return ErrDuplicateBilling
			}

			inv, err := s.createInvoiceTx(tx, tenant.ID, *unit.BillingOwnerID, &unit.ID,
				models.CategoryRecurringFee, concept, fee, dueDate, today)
			if err != nil {
				return err
			}

			var owner models.User
			if err := tx.First(&owner, *unit.BillingOwnerID).Error; err == nil {
				msg := notify.FeeInvoiceMessage(&owner, tenant, inv)
				notice = &msg
			}
			return nil
		})
		if err == ErrDuplicateBilling {
			// Ya facturado este mes: no es un error, el ciclo es re-ejecutable.
			continue
		}
		if err != nil {
			return generated, err
		}

		if notice != nil {
			s.notifyAsync(*notice)
		}
		generated++
	}

	if generated > 0 {
		slog.Info("cuotas generadas", "tenant", tenant.Name, "count", generated)
	}
	return generated, nil
}

// unitFee calcula la cuota del apartamento. Si tiene fórmula configurada se
// evalúa con las variables area y base; un error de evaluación se registra
// y se cae al monto fijo.
func (s *Service) unitFee(unit *models.Unit) decimal.Decimal {
	if unit.FeeFormula == "" {
		return unit.FeeAmount
	}

	expr, err := govaluate.NewEvaluableExpression(unit.FeeFormula)
	if err != nil {
		slog.Error("fórmula de cuota inválida", "unit", unit.Number, "formula", unit.FeeFormula, "error", err)
		return unit.FeeAmount
	}

	area, _ := unit.AreaM2.Float64()
	base, _ := unit.FeeAmount.Float64()
	result, err := expr.Evaluate(map[string]interface{}{"area": area, "base": base})
	if err != nil {
		slog.Error("no se pudo evaluar la fórmula de cuota", "unit", unit.Number, "error", err)
		return unit.FeeAmount
	}

	value, ok := result.(float64)
	if !ok {
		slog.Error("la fórmula de cuota no produjo un número", "unit", unit.Number, "result", result)
		return unit.FeeAmount
	}
	return decimal.NewFromFloat(value).Round(2)
}
