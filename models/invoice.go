package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceCategory clasifica el origen del cobro. La categoría decide contra
// cuál saldo a favor se compensa la factura.
type InvoiceCategory string

const (
	CategoryRecurringFee InvoiceCategory = "RECURRING_FEE" // cuota de mantenimiento
	CategoryGas          InvoiceCategory = "GAS"
	CategoryExtra        InvoiceCategory = "EXTRA" // cuota extraordinaria
	CategoryOther        InvoiceCategory = "OTHER"
)

// InvoiceStatus es el estado de pago de una factura.
//
// OVERDUE existe en el vocabulario pero ninguna operación lo asigna; se
// conserva por compatibilidad con el modelo de datos histórico.
type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "PENDING"
	InvoicePartial InvoiceStatus = "PARTIAL"
	InvoicePaid    InvoiceStatus = "PAID"
	InvoiceOverdue InvoiceStatus = "OVERDUE"
)

// Invoice representa una factura a cargo de un residente. Es un registro
// financiero: se muta sólo mediante aplicación de pagos y mora, nunca se
// elimina.
//
// Invariantes: AmountPaid + BalanceDue == Amount tras cualquier mutación;
// Status == PAID exactamente cuando BalanceDue == 0.
type Invoice struct {
	gorm.Model
	TenantID uint   `json:"tenantId" gorm:"not null;index"`
	Tenant   Tenant `json:"-" gorm:"foreignKey:TenantID"`
	UserID   uint   `json:"userId" gorm:"not null;index"`
	User     User   `json:"user,omitempty" gorm:"foreignKey:UserID"`

	// Apartamento que origina la cuota. Junto con la categoría y el mes de
	// emisión forma la llave de idempotencia del ciclo mensual.
	UnitID *uint `json:"unitId" gorm:"index"`

	Category InvoiceCategory `json:"category" gorm:"not null;default:'RECURRING_FEE';index"`
	Concept  string          `json:"concept" gorm:"not null"`

	Amount     decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	AmountPaid decimal.Decimal `json:"amountPaid" gorm:"type:numeric(12,2);not null;default:0"`
	BalanceDue decimal.Decimal `json:"balanceDue" gorm:"type:numeric(12,2);not null;default:0"`

	Status InvoiceStatus `json:"status" gorm:"not null;default:'PENDING';index"`

	IssueDate     time.Time  `json:"issueDate" gorm:"not null"`
	DueDate       time.Time  `json:"dueDate" gorm:"not null"`
	PaidDate      *time.Time `json:"paidDate"`
	LastLateFeeAt *time.Time `json:"lastLateFeeAt"` // última aplicación de mora
}

// Outstanding reporta si la factura aún tiene saldo por cobrar.
func (i *Invoice) Outstanding() bool {
	return i.Status == InvoicePending || i.Status == InvoicePartial
}
