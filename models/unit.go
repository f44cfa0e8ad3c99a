package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Unit representa un apartamento dentro de un residencial.
type Unit struct {
	gorm.Model
	TenantID uint   `json:"tenantId" gorm:"not null;uniqueIndex:idx_units_tenant_number,priority:1"`
	Tenant   Tenant `json:"-" gorm:"foreignKey:TenantID"`
	Number   string `json:"number" gorm:"not null;uniqueIndex:idx_units_tenant_number,priority:2"` // Ej: C-102
	Floor    string `json:"floor"`

	// Cuota mensual de mantenimiento. Puede variar por apartamento
	// (por metros cuadrados o reglamento). Cero significa "sin cuota automática".
	FeeAmount decimal.Decimal `json:"feeAmount" gorm:"type:numeric(10,2);default:0"`

	// Fórmula opcional para calcular la cuota (variables: area, base).
	// Si está vacía se usa FeeAmount directamente.
	FeeFormula string          `json:"feeFormula"`
	AreaM2     decimal.Decimal `json:"areaM2" gorm:"type:numeric(8,2);default:0"`

	// Responsable de pago del apartamento. Se asigna explícitamente:
	// un apartamento con varios residentes tiene un único titular de facturación.
	BillingOwnerID *uint `json:"billingOwnerId"`
	BillingOwner   *User `json:"billingOwner,omitempty" gorm:"foreignKey:BillingOwnerID"`
}
