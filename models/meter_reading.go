package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MeterReading registra la lectura mensual del medidor de gas de un
// apartamento. Los campos derivados se recalculan en cada guardado.
// A lo sumo una lectura por apartamento por mes calendario.
type MeterReading struct {
	gorm.Model
	TenantID uint   `json:"tenantId" gorm:"not null;index"`
	Tenant   Tenant `json:"-" gorm:"foreignKey:TenantID"`
	UnitID   uint   `json:"unitId" gorm:"not null;index"`
	Unit     Unit   `json:"unit,omitempty" gorm:"foreignKey:UnitID"`

	ReadingDate time.Time `json:"readingDate" gorm:"not null"`

	// Lecturas del medidor en m3, con 3 decimales.
	Previous decimal.Decimal `json:"previous" gorm:"type:numeric(10,3);not null"`
	Current  decimal.Decimal `json:"current" gorm:"type:numeric(10,3);not null"`

	UnitPrice decimal.Decimal `json:"unitPrice" gorm:"type:numeric(6,2);not null"`
	// Factor m3 -> galones.
	ConversionFactor decimal.Decimal `json:"conversionFactor" gorm:"type:numeric(5,2);default:1.20"`

	// Derivados: ConsumedVolume = (Current - Previous) * ConversionFactor,
	// AmountDue = ConsumedVolume * UnitPrice. Redondeados a 2 decimales.
	ConsumedVolume decimal.Decimal `json:"consumedVolume" gorm:"type:numeric(10,2)"`
	AmountDue      decimal.Decimal `json:"amountDue" gorm:"type:numeric(10,2)"`

	// Factura GAS generada por esta lectura, si el apartamento tiene titular.
	InvoiceID *uint    `json:"invoiceId"`
	Invoice   *Invoice `json:"invoice,omitempty" gorm:"foreignKey:InvoiceID"`
}
