package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProofStatus es el estado de revisión de un reporte de pago.
type ProofStatus string

const (
	ProofPending  ProofStatus = "PENDING"
	ProofApproved ProofStatus = "APPROVED"
	ProofRejected ProofStatus = "REJECTED"
)

// PaymentProof es un reporte de pago enviado por un residente: monto
// declarado más el comprobante adjunto. Al aprobarse se liquida contra las
// facturas pendientes más antiguas de la categoría correspondiente; una vez
// liquidado es inmutable. El rechazo es terminal y sin efectos monetarios.
type PaymentProof struct {
	gorm.Model
	TenantID uint   `json:"tenantId" gorm:"not null;index"`
	Tenant   Tenant `json:"-" gorm:"foreignKey:TenantID"`
	UserID   uint   `json:"userId" gorm:"not null;index"`
	User     User   `json:"user,omitempty" gorm:"foreignKey:UserID"`

	Amount decimal.Decimal `json:"amount" gorm:"type:numeric(10,2);not null"`

	// Pista de categoría declarada por el residente: GAS se liquida contra
	// facturas de gas, cualquier otro valor contra mantenimiento.
	PaymentType InvoiceCategory `json:"paymentType" gorm:"default:'RECURRING_FEE'"`

	EvidencePath string `json:"evidencePath"` // comprobante subido
	UserNote     string `json:"userNote"`     // Ej: "Pago de Marzo y Abril"

	Status       ProofStatus `json:"status" gorm:"default:'PENDING';index"`
	AdminComment string      `json:"adminComment"`
}
