package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Tenant representa un residencial (condominio) administrado por el sistema.
// Es la frontera de multi-tenancy: todas las demás entidades cuelgan de él.
type Tenant struct {
	gorm.Model
	Name    string `json:"name" gorm:"not null"`
	Address string `json:"address"`

	// Reglas de reservas de áreas sociales
	AllowsReservations bool `json:"allowsReservations" gorm:"default:true"`
	MinAdvanceDays     int  `json:"minAdvanceDays" gorm:"default:7"`
	MaxAdvanceDays     int  `json:"maxAdvanceDays" gorm:"default:30"`
	MaxDurationHours   int  `json:"maxDurationHours" gorm:"default:5"`

	// Configuración financiera
	CutoffDay       int             `json:"cutoffDay" gorm:"default:1"` // día del mes que se generan las cuotas (1-31)
	GraceDays       int             `json:"graceDays" gorm:"default:15"`
	LateFeePercent  decimal.Decimal `json:"lateFeePercent" gorm:"type:numeric(5,2);default:5.00"`
	StartingBalance decimal.Decimal `json:"startingBalance" gorm:"type:numeric(12,2);default:0"`
}
