package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Categorías de gasto del residencial.
const (
	ExpenseGas         = "GAS"           // compra de gas (camión)
	ExpenseServices    = "SERVICIOS"     // luz, agua
	ExpenseMaintenance = "MANTENIMIENTO" // reparaciones
	ExpensePayroll     = "NOMINA"
	ExpenseOther       = "OTRO"
)

// Expense es un gasto operativo del residencial. No tiene ciclo de vida más
// allá de su creación; sólo alimenta los reportes agregados.
type Expense struct {
	gorm.Model
	TenantID uint   `json:"tenantId" gorm:"not null;index"`
	Tenant   Tenant `json:"-" gorm:"foreignKey:TenantID"`

	Description string          `json:"description" gorm:"not null"` // Ej: "Carga de Gas Enero"
	Amount      decimal.Decimal `json:"amount" gorm:"type:numeric(10,2);not null"`
	Date        time.Time       `json:"date" gorm:"not null"`
	Category    string          `json:"category" gorm:"default:'OTRO'"`
}
