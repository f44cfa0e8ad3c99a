package models

import "gorm.io/gorm"

// Estados de una incidencia reportada.
const (
	IncidentPending    = "PENDIENTE"
	IncidentInProgress = "EN_PROCESO"
	IncidentResolved   = "RESUELTO"
	IncidentRejected   = "RECHAZADO"
)

// Incident es un reporte de avería o problema enviado por un residente.
type Incident struct {
	gorm.Model
	TenantID uint   `json:"tenantId" gorm:"not null;index"`
	Tenant   Tenant `json:"-" gorm:"foreignKey:TenantID"`
	UserID   uint   `json:"userId" gorm:"not null"`
	User     User   `json:"user,omitempty" gorm:"foreignKey:UserID"`

	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	PhotoPath   string `json:"photoPath"`

	Status       string `json:"status" gorm:"default:'PENDIENTE'"`
	AdminComment string `json:"adminComment"`
}
