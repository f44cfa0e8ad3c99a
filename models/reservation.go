package models

import (
	"time"

	"gorm.io/gorm"
)

// CommonArea es un área social reservable del residencial (gazebo, piscina).
type CommonArea struct {
	gorm.Model
	TenantID uint   `json:"tenantId" gorm:"not null;index"`
	Tenant   Tenant `json:"-" gorm:"foreignKey:TenantID"`
	Name     string `json:"name" gorm:"not null"`
	Capacity int    `json:"capacity" gorm:"default:10"`
}

// Estados de una reserva.
type ReservationStatus string

const (
	ReservationPending  ReservationStatus = "PENDIENTE"
	ReservationApproved ReservationStatus = "APROBADA"
	ReservationRejected ReservationStatus = "RECHAZADA"
)

// Reservation es una solicitud de reserva de un área social para una fecha.
type Reservation struct {
	gorm.Model
	TenantID uint       `json:"tenantId" gorm:"not null;index"`
	Tenant   Tenant     `json:"-" gorm:"foreignKey:TenantID"`
	UserID   uint       `json:"userId" gorm:"not null;index"`
	User     User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	AreaID   uint       `json:"areaId" gorm:"not null"`
	Area     CommonArea `json:"area,omitempty" gorm:"foreignKey:AreaID"`

	Date      time.Time  `json:"date" gorm:"not null"` // fecha solicitada
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`

	Status          ReservationStatus `json:"status" gorm:"default:'PENDIENTE'"`
	RejectionReason string            `json:"rejectionReason"`
}

// BlockedDate marca una fecha no reservable para todo el residencial.
type BlockedDate struct {
	gorm.Model
	TenantID uint      `json:"tenantId" gorm:"not null;uniqueIndex:idx_blocked_tenant_date,priority:1"`
	Tenant   Tenant    `json:"-" gorm:"foreignKey:TenantID"`
	Date     time.Time `json:"date" gorm:"not null;uniqueIndex:idx_blocked_tenant_date,priority:2"`
	Reason   string    `json:"reason" gorm:"not null"` // Ej: "Mantenimiento Piscina"
}
