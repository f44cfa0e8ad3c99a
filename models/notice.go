package models

import "gorm.io/gorm"

// Notice es un aviso publicado por la administración del residencial.
type Notice struct {
	gorm.Model
	TenantID uint   `json:"tenantId" gorm:"not null;index"`
	Tenant   Tenant `json:"-" gorm:"foreignKey:TenantID"`

	Title   string `json:"title" gorm:"not null"`
	Message string `json:"message" gorm:"not null"`
}
