package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Roles de usuario. La autorización por rol se aplica en el middleware.
const (
	RoleSuperAdmin  = "SUPERADMIN"
	RoleTenantAdmin = "ADMIN_RESIDENCIAL"
	RoleResident    = "RESIDENTE"
)

// User representa un usuario del portal: residente, administrador del
// residencial o super administrador del sistema.
type User struct {
	gorm.Model
	Username     string `json:"username" gorm:"unique;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"` // +1809xxxxxxx
	Role         string `json:"role" gorm:"default:'RESIDENTE'"`

	TenantID *uint   `json:"tenantId"`
	Tenant   *Tenant `json:"-" gorm:"foreignKey:TenantID"`
	UnitID   *uint   `json:"unitId"`
	Unit     *Unit   `json:"unit,omitempty" gorm:"foreignKey:UnitID"`

	// Saldos a favor del residente, separados por categoría de cobro.
	// Nunca negativos.
	WalletMaintenance decimal.Decimal `json:"walletMaintenance" gorm:"type:numeric(12,2);default:0"`
	WalletGas         decimal.Decimal `json:"walletGas" gorm:"type:numeric(12,2);default:0"`
}

// IsAdmin reporta si el usuario puede administrar su residencial.
func (u *User) IsAdmin() bool {
	return u.Role == RoleSuperAdmin || u.Role == RoleTenantAdmin
}
