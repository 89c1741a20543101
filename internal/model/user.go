package model

import (
	"time"

	"github.com/google/uuid"
)

// Role values for User.Role.
const (
	RoleAdmin           = "ADMIN"
	RoleBendaharaSMK    = "BENDAHARA_SMK"
	RoleBendaharaSMP    = "BENDAHARA_SMP"
	RoleBendaharaPondok = "BENDAHARA_PONDOK"
	RoleSantri          = "SANTRI"
)

// AdminRoles is the single allow-list consulted by every protected endpoint.
// Do not duplicate these literals at call sites.
var AdminRoles = []string{RoleAdmin, RoleBendaharaSMK, RoleBendaharaSMP, RoleBendaharaPondok}

// ValidRoles are all roles accepted on user creation.
var ValidRoles = []string{RoleAdmin, RoleBendaharaSMK, RoleBendaharaSMP, RoleBendaharaPondok, RoleSantri}

// IsAdminRole reports whether role is in the admin allow-list.
func IsAdminRole(role string) bool {
	for _, r := range AdminRoles {
		if r == role {
			return true
		}
	}
	return false
}

// IsValidRole reports whether role is a known role value.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User stores system identities with role-based access.
// SantriID links a SANTRI-role user to its student record (symmetric with
// Santri.UserID, both optional).
type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"not null"`
	Email         string    `gorm:"uniqueIndex;not null"`
	Role          string    `gorm:"type:varchar(20);not null"`
	EmailVerified bool      `gorm:"not null;default:false"`
	SantriID      *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Accounts []Account `gorm:"foreignKey:UserID"`
}
