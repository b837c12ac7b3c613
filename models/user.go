package models

import (
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent   UserRole = "student"
	RoleCafeteria UserRole = "cafeteria"
)

func (r UserRole) IsValid() bool {
	return r == RoleStudent || r == RoleCafeteria
}

type User struct {
	gorm.Model
	Email           string   `gorm:"uniqueIndex;not null"`
	Password        string   `gorm:"not null"` // bcrypt hash
	FullName        string
	Role            UserRole `gorm:"type:varchar(16);not null;default:student"`
	RecoveryKeyHash string   `gorm:"size:64"` // sha256 of the key shown once at registration
}
