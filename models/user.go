package models

import (
	"labtrack-backend/utils"
	"time"

	"gorm.io/gorm"
)

// Roles known to the system
const (
	RoleAdmin      = "admin"
	RoleBackOffice = "backoffice"
	RoleDirector   = "director"
	RoleEmployee   = "employee"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"uniqueIndex;not null" json:"name"` // mentions resolve by exact name
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Phone    string `json:"phone"`

	Role   string `gorm:"type:varchar(20);not null" json:"role"`
	Points int    `gorm:"default:0" json:"points"` // cumulative, awarded on work order closure

	IsActive  bool       `gorm:"default:true" json:"isActive"`
	LastLogin *time.Time `json:"lastLogin"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Hash password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}

// CanManageWorkOrders reports whether the role may create and edit work orders.
func CanManageWorkOrders(role string) bool {
	return role == RoleAdmin || role == RoleBackOffice || role == RoleDirector
}

// CanAuthorize reports whether the role may flip the authorized gate.
func CanAuthorize(role string) bool {
	return role == RoleAdmin || role == RoleDirector
}
