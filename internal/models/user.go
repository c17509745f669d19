package models

import (
	"time"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	RoleID       uint64    `gorm:"not null" json:"role_id"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Role          Role      `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	AssignedTasks []Task    `gorm:"foreignKey:AssigneeID" json:"-"`
	Projects      []Project `gorm:"many2many:project_members" json:"-"`
}
