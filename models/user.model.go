package models

import (
	"gorm.io/gorm"
)

// Role values. A user's role is fixed at registration.
const (
	RoleStudent = "STUDENT"
	RoleTeacher = "TEACHER"
	RoleAdmin   = "ADMIN"
)

// Account status. Disabled accounts cannot log in.
const (
	StatusEnabled  = "ENABLED"
	StatusDisabled = "DISABLED"
)

type User struct {
	gorm.Model
	Username string `json:"username" gorm:"not null"`
	Password string `json:"-" gorm:"not null"`
	Phone    string `json:"phone" gorm:"uniqueIndex;not null"`
	Nickname string `json:"nickname" gorm:"uniqueIndex;not null"`
	Email    string `json:"email" gorm:"default:''"`
	Avatar   string `json:"avatar" gorm:"default:''"`
	Role     string `json:"role" gorm:"default:'STUDENT'"`
	Status   string `json:"status" gorm:"default:'ENABLED'"`
}
