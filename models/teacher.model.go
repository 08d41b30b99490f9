package models

import "gorm.io/gorm"

// Teacher is the role-specific profile row owned by a TEACHER user.
type Teacher struct {
	gorm.Model
	UserID       uint   `json:"userId" gorm:"uniqueIndex;not null"`
	RealName     string `json:"realName" gorm:"default:''"`
	Title        string `json:"title" gorm:"default:''"`
	Introduction string `json:"introduction" gorm:"type:text"`
}
