package models

import "gorm.io/gorm"

// Student is the role-specific profile row owned by a STUDENT user.
type Student struct {
	gorm.Model
	UserID       uint   `json:"userId" gorm:"uniqueIndex;not null"`
	RealName     string `json:"realName" gorm:"default:''"`
	School       string `json:"school" gorm:"default:''"`
	Grade        string `json:"grade" gorm:"default:''"`
	Introduction string `json:"introduction" gorm:"type:text"`
}
