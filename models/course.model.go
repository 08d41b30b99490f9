package models

import (
	"time"

	"gorm.io/gorm"
)

// Course status values
const (
	CourseDraft     = "DRAFT"
	CoursePublished = "PUBLISHED"
	CourseOffline   = "OFFLINE"
)

// Course represents a sellable course owned by one teacher
type Course struct {
	gorm.Model
	Title       string     `json:"title" gorm:"uniqueIndex;not null"`
	Cover       string     `json:"cover" gorm:"default:''"`
	CategoryID  uint       `json:"categoryId" gorm:"index;not null"`
	TeacherID   uint       `json:"teacherId" gorm:"index;not null"`
	Price       int64      `json:"price" gorm:"default:0"` // cents
	Description string     `json:"description" gorm:"type:text"`
	Status      string     `json:"status" gorm:"default:'DRAFT'"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
}
