package models

import "gorm.io/gorm"

// Chapter groups videos within a course. Sort is assigned max+1 on creation.
type Chapter struct {
	gorm.Model
	CourseID uint   `json:"courseId" gorm:"index;not null"`
	Title    string `json:"title" gorm:"not null"`
	Sort     int    `json:"sort" gorm:"default:0"`
}
