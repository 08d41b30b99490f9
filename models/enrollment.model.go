package models

import "gorm.io/gorm"

// Enrollment status values. Cancellation is a status flip, not a delete.
const (
	EnrollActive    = "ACTIVE"
	EnrollCancelled = "CANCELLED"
)

// Enrollment links a student profile to a course. The unique index spans
// the soft-cancelled row, so re-selecting reactivates it.
type Enrollment struct {
	gorm.Model
	StudentID uint   `json:"studentId" gorm:"not null;uniqueIndex:idx_enroll_student_course"`
	CourseID  uint   `json:"courseId" gorm:"not null;uniqueIndex:idx_enroll_student_course"`
	Status    string `json:"status" gorm:"default:'ACTIVE'"`
}
