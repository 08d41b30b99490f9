package studentController

import (
	"eduapi/database"
	"eduapi/middleware"
	"eduapi/models"
	studentValidator "eduapi/validators/student"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetStudentInfo returns the caller's student profile with account fields
func GetStudentInfo(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	db := database.Database.Db

	var student models.Student
	if err := db.Where("user_id = ?", userId).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Student profile not found!", nil)
	}

	var user models.User
	if err := db.Where("id = ?", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Student info fetched successfully.", fiber.Map{
		"id":           student.ID,
		"userId":       user.ID,
		"username":     user.Username,
		"nickname":     user.Nickname,
		"avatar":       user.Avatar,
		"realName":     student.RealName,
		"school":       student.School,
		"grade":        student.Grade,
		"introduction": student.Introduction,
	})
}

// UpdateProfile updates the caller's student profile. Nickname and avatar
// live on the account row and fall through to it.
func UpdateProfile(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedStudentUpdate").(*studentValidator.UpdateStudentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var student models.Student
	if err := db.Where("user_id = ?", userId).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Student profile not found!", nil)
	}

	if reqData.RealName != "" {
		student.RealName = reqData.RealName
	}
	if reqData.School != "" {
		student.School = reqData.School
	}
	if reqData.Grade != "" {
		student.Grade = reqData.Grade
	}
	if reqData.Introduction != "" {
		student.Introduction = reqData.Introduction
	}
	if err := db.Save(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to update profile!", nil)
	}

	if reqData.Nickname != "" || reqData.Avatar != "" {
		var user models.User
		if err := db.Where("id = ?", userId).First(&user).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, "User not found!", nil)
		}
		if reqData.Nickname != "" {
			user.Nickname = reqData.Nickname
		}
		if reqData.Avatar != "" {
			user.Avatar = reqData.Avatar
		}
		if err := db.Save(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return middleware.JsonResponse(c, fiber.StatusConflict, "Nickname already taken!", nil)
			}
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to update profile!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Profile updated successfully.", student)
}

// Enroll selects a course for the caller. A cancelled enrollment on the
// same course is reactivated instead of duplicated.
func Enroll(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var student models.Student
	if err := db.Where("user_id = ?", userId).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Student profile not found!", nil)
	}

	var course models.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Course not found!", nil)
	}

	var enrollment models.Enrollment
	if err := db.Where("student_id = ? AND course_id = ?", student.ID, courseID).First(&enrollment).Error; err == nil {
		if enrollment.Status == models.EnrollActive {
			return middleware.JsonResponse(c, fiber.StatusConflict, "Already enrolled in this course!", nil)
		}
		enrollment.Status = models.EnrollActive
		if err := db.Save(&enrollment).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to enroll!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, "Course selected successfully.", enrollment)
	}

	enrollment = models.Enrollment{
		StudentID: student.ID,
		CourseID:  courseID,
		Status:    models.EnrollActive,
	}
	if err := db.Create(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, "Already enrolled in this course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to enroll!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, "Course selected successfully.", enrollment)
}

// QuitCourse drops an active enrollment. Refused once the course has started.
func QuitCourse(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var student models.Student
	if err := db.Where("user_id = ?", userId).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Student profile not found!", nil)
	}

	var enrollment models.Enrollment
	if err := db.Where("student_id = ? AND course_id = ? AND status = ?",
		student.ID, courseID, models.EnrollActive).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "No active enrollment for this course!", nil)
	}

	var course models.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Course not found!", nil)
	}

	if course.StartTime != nil && !time.Now().Before(*course.StartTime) {
		return middleware.JsonResponse(c, fiber.StatusConflict, "Course already started, cannot quit!", nil)
	}

	enrollment.Status = models.EnrollCancelled
	if err := db.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to quit course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Course dropped successfully.", nil)
}

// SelectedCourses pages the caller's active enrollments with course detail
func SelectedCourses(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedSelectedList").(*studentValidator.ListRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var student models.Student
	if err := db.Where("user_id = ?", userId).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Student profile not found!", nil)
	}

	offset := (reqData.Page - 1) * reqData.Limit

	query := db.Model(&models.Enrollment{}).
		Where("student_id = ? AND status = ?", student.ID, models.EnrollActive)

	var total int64
	query.Count(&total)

	var enrollments []models.Enrollment
	if err := query.Offset(offset).Limit(reqData.Limit).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to fetch selected courses!", nil)
	}

	type selectedVO struct {
		EnrollmentID uint          `json:"enrollmentId"`
		EnrolledAt   time.Time     `json:"enrolledAt"`
		Course       models.Course `json:"course"`
	}

	result := make([]selectedVO, 0, len(enrollments))
	for _, e := range enrollments {
		var course models.Course
		if err := db.Where("id = ?", e.CourseID).First(&course).Error; err != nil {
			continue
		}
		result = append(result, selectedVO{
			EnrollmentID: e.ID,
			EnrolledAt:   e.CreatedAt,
			Course:       course,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Selected courses fetched successfully.", fiber.Map{
		"courses": result,
		"pagination": fiber.Map{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.Limit,
		},
	})
}

// AvailableCourses lists published courses open for selection
func AvailableCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSelectedList").(*studentValidator.ListRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	offset := (reqData.Page - 1) * reqData.Limit

	db := database.Database.Db.Model(&models.Course{}).Where("status = ?", models.CoursePublished)

	var total int64
	db.Count(&total)

	var courses []models.Course
	if err := db.Offset(offset).Limit(reqData.Limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Available courses fetched successfully.", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.Limit,
		},
	})
}
