package teacherController

import (
	"eduapi/database"
	"eduapi/middleware"
	"eduapi/models"
	teacherValidator "eduapi/validators/teacher"
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetInfo returns the caller's teacher profile with account fields
func GetInfo(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	db := database.Database.Db

	var teacher models.Teacher
	if err := db.Where("user_id = ?", userId).First(&teacher).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Teacher profile not found!", nil)
	}

	var user models.User
	if err := db.Where("id = ?", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Teacher info fetched successfully.", fiber.Map{
		"id":           teacher.ID,
		"userId":       user.ID,
		"username":     user.Username,
		"nickname":     user.Nickname,
		"avatar":       user.Avatar,
		"realName":     teacher.RealName,
		"title":        teacher.Title,
		"introduction": teacher.Introduction,
	})
}

// UpdateProfile updates the caller's teacher profile. Nickname and avatar
// fall through to the account row.
func UpdateProfile(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedTeacherUpdate").(*teacherValidator.UpdateTeacherRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var teacher models.Teacher
	if err := db.Where("user_id = ?", userId).First(&teacher).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Teacher profile not found!", nil)
	}

	if reqData.RealName != "" {
		teacher.RealName = reqData.RealName
	}
	if reqData.Title != "" {
		teacher.Title = reqData.Title
	}
	if reqData.Introduction != "" {
		teacher.Introduction = reqData.Introduction
	}
	if err := db.Save(&teacher).Error; err != nil {
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

	return middleware.JsonResponse(c, fiber.StatusOK, "Profile updated successfully.", teacher)
}

// GetCourses lists the caller's own courses
func GetCourses(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	db := database.Database.Db

	var teacher models.Teacher
	if err := db.Where("user_id = ?", userId).First(&teacher).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Teacher profile not found!", nil)
	}

	var courses []models.Course
	if err := db.Where("teacher_id = ?", teacher.ID).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Courses fetched successfully.", courses)
}
