package courseController

import (
	"eduapi/database"
	"eduapi/middleware"
	"eduapi/models"
	courseValidator "eduapi/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// owningTeacher resolves the caller's teacher profile and verifies it owns
// the course. Only the owning teacher passes; there is no admin bypass for
// chapter and video mutation.
func owningTeacher(db *gorm.DB, userID uint, course models.Course) bool {
	var teacher models.Teacher
	if err := db.Where("user_id = ?", userID).First(&teacher).Error; err != nil {
		return false
	}
	return teacher.ID == course.TeacherID
}

// AddChapter appends a chapter to a course owned by the caller
func AddChapter(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedChapter").(*courseValidator.AddChapterRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ?", reqData.CourseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Course not found!", nil)
	}

	if !owningTeacher(db, userId, course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, "Only the owning teacher may modify this course's chapters!", nil)
	}

	var maxSort int
	db.Model(&models.Chapter{}).Where("course_id = ?", reqData.CourseID).
		Select("COALESCE(MAX(sort), 0)").Scan(&maxSort)

	chapter := models.Chapter{
		CourseID: reqData.CourseID,
		Title:    reqData.Title,
		Sort:     maxSort + 1,
	}

	if err := db.Create(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to create chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, "Chapter created successfully.", chapter)
}

// UpdateChapter renames a chapter on a course owned by the caller
func UpdateChapter(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	chapterID, err := c.ParamsInt("id")
	if err != nil || chapterID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid chapter id!", nil)
	}

	reqData, ok := c.Locals("validatedChapterUpdate").(*courseValidator.UpdateChapterRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var chapter models.Chapter
	if err := db.Where("id = ?", chapterID).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Chapter not found!", nil)
	}

	var course models.Course
	if err := db.Where("id = ?", chapter.CourseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Course not found!", nil)
	}

	if !owningTeacher(db, userId, course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, "Only the owning teacher may modify this course's chapters!", nil)
	}

	chapter.Title = reqData.Title
	if err := db.Save(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to update chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Chapter updated successfully.", chapter)
}

// DeleteChapter removes an empty chapter from a course owned by the caller
func DeleteChapter(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	chapterID, err := c.ParamsInt("id")
	if err != nil || chapterID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid chapter id!", nil)
	}

	db := database.Database.Db

	var chapter models.Chapter
	if err := db.Where("id = ?", chapterID).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Chapter not found!", nil)
	}

	var course models.Course
	if err := db.Where("id = ?", chapter.CourseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Course not found!", nil)
	}

	if !owningTeacher(db, userId, course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, "Only the owning teacher may modify this course's chapters!", nil)
	}

	var videoCount int64
	db.Model(&models.Video{}).Where("chapter_id = ?", chapterID).Count(&videoCount)
	if videoCount > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, "Chapter contains videos and cannot be deleted!", nil)
	}

	if err := db.Delete(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to delete chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Chapter deleted successfully.", nil)
}
