package courseController

import (
	"eduapi/database"
	"eduapi/middleware"
	"eduapi/models"
	courseValidator "eduapi/validators/course"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AddCourse creates a new course in DRAFT status. Teacher or admin only
// (route-gated); the creator's teacher profile becomes the owner.
func AddCourse(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	role := c.Locals("role").(string)

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.AddCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var category models.Category
	if err := db.Where("id = ?", reqData.CategoryID).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Category not found!", nil)
	}

	var teacher models.Teacher
	if err := db.Where("user_id = ?", userId).First(&teacher).Error; err != nil {
		// Admins without a teacher profile cannot own courses
		if role == models.RoleAdmin {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, "Admin account has no teacher profile to own the course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Teacher profile not found!", nil)
	}

	var existing models.Course
	if err := db.Where("title = ?", reqData.Title).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, "Course title already exists!", nil)
	}

	course := models.Course{
		Title:       reqData.Title,
		Cover:       reqData.Cover,
		CategoryID:  reqData.CategoryID,
		TeacherID:   teacher.ID,
		Price:       reqData.Price,
		Description: reqData.Description,
		Status:      models.CourseDraft,
		StartTime:   reqData.StartTime,
		EndTime:     reqData.EndTime,
	}

	if err := db.Create(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, "Course title already exists!", nil)
		}
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, "Course created successfully.", course)
}

// UpdateCourse modifies a course. Non-admin teachers may only touch their own.
func UpdateCourse(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	role := c.Locals("role").(string)
	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedCourseUpdate").(*courseValidator.UpdateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Course not found!", nil)
	}

	if role != models.RoleAdmin {
		var teacher models.Teacher
		if err := db.Where("user_id = ?", userId).First(&teacher).Error; err != nil || teacher.ID != course.TeacherID {
			return middleware.JsonResponse(c, fiber.StatusForbidden, "Only the owning teacher may modify this course!", nil)
		}
	}

	if reqData.Title != "" {
		course.Title = reqData.Title
	}
	if reqData.Cover != "" {
		course.Cover = reqData.Cover
	}
	if reqData.CategoryID != 0 {
		var category models.Category
		if err := db.Where("id = ?", reqData.CategoryID).First(&category).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, "Category not found!", nil)
		}
		course.CategoryID = reqData.CategoryID
	}
	if reqData.Price != nil {
		course.Price = *reqData.Price
	}
	if reqData.Description != "" {
		course.Description = reqData.Description
	}
	if reqData.Status != "" {
		course.Status = reqData.Status
	}
	if reqData.StartTime != nil {
		course.StartTime = reqData.StartTime
	}
	if reqData.EndTime != nil {
		course.EndTime = reqData.EndTime
	}

	if err := db.Save(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, "Course title already exists!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Course updated successfully.", course)
}

// DeleteCourse removes a course. Published courses cannot be deleted,
// regardless of caller role.
func DeleteCourse(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	role := c.Locals("role").(string)
	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Course not found!", nil)
	}

	if course.Status == models.CoursePublished {
		return middleware.JsonResponse(c, fiber.StatusConflict, "Published courses cannot be deleted!", nil)
	}

	if role != models.RoleAdmin {
		var teacher models.Teacher
		if err := db.Where("user_id = ?", userId).First(&teacher).Error; err != nil || teacher.ID != course.TeacherID {
			return middleware.JsonResponse(c, fiber.StatusForbidden, "Only the owning teacher may delete this course!", nil)
		}
	}

	if err := db.Delete(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Course deleted successfully.", nil)
}

// chapterVO pairs a chapter with its videos, both sorted ascending
type chapterVO struct {
	models.Chapter
	Videos []models.Video `json:"videos"`
}

// GetCourseDetail returns the course with its chapters and videos
func GetCourseDetail(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Course not found!", nil)
	}

	chapters := chaptersWithVideos(db, courseID)

	return middleware.JsonResponse(c, fiber.StatusOK, "Course detail fetched successfully.", fiber.Map{
		"course":   course,
		"chapters": chapters,
	})
}

// GetChaptersWithVideos lists a course's chapters with their videos
func GetChaptersWithVideos(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("courseId")
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Course not found!", nil)
	}

	chapters := chaptersWithVideos(db, uint(courseID))
	return middleware.JsonResponse(c, fiber.StatusOK, "Chapters fetched successfully.", chapters)
}

func chaptersWithVideos(db *gorm.DB, courseID uint) []chapterVO {
	var chapters []models.Chapter
	db.Where("course_id = ?", courseID).Order("sort asc").Find(&chapters)

	result := make([]chapterVO, 0, len(chapters))
	for _, chapter := range chapters {
		var videos []models.Video
		db.Where("chapter_id = ?", chapter.ID).Order("sort asc").Find(&videos)
		result = append(result, chapterVO{Chapter: chapter, Videos: videos})
	}
	return result
}

// CoursePage lists courses with pagination and optional filters
func CoursePage(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCoursePage").(*courseValidator.PageRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	offset := (reqData.Page - 1) * reqData.Limit

	db := database.Database.Db.Model(&models.Course{})
	if reqData.CategoryID != 0 {
		db = db.Where("category_id = ?", reqData.CategoryID)
	}
	if reqData.Title != "" {
		db = db.Where("title LIKE ?", "%"+reqData.Title+"%")
	}

	var total int64
	db.Count(&total)

	var courses []models.Course
	if err := db.Offset(offset).Limit(reqData.Limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Courses fetched successfully.", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.Limit,
		},
	})
}
