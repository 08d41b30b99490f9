package courseController

import (
	"eduapi/database"
	"eduapi/middleware"
	"eduapi/models"
	courseValidator "eduapi/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// videoOwnership walks Video -> Chapter -> Course -> TeacherID and compares
// against the caller's teacher profile.
func videoOwnership(db *gorm.DB, userID uint, chapterID uint) (models.Chapter, bool, error) {
	var chapter models.Chapter
	if err := db.Where("id = ?", chapterID).First(&chapter).Error; err != nil {
		return chapter, false, err
	}

	var course models.Course
	if err := db.Where("id = ?", chapter.CourseID).First(&course).Error; err != nil {
		return chapter, false, err
	}

	return chapter, owningTeacher(db, userID, course), nil
}

// AddVideo appends a video to a chapter of a course owned by the caller
func AddVideo(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedVideo").(*courseValidator.AddVideoRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	db := database.Database.Db

	_, owns, err := videoOwnership(db, userId, reqData.ChapterID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Chapter not found!", nil)
	}
	if !owns {
		return middleware.JsonResponse(c, fiber.StatusForbidden, "Only the owning teacher may modify this course's videos!", nil)
	}

	var maxSort int
	db.Model(&models.Video{}).Where("chapter_id = ?", reqData.ChapterID).
		Select("COALESCE(MAX(sort), 0)").Scan(&maxSort)

	video := models.Video{
		ChapterID: reqData.ChapterID,
		Title:     reqData.Title,
		VideoURL:  reqData.VideoURL,
		Duration:  reqData.Duration,
		Sort:      maxSort + 1,
		IsFree:    reqData.IsFree,
	}

	if err := db.Create(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to create video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, "Video created successfully.", video)
}

// UpdateVideo modifies a video on a course owned by the caller
func UpdateVideo(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	videoID, err := c.ParamsInt("id")
	if err != nil || videoID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid video id!", nil)
	}

	reqData, ok := c.Locals("validatedVideoUpdate").(*courseValidator.UpdateVideoRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var video models.Video
	if err := db.Where("id = ?", videoID).First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Video not found!", nil)
	}

	_, owns, err := videoOwnership(db, userId, video.ChapterID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Chapter not found!", nil)
	}
	if !owns {
		return middleware.JsonResponse(c, fiber.StatusForbidden, "Only the owning teacher may modify this course's videos!", nil)
	}

	if reqData.Title != "" {
		video.Title = reqData.Title
	}
	if reqData.VideoURL != "" {
		video.VideoURL = reqData.VideoURL
	}
	if reqData.Duration != nil {
		video.Duration = *reqData.Duration
	}
	if reqData.IsFree != nil {
		video.IsFree = *reqData.IsFree
	}

	if err := db.Save(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to update video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Video updated successfully.", video)
}

// DeleteVideo removes a video from a course owned by the caller
func DeleteVideo(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	videoID, err := c.ParamsInt("id")
	if err != nil || videoID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid video id!", nil)
	}

	db := database.Database.Db

	var video models.Video
	if err := db.Where("id = ?", videoID).First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Video not found!", nil)
	}

	_, owns, err := videoOwnership(db, userId, video.ChapterID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "Chapter not found!", nil)
	}
	if !owns {
		return middleware.JsonResponse(c, fiber.StatusForbidden, "Only the owning teacher may modify this course's videos!", nil)
	}

	if err := db.Delete(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to delete video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Video deleted successfully.", nil)
}
