package courseRoutes

import (
	controllers "eduapi/controllers/course"
	"eduapi/middleware"
	"eduapi/models"
	validators "eduapi/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up course, chapter and video routes. Course-level
// mutation is open to teachers and admins; chapter and video mutation is
// checked against the owning teacher inside the controllers.
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/api/course", middleware.JWTMiddleware)

	// Reads
	courseGroup.Get("/page", validators.CoursePage(), controllers.CoursePage)
	courseGroup.Get("/:id", validators.CourseID(), controllers.GetCourseDetail)
	courseGroup.Get("/:courseId/chapters", controllers.GetChaptersWithVideos)

	// Course CRUD
	courseGroup.Post("/", middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin), validators.AddCourse(), controllers.AddCourse)
	courseGroup.Put("/:id", middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin), validators.CourseID(), validators.UpdateCourse(), controllers.UpdateCourse)
	courseGroup.Delete("/:id", middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin), validators.CourseID(), controllers.DeleteCourse)

	// Chapter management (owning teacher only)
	chapterGroup := app.Group("/api/course/chapter", middleware.JWTMiddleware, middleware.RequireRoles(models.RoleTeacher))
	chapterGroup.Post("/", validators.AddChapter(), controllers.AddChapter)
	chapterGroup.Put("/:id", validators.UpdateChapter(), controllers.UpdateChapter)
	chapterGroup.Delete("/:id", controllers.DeleteChapter)

	// Video management (owning teacher only)
	videoGroup := app.Group("/api/course/video", middleware.JWTMiddleware, middleware.RequireRoles(models.RoleTeacher))
	videoGroup.Post("/", validators.AddVideo(), controllers.AddVideo)
	videoGroup.Put("/:id", validators.UpdateVideo(), controllers.UpdateVideo)
	videoGroup.Delete("/:id", controllers.DeleteVideo)
}
