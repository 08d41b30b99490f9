package teacherRoutes

import (
	controllers "eduapi/controllers/teacher"
	"eduapi/middleware"
	"eduapi/models"
	validators "eduapi/validators/teacher"

	"github.com/gofiber/fiber/v2"
)

// SetupTeacherRoutes sets up the teacher profile routes
func SetupTeacherRoutes(app *fiber.App) {
	teacherGroup := app.Group("/api/teacher", middleware.JWTMiddleware, middleware.RequireRoles(models.RoleTeacher))

	teacherGroup.Get("/info", controllers.GetInfo)
	teacherGroup.Put("/info", validators.UpdateTeacher(), controllers.UpdateProfile)
	teacherGroup.Get("/courses", controllers.GetCourses)
}
