package studentRoutes

import (
	controllers "eduapi/controllers/student"
	"eduapi/middleware"
	"eduapi/models"
	validators "eduapi/validators/student"

	"github.com/gofiber/fiber/v2"
)

// SetupStudentRoutes sets up the student profile and course selection routes
func SetupStudentRoutes(app *fiber.App) {
	studentGroup := app.Group("/api/student", middleware.JWTMiddleware, middleware.RequireRoles(models.RoleStudent))

	studentGroup.Get("/info", controllers.GetStudentInfo)
	studentGroup.Put("/info", validators.UpdateStudent(), controllers.UpdateProfile)

	studentGroup.Post("/course/:courseId/select", validators.EnrollCourseID(), controllers.Enroll)
	studentGroup.Delete("/course/:courseId/select", validators.EnrollCourseID(), controllers.QuitCourse)
	studentGroup.Get("/course/selected", validators.SelectedCourseList(), controllers.SelectedCourses)
	studentGroup.Get("/course/available", validators.SelectedCourseList(), controllers.AvailableCourses)
}
