package authRoutes

import (
	controllers "eduapi/controllers/auth"
	"eduapi/middleware"
	"eduapi/models"
	validators "eduapi/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up registration, login and account routes
func SetupAuthRoutes(app *fiber.App) {
	userGroup := app.Group("/api/user")

	// Open endpoints
	userGroup.Post("/register", validators.Register(), controllers.Register)
	userGroup.Post("/login", validators.Login(), controllers.Login)

	// Authenticated account endpoints
	userGroup.Get("/current", middleware.JWTMiddleware, controllers.GetCurrentUser)
	userGroup.Put("/info", middleware.JWTMiddleware, validators.UpdateUser(), controllers.UpdateUserInfo)
	userGroup.Put("/password", middleware.JWTMiddleware, validators.UpdatePassword(), controllers.UpdatePassword)

	// Admin user management
	userGroup.Put("/status/:id/:status", middleware.JWTMiddleware, middleware.RequireRoles(models.RoleAdmin), controllers.UpdateStatus)
	userGroup.Get("/page", middleware.JWTMiddleware, middleware.RequireRoles(models.RoleAdmin), validators.UserPage(), controllers.UserPage)
}
