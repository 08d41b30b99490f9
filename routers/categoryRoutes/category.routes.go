package categoryRoutes

import (
	controllers "eduapi/controllers/category"
	"eduapi/middleware"
	"eduapi/models"
	validators "eduapi/validators/category"

	"github.com/gofiber/fiber/v2"
)

// SetupCategoryRoutes sets up the course category routes. Reads are open to
// any authenticated user; mutation is admin only.
func SetupCategoryRoutes(app *fiber.App) {
	categoryGroup := app.Group("/api/category", middleware.JWTMiddleware)

	categoryGroup.Get("/tree", controllers.ListCategoryTree)

	categoryGroup.Post("/", middleware.RequireRoles(models.RoleAdmin), validators.AddCategory(), controllers.AddCategory)
	categoryGroup.Put("/:id", middleware.RequireRoles(models.RoleAdmin), validators.CategoryID(), validators.UpdateCategory(), controllers.UpdateCategory)
	categoryGroup.Delete("/:id", middleware.RequireRoles(models.RoleAdmin), validators.CategoryID(), controllers.DeleteCategory)
}
