package payRoutes

import (
	controllers "eduapi/controllers/pay"
	"eduapi/middleware"
	validators "eduapi/validators/pay"

	"github.com/gofiber/fiber/v2"
)

// SetupPayRoutes sets up the order and payment routes. The gateway callback
// is unauthenticated; everything else requires a logged-in buyer.
func SetupPayRoutes(app *fiber.App) {
	payGroup := app.Group("/api/pay")

	payGroup.Post("/callback", validators.Callback(), controllers.Callback)

	payGroup.Post("/order", middleware.JWTMiddleware, validators.CreateOrder(), controllers.CreateOrder)
	payGroup.Post("/order/:orderNo/cancel", middleware.JWTMiddleware, validators.OrderNo(), controllers.CancelOrder)
	payGroup.Get("/order/:orderNo/status", middleware.JWTMiddleware, validators.OrderNo(), controllers.OrderStatus)
	payGroup.Get("/orders", middleware.JWTMiddleware, validators.OrderList(), controllers.ListOrders)
	payGroup.Post("/create", middleware.JWTMiddleware, validators.CreatePay(), controllers.CreatePay)
}
