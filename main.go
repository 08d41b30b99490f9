package main

import (
	"eduapi/config"
	"eduapi/database"
	authRoutes "eduapi/routers/authRoutes"
	categoryRoutes "eduapi/routers/categoryRoutes"
	courseRoutes "eduapi/routers/courseRoutes"
	payRoutes "eduapi/routers/payRoutes"
	studentRoutes "eduapi/routers/studentRoutes"
	teacherRoutes "eduapi/routers/teacherRoutes"
	"eduapi/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	categoryRoutes.SetupCategoryRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	studentRoutes.SetupStudentRoutes(app)
	teacherRoutes.SetupTeacherRoutes(app)
	payRoutes.SetupPayRoutes(app)

	// Sweeps stale pending orders into EXPIRED on a fixed cadence
	utils.InitializeOrderExpiryScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
