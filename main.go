package main

import (
	"log"

	"acesped/config"
	"acesped/database"
	admissionRoutes "acesped/routers/admissionRoutes"
	applicantRoutes "acesped/routers/applicantRoutes"
	authRoutes "acesped/routers/authRoutes"
	newsRoutes "acesped/routers/newsRoutes"
	programRoutes "acesped/routers/programRoutes"
	teamRoutes "acesped/routers/teamRoutes"
	"acesped/utils"

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
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded documents and other static assets
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	admissionRoutes.SetupAdmissionRoutes(app)
	newsRoutes.SetupNewsRoutes(app)
	programRoutes.SetupProgramRoutes(app)
	teamRoutes.SetupTeamRoutes(app)
	applicantRoutes.SetupApplicantRoutes(app)

	utils.InitializeApplicationScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
