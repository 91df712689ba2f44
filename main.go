package main

import (
	"log"
	"time"

	"lms/config"
	"lms/database"
	"lms/engine"
	authRoutes "lms/routers/authRoutes"
	quizRoutes "lms/routers/quizRoutes"
	userProfileRoutes "lms/routers/userRoutes"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// Wire the placement engine over the live database
	engine.Sessions = engine.NewManager(
		database.NewQuizStore(database.Database.Db),
		engine.Config{
			AnswerFailureThreshold: config.AppConfig.AnswerFailureThreshold,
			LoadFailureThreshold:   config.AppConfig.LoadFailureThreshold,
			IntermediateCutoff:     config.AppConfig.IntermediateCutoff,
			AdvancedCutoff:         config.AppConfig.AdvancedCutoff,
			StoreTimeout:           time.Duration(config.AppConfig.StoreTimeoutSec) * time.Second,
		},
	)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",    // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization",   // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	userProfileRoutes.SetupUserRoutes(app)
	quizRoutes.SetupQuizRoutes(app)

	// Sweep abandoned placement runs in the background
	utils.StartRunReaper()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
