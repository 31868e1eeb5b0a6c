package FiberConfig

import (
	"OpsBoard/Controllers"
	"OpsBoard/Models"
	"OpsBoard/middleware"
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize handlers
	authController := Controllers.NewAuthController(db)
	adminController := Controllers.NewAdminController(db)
	operatorController := Controllers.NewOperatorController(db)

	// API group
	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", authController.Login)
	auth.Post("/logout", middleware.VerifyAny(), authController.Logout)
	auth.Get("/check", middleware.VerifyAny(), authController.Check)

	// Admin routes
	admin := api.Group("/admin", middleware.VerifyAdmin())
	admin.Post("/createDefault", adminController.CreateDefaultTask)
	admin.Get("/getDefaultTasks", adminController.GetDefaultTasks)
	admin.Patch("/updateDefaultTask/:id", adminController.UpdateDefaultTask)
	admin.Delete("/deleteDefaultTask/:id", adminController.DeleteDefaultTask)
	admin.Post("/createNew", adminController.CreateNewTask)
	admin.Post("/createDailyTask", adminController.CreateDailyTask)
	admin.Get("/getTodayDailyTasks", adminController.GetTodayDailyTasks)
	admin.Get("/getOperators", adminController.GetOperators)
	admin.Patch("/updateDailyTask/:id", adminController.UpdateDailyTask)
	admin.Delete("/deleteDailyTask/:id", adminController.DeleteDailyTask)
	admin.Get("/getNewTask", adminController.GetNewTasks)
	admin.Patch("/updateNewTask/:id", adminController.UpdateNewTask)
	admin.Delete("/deleteNewTask/:id", adminController.DeleteNewTask)

	// Admin reporting routes
	admin.Get("/getTotalTasks", adminController.GetTotalTasks)
	admin.Get("/getTodayTaskCompletion", adminController.GetTodayTaskCompletion)
	admin.Get("/getDailyStatusCount", adminController.GetDailyStatusCount)
	admin.Get("/getPriorityCount", adminController.GetPriorityCount)
	admin.Get("/getAssigneeWorkload", adminController.GetAssigneeWorkload)
	admin.Get("/exportAssigneeWorkload", adminController.ExportAssigneeWorkload)

	// Operator routes
	operator := api.Group("/operator", middleware.VerifyOperation())
	operator.Get("/getdailyTasks", operatorController.GetTodayDailyTasks)
	operator.Get("/getnewTasks", operatorController.GetNewTasks)
	operator.Patch("/updateDailyTask/:id", operatorController.UpdateDailyTask)
	operator.Patch("/updateNewTask/:id", operatorController.UpdateNewTask)
	operator.Get("/getTodayTotalTasks", operatorController.GetTodayTotalTasks)
	operator.Get("/getCompletionRate", operatorController.GetCompletionRate)
	operator.Get("/getStatusCountDaily", operatorController.GetStatusCountDaily)
	operator.Get("/getPriorityCount", operatorController.GetPriorityCount)
}

func FiberConfig() {
	fmt.Println("Server Up...")
	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))

	origin := os.Getenv("ORIGIN")
	if origin == "" {
		origin = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origin,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true, // Important for cookies
		MaxAge:           300,  // Max age for preflight requests caching (5 minutes)
	}))

	SetupRoutes(app, Models.DB)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	log.Fatal(app.Listen(":" + port))
}
