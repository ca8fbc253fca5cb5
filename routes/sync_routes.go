package routes

import (
	"github.com/fiesc/exam_planner/handlers"
	"github.com/fiesc/exam_planner/middleware"
	"github.com/gofiber/fiber/v2"
)

func SyncRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	sync := api.Group("/sync", middleware.Protected(), middleware.AdminRequired())
	sync.Post("/timetable", handlers.TriggerTimetableSync)
}
