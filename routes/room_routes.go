package routes

import (
	"github.com/fiesc/exam_planner/handlers"
	"github.com/fiesc/exam_planner/middleware"
	"github.com/gofiber/fiber/v2"
)

func RoomRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	rooms := api.Group("/rooms", middleware.Protected())
	rooms.Get("", handlers.GetRooms)
	rooms.Get("/:id", handlers.GetRoom)

	periods := api.Group("/exam-periods", middleware.Protected())
	periods.Get("", handlers.GetExamPeriods)
	periods.Post("", middleware.SecretariatRequired(), handlers.CreateExamPeriod)
}
