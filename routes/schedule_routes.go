package routes

import (
	"github.com/fiesc/exam_planner/handlers"
	"github.com/fiesc/exam_planner/middleware"
	"github.com/gofiber/fiber/v2"
)

func ScheduleRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	schedules := api.Group("/schedules", middleware.Protected())
	schedules.Get("", handlers.GetSchedules)
	schedules.Get("/conflicts", handlers.GetConflicts)
	schedules.Get("/available-rooms", handlers.GetAvailableRooms)
	schedules.Get("/:id", handlers.GetSchedule)
	schedules.Post("/propose", middleware.ProposerRequired(), handlers.ProposeSchedule)
	schedules.Post("/:id/decision", middleware.TeacherRequired(), handlers.DecideSchedule)
	schedules.Post("/:id/slot", middleware.SecretariatRequired(), handlers.AssignScheduleSlot)
	schedules.Delete("/:id", middleware.SecretariatRequired(), handlers.DeleteSchedule)
}
