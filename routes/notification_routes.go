package routes

import (
	"github.com/fiesc/exam_planner/handlers"
	"github.com/fiesc/exam_planner/middleware"
	"github.com/gofiber/fiber/v2"
)

func NotificationRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	notifications := api.Group("/notifications", middleware.Protected())
	notifications.Get("/me", handlers.GetMyNotifications)
	notifications.Post("/:id/read", handlers.MarkNotificationRead)
}
