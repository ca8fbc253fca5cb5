package routes

import (
	"github.com/fiesc/exam_planner/handlers"
	"github.com/fiesc/exam_planner/middleware"
	"github.com/gofiber/fiber/v2"
)

func ExportRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	exports := api.Group("/exports", middleware.Protected())
	exports.Get("/excel", handlers.ExportExcel)
	exports.Get("/pdf", handlers.ExportPDF)

	uploads := api.Group("/uploads", middleware.Protected(), middleware.SecretariatRequired())
	uploads.Get("/signature", handlers.GenerateUploadSignature)
}
