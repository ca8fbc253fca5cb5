package handlers

import (
	"github.com/fiesc/exam_planner/database"
	"github.com/fiesc/exam_planner/services"
	"github.com/gofiber/fiber/v2"
)

// TriggerTimetableSync runs a full reference-data sync against the university
// timetable API on demand. The same sync also runs nightly from cron.
func TriggerTimetableSync(c *fiber.Ctx) error {
	svc := services.NewOrarSyncService(database.DB, services.NewOrarClient())
	report := svc.SyncAll()
	return c.JSON(report)
}
