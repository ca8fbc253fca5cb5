package jobs

import (
	"log"

	"github.com/fiesc/exam_planner/database"
	"github.com/fiesc/exam_planner/services"
)

// RunTimetableSync refreshes teachers, rooms and groups from the university
// timetable API. Scheduled nightly.
func RunTimetableSync() {
	log.Println("Running job: RunTimetableSync...")

	svc := services.NewOrarSyncService(database.DB, services.NewOrarClient())
	report := svc.SyncAll()

	log.Printf("Timetable sync done: %d teachers, %d rooms, %d groups",
		report.Teachers, report.Rooms, report.Groups)
}
