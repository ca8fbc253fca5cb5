package jobs

import (
	"log"
	"time"

	"github.com/fiesc/exam_planner/database"
	"github.com/fiesc/exam_planner/models"
	"github.com/fiesc/exam_planner/services"
)

// SendExamReminders notifies the teacher and the group leaders of every exam
// scheduled for tomorrow. Runs each morning.
func SendExamReminders() {
	log.Println("Running job: SendExamReminders...")

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	var sessions []models.Session
	err := database.DB.
		Preload("Subject").
		Preload("Group").
		Preload("Room").
		Where("date = ? AND status = ? AND start_time IS NOT NULL", tomorrow, models.StatusApproved).
		Find(&sessions).Error
	if err != nil {
		log.Printf("Error loading tomorrow's exams: %v", err)
		return
	}

	if len(sessions) == 0 {
		return
	}

	svc := services.NewNotificationService(database.DB)
	for i := range sessions {
		session := &sessions[i]

		intent := services.NotificationIntent{
			Kind:    services.KindExamReminder,
			Subject: session.Subject.Name,
			Group:   session.Group.Name,
			Date:    session.Date,
		}
		if session.Room != nil {
			intent.Room = session.Room.Name
		}

		var users []models.User
		err := database.DB.
			Where("(role = ? AND teacher_id = ?) OR (role = ? AND group_id = ?)",
				models.RoleTeacher, session.TeacherID,
				models.RoleGroupLeader, session.GroupID).
			Find(&users).Error
		if err != nil {
			log.Printf("Error resolving reminder recipients for session %s: %v", session.ID, err)
			continue
		}

		for _, user := range users {
			intent.UserID = user.ID
			svc.Dispatch(intent)
		}
	}
}
