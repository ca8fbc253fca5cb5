package services

import (
	"fmt"
	"log"
	"time"

	"github.com/fiesc/exam_planner/models"
	"github.com/fiesc/exam_planner/notifications"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationKind tags what happened to a session. Handlers dispatch intents
// after a core operation succeeds; the scheduling core itself never sends
// anything.
type NotificationKind string

const (
	KindProposed     NotificationKind = "schedule_proposed"
	KindApproved     NotificationKind = "schedule_approved"
	KindRejected     NotificationKind = "schedule_rejected"
	KindSlotAssigned NotificationKind = "slot_assigned"
	KindDeleted      NotificationKind = "schedule_deleted"
	KindExamReminder NotificationKind = "exam_reminder"
)

// NotificationIntent is the typed payload a handler emits instead of the
// free-form maps the old system passed around.
type NotificationIntent struct {
	Kind    NotificationKind
	UserID  uuid.UUID
	Subject string
	Group   string
	Room    string
	Date    time.Time
	Note    string
}

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) render(intent NotificationIntent) (title, message string) {
	day := intent.Date.Format("2006-01-02")
	switch intent.Kind {
	case KindProposed:
		title = "New exam proposal"
		message = fmt.Sprintf("Group %s proposed the %s exam for %s.", intent.Group, intent.Subject, day)
	case KindApproved:
		title = "Exam proposal approved"
		message = fmt.Sprintf("The %s exam proposal for group %s on %s was approved.", intent.Subject, intent.Group, day)
	case KindRejected:
		title = "Exam proposal rejected"
		message = fmt.Sprintf("The %s exam proposal for group %s was rejected. %s", intent.Subject, intent.Group, intent.Note)
	case KindSlotAssigned:
		title = "Exam slot assigned"
		message = fmt.Sprintf("The %s exam for group %s on %s was scheduled in room %s.", intent.Subject, intent.Group, day, intent.Room)
	case KindDeleted:
		title = "Exam schedule removed"
		message = fmt.Sprintf("The %s exam scheduled for group %s on %s was removed.", intent.Subject, intent.Group, day)
	case KindExamReminder:
		title = "Exam tomorrow"
		message = fmt.Sprintf("Reminder: the %s exam for group %s takes place on %s in room %s.", intent.Subject, intent.Group, day, intent.Room)
	default:
		title = "Notification"
		message = intent.Note
	}
	return title, message
}

// Dispatch persists the notification and emails the recipient. Failures are
// logged, never propagated: a lost notification must not fail the operation
// that triggered it.
func (s *NotificationService) Dispatch(intent NotificationIntent) {
	title, message := s.render(intent)

	notification := models.Notification{
		UserID:  intent.UserID,
		Title:   title,
		Message: message,
		Kind:    string(intent.Kind),
	}
	if err := s.db.Create(&notification).Error; err != nil {
		log.Printf("🔥 Failed to store notification for user %s: %v", intent.UserID, err)
		return
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", intent.UserID).Error; err != nil {
		log.Printf("Notification recipient %s has no account, skipping email", intent.UserID)
		return
	}

	go notifications.SendEmail(
		user.FirstName+" "+user.LastName,
		user.Email,
		title,
		fmt.Sprintf("<h1>%s</h1><p>%s</p>", title, message),
	)
}

func (s *NotificationService) ListForUser(userID uuid.UUID, unreadOnly bool) ([]models.Notification, error) {
	query := s.db.Where("user_id = ?", userID).Order("created_at DESC")
	if unreadOnly {
		query = query.Where("read_at IS NULL")
	}

	var items []models.Notification
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *NotificationService) MarkRead(id, userID uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	if err := s.db.First(&notification, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	notification.ReadAt = &now
	if err := s.db.Save(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}
