package repository

import (
	"errors"

	"github.com/fiesc/exam_planner/models"
	"github.com/fiesc/exam_planner/scheduling"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionRepository implements scheduling.Repository over GORM. Handlers
// construct one per request (or per transaction) and hand it to the core, so
// the core never sees a database handle.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) ListSessions(f scheduling.SessionFilter) ([]models.Session, error) {
	query := r.db.Model(&models.Session{}).
		Preload("Subject").
		Preload("Teacher").
		Preload("Group").
		Preload("Room").
		Preload("Assistants")

	if f.Date != nil {
		query = query.Where("date = ?", f.Date.Format("2006-01-02"))
	}
	if f.DateFrom != nil {
		query = query.Where("date >= ?", f.DateFrom.Format("2006-01-02"))
	}
	if f.DateTo != nil {
		query = query.Where("date <= ?", f.DateTo.Format("2006-01-02"))
	}
	if f.RoomID != nil {
		query = query.Where("room_id = ?", *f.RoomID)
	}
	if f.TeacherID != nil {
		query = query.Where(
			"teacher_id = ? OR id IN (SELECT session_id FROM session_assistants WHERE teacher_id = ?)",
			*f.TeacherID, *f.TeacherID,
		)
	}
	if f.GroupID != nil {
		query = query.Where("group_id = ?", *f.GroupID)
	}
	if f.SubjectID != nil {
		query = query.Where("subject_id = ?", *f.SubjectID)
	}
	if f.Status != nil {
		query = query.Where("status = ?", *f.Status)
	}

	var sessions []models.Session
	if err := query.Order("date, start_time").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *SessionRepository) GetSession(id uuid.UUID) (*models.Session, error) {
	var session models.Session
	err := r.db.
		Preload("Subject").
		Preload("Teacher").
		Preload("Group").
		Preload("Room").
		Preload("Assistants").
		First(&session, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) SaveSession(s *models.Session) error {
	if s.ID == uuid.Nil {
		return r.db.Omit("Subject", "Teacher", "Group", "Room").Create(s).Error
	}

	err := r.db.Omit("Subject", "Teacher", "Group", "Room", "Assistants").Save(s).Error
	if err != nil {
		return err
	}
	// Assistants are replaced wholesale; the slot assignment owns the set.
	return r.db.Model(s).Association("Assistants").Replace(s.Assistants)
}

func (r *SessionRepository) DeleteSession(id uuid.UUID) (bool, error) {
	result := r.db.Select("Assistants").Delete(&models.Session{ID: id})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
