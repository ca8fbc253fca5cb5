package models

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	StatusProposed SessionStatus = "proposed"
	StatusApproved SessionStatus = "approved"
	StatusRejected SessionStatus = "rejected"
)

// Session is one exam/colloquium assignment: subject x group x teacher on a
// date. Room and times stay null until the proposal is approved and a slot is
// assigned.
type Session struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SubjectID uuid.UUID  `gorm:"not null" json:"subject_id"`
	TeacherID uuid.UUID  `gorm:"not null" json:"teacher_id"`
	GroupID   uuid.UUID  `gorm:"not null" json:"group_id"`
	RoomID    *uuid.UUID `json:"room_id"`

	Date      time.Time     `gorm:"type:date;not null" json:"date"`
	StartTime *time.Time    `json:"start_time"`
	EndTime   *time.Time    `json:"end_time"`
	Status    SessionStatus `gorm:"size:20;not null;default:'proposed'" json:"status"`

	RejectionNote *string `gorm:"type:text" json:"rejection_note,omitempty"`

	Subject    Subject   `gorm:"foreignkey:SubjectID" json:"subject,omitempty"`
	Teacher    Teacher   `gorm:"foreignkey:TeacherID" json:"teacher,omitempty"`
	Group      Group     `gorm:"foreignkey:GroupID" json:"group,omitempty"`
	Room       *Room     `gorm:"foreignkey:RoomID" json:"room,omitempty"`
	Assistants []Teacher `gorm:"many2many:session_assistants" json:"assistants"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Slotted reports whether the session has a full time window assigned.
// Un-slotted sessions cannot take part in time-overlap checks.
func (s *Session) Slotted() bool {
	return s.StartTime != nil && s.EndTime != nil
}
