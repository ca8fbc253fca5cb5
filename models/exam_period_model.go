package models

import (
	"time"

	"github.com/google/uuid"
)

// ExamPeriod bounds the calendar window in which exams for a semester may be
// proposed.
type ExamPeriod struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	AcademicYear string    `gorm:"size:20;not null" json:"academic_year"`
	Semester     int       `gorm:"not null" json:"semester"`
	StartDate    time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate      time.Time `gorm:"type:date;not null" json:"end_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *ExamPeriod) Contains(day time.Time) bool {
	return !day.Before(p.StartDate) && !day.After(p.EndDate)
}
