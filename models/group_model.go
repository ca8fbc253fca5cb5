package models

import (
	"time"

	"github.com/google/uuid"
)

type Group struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name             string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	StudyYear        int       `gorm:"not null" json:"study_year"`
	Specialization   string    `gorm:"size:100" json:"specialization"`
	NumberOfStudents int       `json:"number_of_students"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
