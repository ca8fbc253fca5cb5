package models

import (
	"time"

	"github.com/google/uuid"
)

// Room is reference data owned by the timetable catalog; the planner never
// mutates it outside of sync.
type Room struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	ShortName string    `gorm:"size:50;not null" json:"short_name"`
	Building  string    `gorm:"size:100" json:"building"`
	Floor     int       `json:"floor"`
	Capacity  int       `gorm:"not null" json:"capacity"`
	Computers int       `json:"computers"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
