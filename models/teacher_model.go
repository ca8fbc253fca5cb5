package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Teacher struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FirstName  string    `gorm:"size:100;not null" json:"first_name"`
	LastName   string    `gorm:"size:100;not null" json:"last_name"`
	Title      string    `gorm:"size:20" json:"title"`
	Department string    `gorm:"size:100" json:"department"`
	Email      string    `gorm:"size:100;uniqueIndex;not null" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Teacher) FullName() string {
	return strings.TrimSpace(strings.Join([]string{t.Title, t.FirstName, t.LastName}, " "))
}
