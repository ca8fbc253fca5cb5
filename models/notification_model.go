package models

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID      uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID  uuid.UUID  `gorm:"not null;index" json:"user_id"`
	Title   string     `gorm:"size:255;not null" json:"title"`
	Message string     `gorm:"type:text;not null" json:"message"`
	Kind    string     `gorm:"size:50;not null" json:"kind"`
	ReadAt  *time.Time `json:"read_at"`

	User User `gorm:"foreignkey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
