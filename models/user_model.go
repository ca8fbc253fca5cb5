package models

import (
	"time"

	"github.com/google/uuid"
)

// Roles mirror the faculty workflow: group leader proposes, teacher decides,
// secretariat assigns rooms, admin manages everything.
const (
	RoleGroupLeader = "SG"
	RoleTeacher     = "CD"
	RoleSecretariat = "SEC"
	RoleAdmin       = "ADM"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FirstName string    `gorm:"size:100;not null" json:"first_name"`
	LastName  string    `gorm:"size:100;not null" json:"last_name"`
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      string    `gorm:"size:10;not null;default:'SG'" json:"role"`

	TeacherID *uuid.UUID `json:"teacher_id,omitempty"`
	GroupID   *uuid.UUID `json:"group_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
