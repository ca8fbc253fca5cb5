package scheduling

import (
	"time"

	"github.com/fiesc/exam_planner/models"
	"github.com/google/uuid"
)

// SessionFilter narrows a session listing. Nil fields are ignored. The
// teacher filter matches the primary teacher as well as assistants.
type SessionFilter struct {
	Date      *time.Time
	DateFrom  *time.Time
	DateTo    *time.Time
	RoomID    *uuid.UUID
	TeacherID *uuid.UUID
	GroupID   *uuid.UUID
	SubjectID *uuid.UUID
	Status    *models.SessionStatus
}

// Repository is the persistence collaborator the core reads and writes
// sessions through. Data is fetched fresh per operation; the core keeps no
// cache of its own.
//
// Concurrency contract: AssignSlot reads conflicts and then writes as two
// logical steps. Implementations must let callers scope both steps to one
// transaction so that at most one assignment can win an overlapping
// (room, date, window) or (teacher, date, window).
type Repository interface {
	ListSessions(f SessionFilter) ([]models.Session, error)
	GetSession(id uuid.UUID) (*models.Session, error)
	SaveSession(s *models.Session) error
	DeleteSession(id uuid.UUID) (bool, error)
}

// RoomCatalog exposes the room reference data owned by the timetable system.
type RoomCatalog interface {
	ListRooms(minCapacity *int) ([]models.Room, error)
	GetRoom(id uuid.UUID) (*models.Room, error)
}
