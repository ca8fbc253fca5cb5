package scheduling

import (
	"time"

	"github.com/fiesc/exam_planner/models"
	"github.com/google/uuid"
)

// fakeRepo is an in-memory Repository for exercising the core without a
// database.
type fakeRepo struct {
	sessions map[uuid.UUID]models.Session
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sessions: map[uuid.UUID]models.Session{}}
}

func (r *fakeRepo) put(s models.Session) models.Session {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sessions[s.ID] = s
	return s
}

func (r *fakeRepo) ListSessions(f SessionFilter) ([]models.Session, error) {
	var out []models.Session
	for _, s := range r.sessions {
		if f.Date != nil && !sameDay(s.Date, *f.Date) {
			continue
		}
		if f.DateFrom != nil && s.Date.Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && s.Date.After(*f.DateTo) {
			continue
		}
		if f.RoomID != nil && (s.RoomID == nil || *s.RoomID != *f.RoomID) {
			continue
		}
		if f.TeacherID != nil && !matchesDimension(&s, DimensionTeacher, *f.TeacherID) {
			continue
		}
		if f.GroupID != nil && s.GroupID != *f.GroupID {
			continue
		}
		if f.SubjectID != nil && s.SubjectID != *f.SubjectID {
			continue
		}
		if f.Status != nil && s.Status != *f.Status {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeRepo) GetSession(id uuid.UUID) (*models.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeRepo) SaveSession(s *models.Session) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sessions[s.ID] = *s
	return nil
}

func (r *fakeRepo) DeleteSession(id uuid.UUID) (bool, error) {
	if _, ok := r.sessions[id]; !ok {
		return false, nil
	}
	delete(r.sessions, id)
	return true, nil
}

type fakeCatalog struct {
	rooms []models.Room
}

func (c *fakeCatalog) ListRooms(minCapacity *int) ([]models.Room, error) {
	var out []models.Room
	for _, r := range c.rooms {
		if minCapacity != nil && r.Capacity < *minCapacity {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (c *fakeCatalog) GetRoom(id uuid.UUID) (*models.Room, error) {
	for _, r := range c.rooms {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, nil
}

var examDay = time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)

// at builds a clock time on the exam day.
func at(hour, min int) time.Time {
	return time.Date(2025, time.January, 20, hour, min, 0, 0, time.UTC)
}

func slotted(roomID uuid.UUID, teacherID, groupID uuid.UUID, start, end time.Time) models.Session {
	return models.Session{
		ID:        uuid.New(),
		SubjectID: uuid.New(),
		TeacherID: teacherID,
		GroupID:   groupID,
		RoomID:    &roomID,
		Date:      examDay,
		StartTime: &start,
		EndTime:   &end,
		Status:    models.StatusApproved,
	}
}
