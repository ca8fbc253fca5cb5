package scheduling

import (
	"time"

	"github.com/fiesc/exam_planner/models"
	"github.com/google/uuid"
)

// Dimension names the resource axis along which two sessions can collide.
type Dimension string

const (
	DimensionRoom    Dimension = "room"
	DimensionTeacher Dimension = "teacher"
	DimensionGroup   Dimension = "group"
)

// TimeRange is a half-open interval [Start, End).
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Conflict is a computed report of two sessions colliding over one shared
// resource. It is produced fresh on every query and never persisted.
type Conflict struct {
	Dimension  Dimension `json:"type"`
	SessionA   uuid.UUID `json:"session_a"`
	SessionB   uuid.UUID `json:"session_b"`
	ResourceID uuid.UUID `json:"resource_id"`
	RangeA     TimeRange `json:"range_a"`
	RangeB     TimeRange `json:"range_b"`
}

// Overlaps reports whether two half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Back-to-back windows (aEnd == bStart) do not
// overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func matchesDimension(s *models.Session, dim Dimension, resourceID uuid.UUID) bool {
	switch dim {
	case DimensionRoom:
		return s.RoomID != nil && *s.RoomID == resourceID
	case DimensionTeacher:
		if s.TeacherID == resourceID {
			return true
		}
		for _, a := range s.Assistants {
			if a.ID == resourceID {
				return true
			}
		}
		return false
	case DimensionGroup:
		return s.GroupID == resourceID
	}
	return false
}

// FindConflicts scans the given sessions for pairs that share resourceID on
// the given dimension, fall on the same date, and have overlapping time
// windows. Sessions without an assigned slot are skipped: with no time range
// there is nothing to overlap. Each unordered pair is reported once; callers
// should treat the result as a set.
func FindConflicts(sessions []models.Session, dim Dimension, resourceID uuid.UUID) []Conflict {
	var matched []*models.Session
	for i := range sessions {
		s := &sessions[i]
		if s.Slotted() && matchesDimension(s, dim, resourceID) {
			matched = append(matched, s)
		}
	}

	var conflicts []Conflict
	for i := 0; i < len(matched); i++ {
		for j := i + 1; j < len(matched); j++ {
			a, b := matched[i], matched[j]
			if !sameDay(a.Date, b.Date) {
				continue
			}
			if !Overlaps(*a.StartTime, *a.EndTime, *b.StartTime, *b.EndTime) {
				continue
			}
			conflicts = append(conflicts, Conflict{
				Dimension:  dim,
				SessionA:   a.ID,
				SessionB:   b.ID,
				ResourceID: resourceID,
				RangeA:     TimeRange{Start: *a.StartTime, End: *a.EndTime},
				RangeB:     TimeRange{Start: *b.StartTime, End: *b.EndTime},
			})
		}
	}
	return conflicts
}

// AllConflicts reports every room, teacher and group collision within the
// given session set, across all resources present in it.
func AllConflicts(sessions []models.Session) []Conflict {
	rooms := map[uuid.UUID]struct{}{}
	teachers := map[uuid.UUID]struct{}{}
	groups := map[uuid.UUID]struct{}{}
	for i := range sessions {
		s := &sessions[i]
		if !s.Slotted() {
			continue
		}
		if s.RoomID != nil {
			rooms[*s.RoomID] = struct{}{}
		}
		teachers[s.TeacherID] = struct{}{}
		for _, a := range s.Assistants {
			teachers[a.ID] = struct{}{}
		}
		groups[s.GroupID] = struct{}{}
	}

	var conflicts []Conflict
	for id := range rooms {
		conflicts = append(conflicts, FindConflicts(sessions, DimensionRoom, id)...)
	}
	for id := range teachers {
		conflicts = append(conflicts, FindConflicts(sessions, DimensionTeacher, id)...)
	}
	for id := range groups {
		conflicts = append(conflicts, FindConflicts(sessions, DimensionGroup, id)...)
	}
	return conflicts
}

// Checker decides whether a candidate slot can be assigned without colliding
// with already approved sessions. It is read-only: no call here ever writes.
type Checker struct {
	repo Repository
}

func NewChecker(repo Repository) *Checker {
	return &Checker{repo: repo}
}

// CanAssign checks the proposed (room, window) for session against every
// other approved session on the same date, along the room dimension and the
// teacher dimension for the primary teacher and each proposed assistant.
// It returns (true, nil) when the slot is clean, else (false, conflicts).
func (c *Checker) CanAssign(session *models.Session, roomID uuid.UUID, start, end time.Time, assistantIDs []uuid.UUID) (bool, []Conflict, error) {
	if !end.After(start) {
		return false, nil, invalidWindow()
	}

	approved := models.StatusApproved
	others, err := c.repo.ListSessions(SessionFilter{Date: &session.Date, Status: &approved})
	if err != nil {
		return false, nil, err
	}

	candidate := *session
	candidate.RoomID = &roomID
	candidate.StartTime = &start
	candidate.EndTime = &end
	candidate.Assistants = nil
	for _, id := range assistantIDs {
		candidate.Assistants = append(candidate.Assistants, models.Teacher{ID: id})
	}

	pool := make([]models.Session, 0, len(others)+1)
	for _, o := range others {
		if o.ID != session.ID {
			pool = append(pool, o)
		}
	}
	pool = append(pool, candidate)

	var conflicts []Conflict
	for _, conflict := range FindConflicts(pool, DimensionRoom, roomID) {
		if conflict.SessionA == session.ID || conflict.SessionB == session.ID {
			conflicts = append(conflicts, conflict)
		}
	}

	for _, teacherID := range teacherUnion(session.TeacherID, assistantIDs) {
		for _, conflict := range FindConflicts(pool, DimensionTeacher, teacherID) {
			if conflict.SessionA == session.ID || conflict.SessionB == session.ID {
				conflicts = append(conflicts, conflict)
			}
		}
	}

	if len(conflicts) > 0 {
		return false, conflicts, nil
	}
	return true, nil, nil
}

func teacherUnion(primary uuid.UUID, assistantIDs []uuid.UUID) []uuid.UUID {
	seen := map[uuid.UUID]struct{}{primary: {}}
	union := []uuid.UUID{primary}
	for _, id := range assistantIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		union = append(union, id)
	}
	return union
}
