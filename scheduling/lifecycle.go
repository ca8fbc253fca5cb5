package scheduling

import (
	"time"

	"github.com/fiesc/exam_planner/models"
	"github.com/google/uuid"
)

// Lifecycle drives the session state machine:
//
//	propose -> approved | rejected
//	approved -> slot assignment (idempotent mutation, not a status change)
//
// There is no way back from a decided status; re-proposal goes through
// Propose again, which updates the existing (subject, group) row.
type Lifecycle struct {
	repo    Repository
	rooms   RoomCatalog
	checker *Checker
}

func NewLifecycle(repo Repository, rooms RoomCatalog) *Lifecycle {
	return &Lifecycle{repo: repo, rooms: rooms, checker: NewChecker(repo)}
}

// AssignResult is the structured outcome of AssignSlot. A conflicting slot is
// an expected, recoverable answer, not an error: OK is false and Conflicts
// carries what the caller should show the user.
type AssignResult struct {
	OK        bool       `json:"ok"`
	Conflicts []Conflict `json:"conflicts,omitempty"`
	Session   *models.Session
}

// Propose creates a session in proposed status with no room or time slot.
// Proposing again for the same (subject, group) re-dates the existing row and
// resets it to proposed instead of creating a duplicate.
func (l *Lifecycle) Propose(subjectID, teacherID, groupID uuid.UUID, date time.Time) (*models.Session, error) {
	existing, err := l.repo.ListSessions(SessionFilter{SubjectID: &subjectID, GroupID: &groupID})
	if err != nil {
		return nil, err
	}

	if len(existing) > 0 {
		session := existing[0]
		session.Date = date
		session.Status = models.StatusProposed
		// A re-proposed session goes back to having no slot.
		session.RoomID = nil
		session.StartTime = nil
		session.EndTime = nil
		session.RejectionNote = nil
		if err := l.repo.SaveSession(&session); err != nil {
			return nil, err
		}
		return &session, nil
	}

	session := models.Session{
		SubjectID: subjectID,
		TeacherID: teacherID,
		GroupID:   groupID,
		Date:      date,
		Status:    models.StatusProposed,
	}
	if err := l.repo.SaveSession(&session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Decide moves a proposed session to approved or rejected. Room and times are
// never touched here. Deciding a session that is not proposed fails with
// ErrInvalidTransition.
func (l *Lifecycle) Decide(sessionID uuid.UUID, outcome models.SessionStatus, note string) (*models.Session, error) {
	if outcome != models.StatusApproved && outcome != models.StatusRejected {
		return nil, &ValidationError{Field: "status", Msg: "must be approved or rejected"}
	}

	session, err := l.repo.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotFound
	}
	if session.Status != models.StatusProposed {
		return nil, ErrInvalidTransition
	}

	session.Status = outcome
	if outcome == models.StatusRejected && note != "" {
		session.RejectionNote = &note
	}
	if err := l.repo.SaveSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// AssignSlot sets room, window and assistants on an approved session after a
// clean conflict check. On conflict the session is left exactly as it was and
// the conflicts are returned in the result. The caller is expected to run
// this inside the repository's transaction so the check and the write cannot
// interleave with a concurrent assignment.
func (l *Lifecycle) AssignSlot(sessionID, roomID uuid.UUID, start, end time.Time, assistantIDs []uuid.UUID) (*AssignResult, error) {
	if !end.After(start) {
		return nil, invalidWindow()
	}

	session, err := l.repo.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotFound
	}
	if session.Status != models.StatusApproved {
		return nil, ErrInvalidTransition
	}

	room, err := l.rooms.GetRoom(roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrNotFound
	}

	ok, conflicts, err := l.checker.CanAssign(session, roomID, start, end, assistantIDs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &AssignResult{OK: false, Conflicts: conflicts, Session: session}, nil
	}

	session.RoomID = &roomID
	session.StartTime = &start
	session.EndTime = &end
	session.Assistants = nil
	for _, id := range assistantIDs {
		session.Assistants = append(session.Assistants, models.Teacher{ID: id})
	}
	if err := l.repo.SaveSession(session); err != nil {
		return nil, err
	}
	return &AssignResult{OK: true, Session: session}, nil
}

// Delete removes a session outright. Administrative action; there is no soft
// delete in the planner itself.
func (l *Lifecycle) Delete(sessionID uuid.UUID) error {
	deleted, err := l.repo.DeleteSession(sessionID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
