package scheduling

import (
	"errors"
	"testing"

	"github.com/fiesc/exam_planner/models"
	"github.com/google/uuid"
)

func newLifecycleUnderTest() (*Lifecycle, *fakeRepo, *fakeCatalog) {
	repo := newFakeRepo()
	catalog, _, _, _ := testCatalog()
	return NewLifecycle(repo, catalog), repo, catalog
}

func TestProposeCreatesProposedSession(t *testing.T) {
	lc, _, _ := newLifecycleUnderTest()

	session, err := lc.Propose(uuid.New(), uuid.New(), uuid.New(), examDay)
	if err != nil {
		t.Fatal(err)
	}
	if session.Status != models.StatusProposed {
		t.Fatalf("new proposal must be proposed, got %s", session.Status)
	}
	if session.RoomID != nil || session.StartTime != nil || session.EndTime != nil {
		t.Fatal("new proposal must not carry a slot")
	}
}

func TestProposeIsIdempotentPerSubjectGroup(t *testing.T) {
	lc, repo, _ := newLifecycleUnderTest()
	subject := uuid.New()
	group := uuid.New()
	teacher := uuid.New()

	first, err := lc.Propose(subject, teacher, group, examDay)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := lc.Decide(first.ID, models.StatusRejected, "too early"); err != nil {
		t.Fatal(err)
	}

	newDate := examDay.AddDate(0, 0, 3)
	second, err := lc.Propose(subject, teacher, group, newDate)
	if err != nil {
		t.Fatal(err)
	}

	if second.ID != first.ID {
		t.Fatal("re-proposal must update the existing row, not create another")
	}
	if len(repo.sessions) != 1 {
		t.Fatalf("expected one session row, got %d", len(repo.sessions))
	}
	if !sameDay(second.Date, newDate) {
		t.Fatal("re-proposal must take the latest date")
	}
	if second.Status != models.StatusProposed {
		t.Fatal("re-proposal must reset status to proposed")
	}
}

func TestDecideApprove(t *testing.T) {
	lc, _, _ := newLifecycleUnderTest()
	session, _ := lc.Propose(uuid.New(), uuid.New(), uuid.New(), examDay)

	decided, err := lc.Decide(session.ID, models.StatusApproved, "")
	if err != nil {
		t.Fatal(err)
	}
	if decided.Status != models.StatusApproved {
		t.Fatalf("got %s", decided.Status)
	}
	if decided.RoomID != nil || decided.StartTime != nil {
		t.Fatal("decide must not touch room or times")
	}
}

func TestDecideRejectKeepsNote(t *testing.T) {
	lc, _, _ := newLifecycleUnderTest()
	session, _ := lc.Propose(uuid.New(), uuid.New(), uuid.New(), examDay)

	decided, err := lc.Decide(session.ID, models.StatusRejected, "group has another exam")
	if err != nil {
		t.Fatal(err)
	}
	if decided.RejectionNote == nil || *decided.RejectionNote != "group has another exam" {
		t.Fatal("rejection note not stored")
	}
}

func TestDecideTwiceFails(t *testing.T) {
	lc, _, _ := newLifecycleUnderTest()
	session, _ := lc.Propose(uuid.New(), uuid.New(), uuid.New(), examDay)
	if _, err := lc.Decide(session.ID, models.StatusApproved, ""); err != nil {
		t.Fatal(err)
	}

	if _, err := lc.Decide(session.ID, models.StatusRejected, ""); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestDecideUnknownSession(t *testing.T) {
	lc, _, _ := newLifecycleUnderTest()
	if _, err := lc.Decide(uuid.New(), models.StatusApproved, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDecideBogusOutcome(t *testing.T) {
	lc, _, _ := newLifecycleUnderTest()
	session, _ := lc.Propose(uuid.New(), uuid.New(), uuid.New(), examDay)

	_, err := lc.Decide(session.ID, models.StatusProposed, "")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestAssignSlotRequiresApproval(t *testing.T) {
	lc, _, catalog := newLifecycleUnderTest()
	session, _ := lc.Propose(uuid.New(), uuid.New(), uuid.New(), examDay)

	_, err := lc.AssignSlot(session.ID, catalog.rooms[0].ID, at(10, 0), at(12, 0), nil)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on proposed session, got %v", err)
	}
}

func TestAssignSlotUnknownRoom(t *testing.T) {
	lc, _, _ := newLifecycleUnderTest()
	session, _ := lc.Propose(uuid.New(), uuid.New(), uuid.New(), examDay)
	lc.Decide(session.ID, models.StatusApproved, "")

	_, err := lc.AssignSlot(session.ID, uuid.New(), at(10, 0), at(12, 0), nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown room, got %v", err)
	}
}

func TestAssignSlotConflictLeavesSessionUntouched(t *testing.T) {
	lc, repo, catalog := newLifecycleUnderTest()
	c101 := catalog.rooms[1]

	// Occupant holds C101 between 10:00 and 12:00.
	repo.put(slotted(c101.ID, uuid.New(), uuid.New(), at(10, 0), at(12, 0)))

	session, _ := lc.Propose(uuid.New(), uuid.New(), uuid.New(), examDay)
	lc.Decide(session.ID, models.StatusApproved, "")

	result, err := lc.AssignSlot(session.ID, c101.ID, at(11, 0), at(13, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.OK {
		t.Fatal("expected conflicting assignment to fail")
	}
	if len(result.Conflicts) != 1 || result.Conflicts[0].Dimension != DimensionRoom {
		t.Fatalf("expected one room conflict, got %+v", result.Conflicts)
	}

	stored, _ := repo.GetSession(session.ID)
	if stored.RoomID != nil || stored.StartTime != nil || stored.EndTime != nil {
		t.Fatal("failed assignment must not partially apply")
	}
}

func TestProposeApproveAssignEndToEnd(t *testing.T) {
	lc, repo, catalog := newLifecycleUnderTest()
	c201 := catalog.rooms[0]
	teacher := uuid.New()

	session, err := lc.Propose(uuid.New(), teacher, uuid.New(), examDay)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := lc.Decide(session.ID, models.StatusApproved, ""); err != nil {
		t.Fatal(err)
	}

	result, err := lc.AssignSlot(session.ID, c201.ID, at(10, 0), at(12, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !result.OK {
		t.Fatalf("clean assignment failed: %+v", result.Conflicts)
	}

	stored, _ := repo.GetSession(session.ID)
	if stored.RoomID == nil || *stored.RoomID != c201.ID || !stored.StartTime.Equal(at(10, 0)) {
		t.Fatal("assignment not persisted")
	}

	// A second session cannot take the same room and window.
	other, _ := lc.Propose(uuid.New(), uuid.New(), uuid.New(), examDay)
	lc.Decide(other.ID, models.StatusApproved, "")

	second, err := lc.AssignSlot(other.ID, c201.ID, at(10, 0), at(12, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	if second.OK {
		t.Fatal("double booking must fail")
	}
	if len(second.Conflicts) == 0 || second.Conflicts[0].Dimension != DimensionRoom {
		t.Fatalf("expected room conflict, got %+v", second.Conflicts)
	}
}

func TestAssignSlotStoresAssistants(t *testing.T) {
	lc, repo, catalog := newLifecycleUnderTest()
	assistant := uuid.New()

	session, _ := lc.Propose(uuid.New(), uuid.New(), uuid.New(), examDay)
	lc.Decide(session.ID, models.StatusApproved, "")

	result, err := lc.AssignSlot(session.ID, catalog.rooms[0].ID, at(10, 0), at(12, 0), []uuid.UUID{assistant})
	if err != nil {
		t.Fatal(err)
	}
	if !result.OK {
		t.Fatalf("assignment failed: %+v", result.Conflicts)
	}

	stored, _ := repo.GetSession(session.ID)
	if len(stored.Assistants) != 1 || stored.Assistants[0].ID != assistant {
		t.Fatal("assistants not stored with the slot")
	}
}

func TestDeleteSession(t *testing.T) {
	lc, repo, _ := newLifecycleUnderTest()
	session, _ := lc.Propose(uuid.New(), uuid.New(), uuid.New(), examDay)

	if err := lc.Delete(session.ID); err != nil {
		t.Fatal(err)
	}
	if got, _ := repo.GetSession(session.ID); got != nil {
		t.Fatal("session still present after delete")
	}
	if err := lc.Delete(session.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
