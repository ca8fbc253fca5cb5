package scheduling

import (
	"errors"
	"testing"

	"github.com/fiesc/exam_planner/models"
	"github.com/google/uuid"
)

func TestOverlapsTouchingBoundary(t *testing.T) {
	if Overlaps(at(10, 0), at(12, 0), at(12, 0), at(13, 0)) {
		t.Fatal("back-to-back windows must not overlap")
	}
}

func TestOverlapsPartial(t *testing.T) {
	if !Overlaps(at(10, 0), at(12, 0), at(11, 0), at(13, 0)) {
		t.Fatal("expected overlap for 10-12 vs 11-13")
	}
}

func TestOverlapsIdentical(t *testing.T) {
	if !Overlaps(at(10, 0), at(12, 0), at(10, 0), at(12, 0)) {
		t.Fatal("identical ranges must overlap")
	}
}

func TestOverlapsContained(t *testing.T) {
	if !Overlaps(at(9, 0), at(13, 0), at(10, 0), at(11, 0)) {
		t.Fatal("contained range must overlap")
	}
}

func TestOverlapsSymmetry(t *testing.T) {
	cases := [][4]int{
		{10, 12, 11, 13},
		{10, 12, 12, 13},
		{10, 12, 10, 12},
		{8, 9, 14, 15},
	}
	for _, c := range cases {
		a := Overlaps(at(c[0], 0), at(c[1], 0), at(c[2], 0), at(c[3], 0))
		b := Overlaps(at(c[2], 0), at(c[3], 0), at(c[0], 0), at(c[1], 0))
		if a != b {
			t.Fatalf("overlaps not symmetric for %v", c)
		}
	}
}

func TestFindConflictsReportsPairOnce(t *testing.T) {
	room := uuid.New()
	s1 := slotted(room, uuid.New(), uuid.New(), at(10, 0), at(12, 0))
	s2 := slotted(room, uuid.New(), uuid.New(), at(11, 0), at(13, 0))

	for _, sessions := range [][]models.Session{{s1, s2}, {s2, s1}} {
		conflicts := FindConflicts(sessions, DimensionRoom, room)
		if len(conflicts) != 1 {
			t.Fatalf("expected exactly one conflict, got %d", len(conflicts))
		}
		c := conflicts[0]
		if c.Dimension != DimensionRoom || c.ResourceID != room {
			t.Fatalf("conflict tagged wrong: %+v", c)
		}
		pair := map[uuid.UUID]bool{c.SessionA: true, c.SessionB: true}
		if !pair[s1.ID] || !pair[s2.ID] {
			t.Fatalf("conflict does not name both sessions: %+v", c)
		}
	}
}

func TestFindConflictsSkipsUnslotted(t *testing.T) {
	room := uuid.New()
	s1 := slotted(room, uuid.New(), uuid.New(), at(10, 0), at(12, 0))
	s2 := models.Session{
		ID:        uuid.New(),
		SubjectID: uuid.New(),
		TeacherID: uuid.New(),
		GroupID:   uuid.New(),
		RoomID:    &room,
		Date:      examDay,
		Status:    models.StatusProposed,
	}

	if got := FindConflicts([]models.Session{s1, s2}, DimensionRoom, room); len(got) != 0 {
		t.Fatalf("un-slotted session must not conflict, got %d", len(got))
	}
}

func TestFindConflictsDifferentDates(t *testing.T) {
	room := uuid.New()
	s1 := slotted(room, uuid.New(), uuid.New(), at(10, 0), at(12, 0))
	s2 := slotted(room, uuid.New(), uuid.New(), at(10, 0), at(12, 0))
	s2.Date = examDay.AddDate(0, 0, 1)

	if got := FindConflicts([]models.Session{s1, s2}, DimensionRoom, room); len(got) != 0 {
		t.Fatalf("different dates must not conflict, got %d", len(got))
	}
}

func TestFindConflictsTeacherIncludesAssistants(t *testing.T) {
	shared := uuid.New()
	s1 := slotted(uuid.New(), shared, uuid.New(), at(10, 0), at(12, 0))
	s2 := slotted(uuid.New(), uuid.New(), uuid.New(), at(11, 0), at(13, 0))
	s2.Assistants = []models.Teacher{{ID: shared}}

	conflicts := FindConflicts([]models.Session{s1, s2}, DimensionTeacher, shared)
	if len(conflicts) != 1 {
		t.Fatalf("assistant overlap not detected, got %d conflicts", len(conflicts))
	}
}

func TestNoFalsePositivesAcrossResources(t *testing.T) {
	s1 := slotted(uuid.New(), uuid.New(), uuid.New(), at(10, 0), at(12, 0))
	s2 := slotted(uuid.New(), uuid.New(), uuid.New(), at(10, 0), at(12, 0))

	if got := AllConflicts([]models.Session{s1, s2}); len(got) != 0 {
		t.Fatalf("disjoint resources must not conflict, got %+v", got)
	}
}

func TestAllConflictsFindsEveryDimension(t *testing.T) {
	room := uuid.New()
	teacher := uuid.New()
	group := uuid.New()
	s1 := slotted(room, teacher, group, at(10, 0), at(12, 0))
	s2 := slotted(room, teacher, group, at(11, 0), at(13, 0))

	conflicts := AllConflicts([]models.Session{s1, s2})
	seen := map[Dimension]int{}
	for _, c := range conflicts {
		seen[c.Dimension]++
	}
	if seen[DimensionRoom] != 1 || seen[DimensionTeacher] != 1 || seen[DimensionGroup] != 1 {
		t.Fatalf("expected one conflict per dimension, got %v", seen)
	}
}

func TestCanAssignCleanSlot(t *testing.T) {
	repo := newFakeRepo()
	room := uuid.New()
	session := repo.put(models.Session{
		SubjectID: uuid.New(),
		TeacherID: uuid.New(),
		GroupID:   uuid.New(),
		Date:      examDay,
		Status:    models.StatusApproved,
	})

	ok, conflicts, err := NewChecker(repo).CanAssign(&session, room, at(10, 0), at(12, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || len(conflicts) != 0 {
		t.Fatalf("empty day should be assignable, got ok=%v conflicts=%v", ok, conflicts)
	}
}

func TestCanAssignRoomConflict(t *testing.T) {
	repo := newFakeRepo()
	room := uuid.New()
	repo.put(slotted(room, uuid.New(), uuid.New(), at(10, 0), at(12, 0)))
	session := repo.put(models.Session{
		SubjectID: uuid.New(),
		TeacherID: uuid.New(),
		GroupID:   uuid.New(),
		Date:      examDay,
		Status:    models.StatusApproved,
	})

	ok, conflicts, err := NewChecker(repo).CanAssign(&session, room, at(11, 0), at(13, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected room conflict")
	}
	if len(conflicts) != 1 || conflicts[0].Dimension != DimensionRoom {
		t.Fatalf("expected one room conflict, got %+v", conflicts)
	}
}

func TestCanAssignAssistantConflict(t *testing.T) {
	repo := newFakeRepo()
	busyTeacher := uuid.New()
	repo.put(slotted(uuid.New(), busyTeacher, uuid.New(), at(10, 0), at(12, 0)))
	session := repo.put(models.Session{
		SubjectID: uuid.New(),
		TeacherID: uuid.New(),
		GroupID:   uuid.New(),
		Date:      examDay,
		Status:    models.StatusApproved,
	})

	// busyTeacher is proposed as an assistant for an overlapping window.
	ok, conflicts, err := NewChecker(repo).CanAssign(&session, uuid.New(), at(11, 0), at(13, 0), []uuid.UUID{busyTeacher})
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected teacher conflict through assistant")
	}
	if len(conflicts) != 1 || conflicts[0].Dimension != DimensionTeacher {
		t.Fatalf("expected one teacher conflict, got %+v", conflicts)
	}
}

func TestCanAssignBackToBackIsClean(t *testing.T) {
	repo := newFakeRepo()
	room := uuid.New()
	repo.put(slotted(room, uuid.New(), uuid.New(), at(8, 0), at(10, 0)))
	session := repo.put(models.Session{
		SubjectID: uuid.New(),
		TeacherID: uuid.New(),
		GroupID:   uuid.New(),
		Date:      examDay,
		Status:    models.StatusApproved,
	})

	ok, _, err := NewChecker(repo).CanAssign(&session, room, at(10, 0), at(12, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("slot starting when the previous one ends must be clean")
	}
}

func TestCanAssignRejectsInvertedWindow(t *testing.T) {
	repo := newFakeRepo()
	session := repo.put(models.Session{
		SubjectID: uuid.New(),
		TeacherID: uuid.New(),
		GroupID:   uuid.New(),
		Date:      examDay,
		Status:    models.StatusApproved,
	})

	_, _, err := NewChecker(repo).CanAssign(&session, uuid.New(), at(12, 0), at(10, 0), nil)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
