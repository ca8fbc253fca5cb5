package scheduling

import (
	"errors"
	"testing"

	"github.com/fiesc/exam_planner/models"
	"github.com/google/uuid"
)

func testCatalog() (*fakeCatalog, models.Room, models.Room, models.Room) {
	c201 := models.Room{ID: uuid.New(), Name: "C201", ShortName: "201", Building: "C", Capacity: 30}
	c101 := models.Room{ID: uuid.New(), Name: "C101", ShortName: "101", Building: "C", Capacity: 120}
	d001 := models.Room{ID: uuid.New(), Name: "D001", ShortName: "001", Building: "D", Capacity: 15}
	return &fakeCatalog{rooms: []models.Room{c201, c101, d001}}, c201, c101, d001
}

func TestAvailableRoomsEmptyDay(t *testing.T) {
	catalog, _, _, _ := testCatalog()
	resolver := NewResolver(newFakeRepo(), catalog)

	rooms, err := resolver.AvailableRooms(examDay, at(8, 0), at(20, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(rooms) != 3 {
		t.Fatalf("all rooms free on an empty day, got %d", len(rooms))
	}
}

func TestAvailableRoomsStableOrder(t *testing.T) {
	catalog, _, _, _ := testCatalog()
	resolver := NewResolver(newFakeRepo(), catalog)

	rooms, err := resolver.AvailableRooms(examDay, at(10, 0), at(12, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"C101", "C201", "D001"}
	for i, r := range rooms {
		if r.Name != want[i] {
			t.Fatalf("order not stable: got %s at %d, want %s", r.Name, i, want[i])
		}
	}
}

func TestAvailableRoomsExcludesOccupied(t *testing.T) {
	catalog, c201, _, _ := testCatalog()
	repo := newFakeRepo()
	repo.put(slotted(c201.ID, uuid.New(), uuid.New(), at(10, 0), at(12, 0)))
	resolver := NewResolver(repo, catalog)

	rooms, err := resolver.AvailableRooms(examDay, at(11, 0), at(13, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range rooms {
		if r.ID == c201.ID {
			t.Fatal("occupied room must be excluded")
		}
	}
	if len(rooms) != 2 {
		t.Fatalf("expected the other two rooms, got %d", len(rooms))
	}
}

func TestAvailableRoomsBackToBackWindow(t *testing.T) {
	catalog, c201, _, _ := testCatalog()
	repo := newFakeRepo()
	repo.put(slotted(c201.ID, uuid.New(), uuid.New(), at(10, 0), at(12, 0)))
	resolver := NewResolver(repo, catalog)

	rooms, err := resolver.AvailableRooms(examDay, at(12, 0), at(14, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, r := range rooms {
		if r.ID == c201.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("room must be free right after the occupant ends")
	}
}

func TestAvailableRoomsMinCapacity(t *testing.T) {
	catalog, _, c101, _ := testCatalog()
	resolver := NewResolver(newFakeRepo(), catalog)

	min := 100
	rooms, err := resolver.AvailableRooms(examDay, at(10, 0), at(12, 0), &min)
	if err != nil {
		t.Fatal(err)
	}
	if len(rooms) != 1 || rooms[0].ID != c101.ID {
		t.Fatalf("capacity filter wrong: %+v", rooms)
	}
}

func TestAvailableRoomsUnslottedDoesNotBlock(t *testing.T) {
	catalog, c201, _, _ := testCatalog()
	repo := newFakeRepo()
	roomID := c201.ID
	repo.put(models.Session{
		SubjectID: uuid.New(),
		TeacherID: uuid.New(),
		GroupID:   uuid.New(),
		RoomID:    &roomID,
		Date:      examDay,
		Status:    models.StatusProposed,
	})
	resolver := NewResolver(repo, catalog)

	rooms, err := resolver.AvailableRooms(examDay, at(10, 0), at(12, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(rooms) != 3 {
		t.Fatal("a session without a time slot must not reserve the room")
	}
}

func TestAvailableRoomsRejectsInvertedWindow(t *testing.T) {
	catalog, _, _, _ := testCatalog()
	resolver := NewResolver(newFakeRepo(), catalog)

	_, err := resolver.AvailableRooms(examDay, at(12, 0), at(10, 0), nil)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
