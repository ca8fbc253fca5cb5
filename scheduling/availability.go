package scheduling

import (
	"sort"
	"time"

	"github.com/fiesc/exam_planner/models"
)

// Resolver answers "which rooms are free for this window" against the room
// catalog and the scheduled sessions of the day.
type Resolver struct {
	repo  Repository
	rooms RoomCatalog
}

func NewResolver(repo Repository, rooms RoomCatalog) *Resolver {
	return &Resolver{repo: repo, rooms: rooms}
}

// AvailableRooms returns every room with capacity >= minCapacity (when set)
// that has no session overlapping [start, end) on the given date. Sessions
// without an assigned slot do not block a room. The result is sorted by room
// name so repeated calls are comparable.
func (r *Resolver) AvailableRooms(date time.Time, start, end time.Time, minCapacity *int) ([]models.Room, error) {
	if !end.After(start) {
		return nil, invalidWindow()
	}

	candidates, err := r.rooms.ListRooms(minCapacity)
	if err != nil {
		return nil, err
	}

	available := make([]models.Room, 0, len(candidates))
	for _, room := range candidates {
		roomID := room.ID
		occupants, err := r.repo.ListSessions(SessionFilter{Date: &date, RoomID: &roomID})
		if err != nil {
			return nil, err
		}

		free := true
		for i := range occupants {
			s := &occupants[i]
			if !s.Slotted() {
				continue
			}
			if Overlaps(start, end, *s.StartTime, *s.EndTime) {
				free = false
				break
			}
		}
		if free {
			available = append(available, room)
		}
	}

	sort.Slice(available, func(i, j int) bool {
		return available[i].Name < available[j].Name
	})
	return available, nil
}
