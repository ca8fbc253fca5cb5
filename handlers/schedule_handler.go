package handlers

import (
	"log"

	"github.com/fiesc/exam_planner/database"
	"github.com/fiesc/exam_planner/models"
	"github.com/fiesc/exam_planner/repository"
	"github.com/fiesc/exam_planner/scheduling"
	"github.com/fiesc/exam_planner/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProposeScheduleRequest struct {
	SubjectID string `json:"subject_id" validate:"required,uuid"`
	TeacherID string `json:"teacher_id" validate:"required,uuid"`
	GroupID   string `json:"group_id" validate:"required,uuid"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
}

type DecisionRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
	Note   string `json:"note,omitempty"`
}

type AssignSlotRequest struct {
	RoomID       string   `json:"room_id" validate:"required,uuid"`
	StartTime    string   `json:"start_time" validate:"required,datetime=15:04"`
	EndTime      string   `json:"end_time" validate:"required,datetime=15:04"`
	AssistantIDs []string `json:"assistant_ids" validate:"omitempty,dive,uuid"`
}

// GetSchedules lists sessions, optionally filtered by group, teacher,
// subject, status and date range.
func GetSchedules(c *fiber.Ctx) error {
	filter := scheduling.SessionFilter{}

	if v := c.Query("group_id"); v != "" {
		id, err := parseUUID(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid group_id"})
		}
		filter.GroupID = &id
	}
	if v := c.Query("teacher_id"); v != "" {
		id, err := parseUUID(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid teacher_id"})
		}
		filter.TeacherID = &id
	}
	if v := c.Query("subject_id"); v != "" {
		id, err := parseUUID(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid subject_id"})
		}
		filter.SubjectID = &id
	}
	if v := c.Query("status"); v != "" {
		status := models.SessionStatus(v)
		filter.Status = &status
	}
	if v := c.Query("start_date"); v != "" {
		from, err := parseDate(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start_date"})
		}
		filter.DateFrom = &from
	}
	if v := c.Query("end_date"); v != "" {
		to, err := parseDate(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end_date"})
		}
		filter.DateTo = &to
	}

	repo := repository.NewSessionRepository(database.DB)
	sessions, err := repo.ListSessions(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list schedules"})
	}
	return c.JSON(sessions)
}

func GetSchedule(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid schedule id"})
	}

	repo := repository.NewSessionRepository(database.DB)
	session, err := repo.GetSession(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load schedule"})
	}
	if session == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Schedule not found"})
	}
	return c.JSON(session)
}

// ProposeSchedule files a new exam proposal. Proposing the same subject and
// group again re-dates the existing row instead of duplicating it.
func ProposeSchedule(c *fiber.Ctx) error {
	var req ProposeScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	subjectID, err := parseUUID(req.SubjectID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid subject_id"})
	}
	teacherID, err := parseUUID(req.TeacherID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid teacher_id"})
	}
	groupID, err := parseUUID(req.GroupID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid group_id"})
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date"})
	}

	lc := scheduling.NewLifecycle(
		repository.NewSessionRepository(database.DB),
		repository.NewRoomCatalog(database.DB),
	)
	session, err := lc.Propose(subjectID, teacherID, groupID, date)
	if err != nil {
		return coreError(c, err)
	}

	notifySessionUsers(session.ID, services.KindProposed, "", []string{models.RoleTeacher})

	return c.Status(fiber.StatusCreated).JSON(session)
}

// DecideSchedule approves or rejects a proposed session.
func DecideSchedule(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid schedule id"})
	}

	var req DecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	lc := scheduling.NewLifecycle(
		repository.NewSessionRepository(database.DB),
		repository.NewRoomCatalog(database.DB),
	)
	session, err := lc.Decide(id, models.SessionStatus(req.Status), req.Note)
	if err != nil {
		return coreError(c, err)
	}

	kind := services.KindApproved
	if session.Status == models.StatusRejected {
		kind = services.KindRejected
	}
	notifySessionUsers(session.ID, kind, req.Note, []string{models.RoleGroupLeader})

	return c.JSON(session)
}

// AssignScheduleSlot sets room, window and assistants on an approved session.
// The conflict check and the write run inside one transaction so concurrent
// assignments cannot both win an overlapping slot.
func AssignScheduleSlot(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid schedule id"})
	}

	var req AssignSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	roomID, err := parseUUID(req.RoomID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid room_id"})
	}
	assistantIDs := make([]uuid.UUID, 0, len(req.AssistantIDs))
	for _, raw := range req.AssistantIDs {
		aid, err := parseUUID(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid assistant id"})
		}
		assistantIDs = append(assistantIDs, aid)
	}

	var result *scheduling.AssignResult
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		lc := scheduling.NewLifecycle(
			repository.NewSessionRepository(tx),
			repository.NewRoomCatalog(tx),
		)

		// The slot window is interpreted on the session's own date.
		repo := repository.NewSessionRepository(tx)
		stored, err := repo.GetSession(id)
		if err != nil {
			return err
		}
		if stored == nil {
			return scheduling.ErrNotFound
		}

		start, err := parseClock(stored.Date, req.StartTime)
		if err != nil {
			return &scheduling.ValidationError{Field: "start_time", Msg: "invalid format"}
		}
		end, err := parseClock(stored.Date, req.EndTime)
		if err != nil {
			return &scheduling.ValidationError{Field: "end_time", Msg: "invalid format"}
		}

		result, err = lc.AssignSlot(id, roomID, start, end, assistantIDs)
		return err
	})
	if txErr != nil {
		return coreError(c, txErr)
	}

	if !result.OK {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"ok":        false,
			"conflicts": result.Conflicts,
		})
	}

	notifySessionUsers(id, services.KindSlotAssigned, "", []string{models.RoleTeacher, models.RoleGroupLeader})

	return c.JSON(fiber.Map{"ok": true, "schedule": result.Session})
}

func DeleteSchedule(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid schedule id"})
	}

	repo := repository.NewSessionRepository(database.DB)
	lc := scheduling.NewLifecycle(repo, repository.NewRoomCatalog(database.DB))

	session, err := deleteSchedule(lc, repo, id)
	if err != nil {
		return coreError(c, err)
	}

	dispatchSessionNotice(session, services.KindDeleted, "", []string{models.RoleTeacher, models.RoleGroupLeader})

	return c.JSON(fiber.Map{"message": "Schedule deleted"})
}

// deleteSchedule snapshots the session before removing it and returns the
// snapshot only when the delete went through, so recipients are never told
// about a removal that did not happen.
func deleteSchedule(lc *scheduling.Lifecycle, repo scheduling.Repository, id uuid.UUID) (*models.Session, error) {
	session, err := repo.GetSession(id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, scheduling.ErrNotFound
	}
	if err := lc.Delete(id); err != nil {
		return nil, err
	}
	return session, nil
}

// GetConflicts reports every room/teacher/group collision in the requested
// date range.
func GetConflicts(c *fiber.Ctx) error {
	filter := scheduling.SessionFilter{}
	if v := c.Query("start_date"); v != "" {
		from, err := parseDate(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start_date"})
		}
		filter.DateFrom = &from
	}
	if v := c.Query("end_date"); v != "" {
		to, err := parseDate(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end_date"})
		}
		filter.DateTo = &to
	}

	repo := repository.NewSessionRepository(database.DB)
	sessions, err := repo.ListSessions(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list schedules"})
	}

	conflicts := scheduling.AllConflicts(sessions)
	if conflicts == nil {
		conflicts = []scheduling.Conflict{}
	}
	return c.JSON(conflicts)
}

// GetAvailableRooms lists rooms free for the given date and window, optionally
// above a minimum capacity.
func GetAvailableRooms(c *fiber.Ctx) error {
	dateStr := c.Query("date")
	startStr := c.Query("start_time")
	endStr := c.Query("end_time")
	if dateStr == "" || startStr == "" || endStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date, start_time and end_time are required"})
	}

	date, err := parseDate(dateStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date"})
	}
	start, err := parseClock(date, startStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start_time"})
	}
	end, err := parseClock(date, endStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end_time"})
	}

	var minCapacity *int
	if v := c.QueryInt("capacity", -1); v >= 0 {
		minCapacity = &v
	}

	resolver := scheduling.NewResolver(
		repository.NewSessionRepository(database.DB),
		repository.NewRoomCatalog(database.DB),
	)
	rooms, err := resolver.AvailableRooms(date, start, end, minCapacity)
	if err != nil {
		return coreError(c, err)
	}
	return c.JSON(rooms)
}

// notifySessionUsers dispatches a notification intent to the accounts tied to
// the session: the teacher's account and/or the group's leaders.
func notifySessionUsers(sessionID uuid.UUID, kind services.NotificationKind, note string, roles []string) {
	repo := repository.NewSessionRepository(database.DB)
	session, err := repo.GetSession(sessionID)
	if err != nil || session == nil {
		return
	}
	dispatchSessionNotice(session, kind, note, roles)
}

// dispatchSessionNotice notifies from an already loaded session, so callers
// that mutate or remove the row can snapshot it first.
func dispatchSessionNotice(session *models.Session, kind services.NotificationKind, note string, roles []string) {
	svc := services.NewNotificationService(database.DB)
	intent := services.NotificationIntent{
		Kind:    kind,
		Subject: session.Subject.Name,
		Group:   session.Group.Name,
		Date:    session.Date,
		Note:    note,
	}
	if session.Room != nil {
		intent.Room = session.Room.Name
	}

	for _, role := range roles {
		var users []models.User
		query := database.DB.Where("role = ?", role)
		switch role {
		case models.RoleTeacher:
			query = query.Where("teacher_id = ?", session.TeacherID)
		case models.RoleGroupLeader:
			query = query.Where("group_id = ?", session.GroupID)
		}
		if err := query.Find(&users).Error; err != nil {
			log.Printf("Failed to resolve %s recipients for session %s: %v", role, session.ID, err)
			continue
		}
		for _, user := range users {
			intent.UserID = user.ID
			svc.Dispatch(intent)
		}
	}
}
