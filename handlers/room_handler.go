package handlers

import (
	"github.com/fiesc/exam_planner/database"
	"github.com/fiesc/exam_planner/repository"
	"github.com/gofiber/fiber/v2"
)

func GetRooms(c *fiber.Ctx) error {
	var minCapacity *int
	if v := c.QueryInt("capacity", -1); v >= 0 {
		minCapacity = &v
	}

	catalog := repository.NewRoomCatalog(database.DB)
	rooms, err := catalog.ListRooms(minCapacity)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list rooms"})
	}
	return c.JSON(rooms)
}

func GetRoom(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid room id"})
	}

	catalog := repository.NewRoomCatalog(database.DB)
	room, err := catalog.GetRoom(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load room"})
	}
	if room == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Room not found"})
	}
	return c.JSON(room)
}
