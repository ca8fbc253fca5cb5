package handlers

import (
	"errors"

	"github.com/fiesc/exam_planner/database"
	"github.com/fiesc/exam_planner/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetMyNotifications(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	unreadOnly := c.Query("status") == "unread"

	svc := services.NewNotificationService(database.DB)
	items, err := svc.ListForUser(userID, unreadOnly)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list notifications"})
	}
	return c.JSON(items)
}

func MarkNotificationRead(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid notification id"})
	}

	svc := services.NewNotificationService(database.DB)
	notification, err := svc.MarkRead(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Notification not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update notification"})
	}
	return c.JSON(notification)
}
