package handlers

import (
	"github.com/fiesc/exam_planner/database"
	"github.com/fiesc/exam_planner/models"
	"github.com/gofiber/fiber/v2"
)

type CreateExamPeriodRequest struct {
	Name         string `json:"name" validate:"required"`
	AcademicYear string `json:"academic_year" validate:"required"`
	Semester     int    `json:"semester" validate:"required,min=1,max=2"`
	StartDate    string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

func GetExamPeriods(c *fiber.Ctx) error {
	var periods []models.ExamPeriod
	if err := database.DB.Order("start_date DESC").Find(&periods).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list exam periods"})
	}
	return c.JSON(periods)
}

func CreateExamPeriod(c *fiber.Ctx) error {
	var req CreateExamPeriodRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start_date"})
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end_date"})
	}
	if !end.After(start) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "end_date must be after start_date"})
	}

	period := models.ExamPeriod{
		Name:         req.Name,
		AcademicYear: req.AcademicYear,
		Semester:     req.Semester,
		StartDate:    start,
		EndDate:      end,
	}
	if err := database.DB.Create(&period).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create exam period"})
	}
	return c.Status(fiber.StatusCreated).JSON(period)
}
