package handlers

import (
	"github.com/fiesc/exam_planner/database"
	"github.com/fiesc/exam_planner/repository"
	"github.com/fiesc/exam_planner/scheduling"
	"github.com/fiesc/exam_planner/services"
	"github.com/gofiber/fiber/v2"
)

func exportFilter(c *fiber.Ctx) (scheduling.SessionFilter, error) {
	filter := scheduling.SessionFilter{}
	if v := c.Query("group_id"); v != "" {
		id, err := parseUUID(v)
		if err != nil {
			return filter, err
		}
		filter.GroupID = &id
	}
	if v := c.Query("teacher_id"); v != "" {
		id, err := parseUUID(v)
		if err != nil {
			return filter, err
		}
		filter.TeacherID = &id
	}
	if v := c.Query("start_date"); v != "" {
		from, err := parseDate(v)
		if err != nil {
			return filter, err
		}
		filter.DateFrom = &from
	}
	if v := c.Query("end_date"); v != "" {
		to, err := parseDate(v)
		if err != nil {
			return filter, err
		}
		filter.DateTo = &to
	}
	return filter, nil
}

// ExportExcel streams the filtered schedule as an .xlsx download. With
// ?store=true the workbook is uploaded instead and the URL returned.
func ExportExcel(c *fiber.Ctx) error {
	filter, err := exportFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid filter parameters"})
	}

	svc := services.NewExportService(repository.NewSessionRepository(database.DB))
	content, err := svc.ExportExcel(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build Excel export"})
	}

	if c.QueryBool("store") {
		url, err := svc.StoreExport(content, "xlsx")
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store export"})
		}
		return c.JSON(fiber.Map{"url": url})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="exam_schedule.xlsx"`)
	return c.Send(content)
}

// ExportPDF renders the filtered schedule to PDF.
func ExportPDF(c *fiber.Ctx) error {
	filter, err := exportFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid filter parameters"})
	}

	title := c.Query("title", "Exam Schedule")

	svc := services.NewExportService(repository.NewSessionRepository(database.DB))
	content, err := svc.ExportPDF(filter, title)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build PDF export"})
	}

	if c.QueryBool("store") {
		url, err := svc.StoreExport(content, "pdf")
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store export"})
		}
		return c.JSON(fiber.Map{"url": url})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="exam_schedule.pdf"`)
	return c.Send(content)
}
