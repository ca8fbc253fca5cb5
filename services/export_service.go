package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	config "github.com/fiesc/exam_planner/configs"
	"github.com/fiesc/exam_planner/models"
	"github.com/fiesc/exam_planner/scheduling"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ExportService renders the exam schedule as an Excel workbook or a PDF.
// Exports read through the same scheduling.Repository the core uses.
type ExportService struct {
	repo scheduling.Repository
}

func NewExportService(repo scheduling.Repository) *ExportService {
	return &ExportService{repo: repo}
}

var exportHeaders = []string{
	"Subject", "Acronym", "Teacher", "Group", "Date",
	"Start", "End", "Room", "Status",
}

func exportRow(s *models.Session) []any {
	start, end, room := "", "", ""
	if s.StartTime != nil {
		start = s.StartTime.Format("15:04")
	}
	if s.EndTime != nil {
		end = s.EndTime.Format("15:04")
	}
	if s.Room != nil {
		room = s.Room.Name
	}
	return []any{
		s.Subject.Name,
		s.Subject.ShortName,
		s.Teacher.FullName(),
		s.Group.Name,
		s.Date.Format("2006-01-02"),
		start,
		end,
		room,
		string(s.Status),
	}
}

// ExportExcel builds an .xlsx workbook with one row per session matching the
// filter.
func (s *ExportService) ExportExcel(filter scheduling.SessionFilter) ([]byte, error) {
	sessions, err := s.repo.ListSessions(filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Exam Schedule"
	f.SetSheetName("Sheet1", sheet)

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for rowIdx := range sessions {
		for colIdx, value := range exportRow(&sessions[rowIdx]) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type exportPageData struct {
	Title       string
	GeneratedAt string
	Sessions    []models.Session
}

// ExportPDF renders the schedule through the HTML template and prints it to
// PDF with headless Chrome.
func (s *ExportService) ExportPDF(filter scheduling.SessionFilter, title string) ([]byte, error) {
	sessions, err := s.repo.ListSessions(filter)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.ParseFiles("templates/schedule_export.html")
	if err != nil {
		return nil, err
	}

	data := exportPageData{
		Title:       title,
		GeneratedAt: time.Now().Format("January 2, 2006 15:04"),
		Sessions:    sessions,
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return nil, err
	}

	return generatePDFFromHTML(renderedHTML.String())
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

// StoreExport uploads an export artifact to Cloudinary and returns the
// shareable URL.
func (s *ExportService) StoreExport(fileBytes []byte, kind string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("exports/%s_%s", kind, uuid.New().String()),
		Folder:       "exam_planner_exports",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
