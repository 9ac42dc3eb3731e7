package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/thihanaung/ptp_education/database"
	"github.com/thihanaung/ptp_education/models"
)

type ReportRequest struct {
	Subject string `json:"subject" validate:"required,min=3,max=255"`
	Details string `json:"details" validate:"required,min=10"`
}

// CreateReport files a problem report from any signed-in user.
func CreateReport(c *fiber.Ctx) error {
	reporterID := authUserID(c)

	var req ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	report := models.Report{
		ReporterID: reporterID,
		Subject:    req.Subject,
		Details:    req.Details,
	}
	if err := database.DB.Create(&report).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit report"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Report submitted", "report": report})
}

// GetMyReports lists the signed-in user's own reports.
func GetMyReports(c *fiber.Ctx) error {
	reporterID := authUserID(c)

	var reports []models.Report
	err := database.DB.
		Where("reporter_id = ?", reporterID).
		Order("created_at desc").
		Find(&reports).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(reports)
}

// GetReports lists reports for the admin, unresolved first.
func GetReports(c *fiber.Ctx) error {
	var reports []models.Report
	err := database.DB.Preload("Reporter").
		Order("resolved_at IS NOT NULL, created_at desc").
		Find(&reports).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(reports)
}

// ResolveReport stamps a report as handled.
func ResolveReport(c *fiber.Ctx) error {
	reportID := c.Params("reportId")

	var report models.Report
	if err := database.DB.First(&report, "id = ?", reportID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Report not found"})
	}
	if report.ResolvedAt != nil {
		return c.JSON(fiber.Map{"message": "Report already resolved"})
	}

	now := time.Now().UTC()
	if err := database.DB.Model(&report).Update("resolved_at", now).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve report"})
	}

	return c.JSON(fiber.Map{"message": "Report resolved"})
}
