package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thihanaung/ptp_education/services"
)

// GetMyEarnings renders the instructor earnings page data: the reconciled
// balance sheet plus the month-by-month payout breakdown.
func GetMyEarnings(c *fiber.Ctx) error {
	instructorID := authUserID(c)

	summary, err := services.InstructorEarnings(instructorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute earnings"})
	}

	monthly, err := services.MonthlyInstructorEarnings(instructorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute monthly earnings"})
	}

	return c.JSON(fiber.Map{
		"summary":          summary,
		"monthly_earnings": monthly,
	})
}
