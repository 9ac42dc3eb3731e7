package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/thihanaung/ptp_education/database"
	"github.com/thihanaung/ptp_education/models"
	"github.com/thihanaung/ptp_education/services"
)

type WithdrawalRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// RequestWithdrawal settles an instructor withdrawal against their
// reconciled balance immediately.
func RequestWithdrawal(c *fiber.Ctx) error {
	instructorID := authUserID(c)

	var req WithdrawalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	withdrawal, err := services.RequestInstructorWithdrawal(instructorID, req.Amount)
	switch {
	case err == nil:
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":    "Withdrawal completed successfully! Admin has been notified.",
			"withdrawal": withdrawal,
		})
	case errors.Is(err, services.ErrInvalidAmount):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Withdrawal amount must be greater than zero"})
	case errors.Is(err, services.ErrInsufficientBalance):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Insufficient balance for this withdrawal"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Instructor not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process withdrawal"})
	}
}

// GetMyWithdrawals returns the instructor's withdrawal history plus their
// freshly reconciled balance.
func GetMyWithdrawals(c *fiber.Ctx) error {
	instructorID := authUserID(c)

	var withdrawals []models.Withdrawal
	database.DB.
		Where("role = ? AND instructor_id = ?", models.WithdrawalRoleInstructor, instructorID).
		Order("requested_at desc").
		Find(&withdrawals)

	summary, err := services.InstructorEarnings(instructorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute balance"})
	}

	return c.JSON(fiber.Map{
		"withdrawals":       withdrawals,
		"total_withdrawals": summary.TotalWithdrawals,
		"current_balance":   summary.CurrentBalance,
	})
}

// GetAdminWithdrawView shows the admin's withdrawable commission and their
// recent withdrawals, reconciling the cached balance on the way.
func GetAdminWithdrawView(c *fiber.Ctx) error {
	balance, err := services.ReconcilePlatformBalance()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute platform balance"})
	}

	var recent []models.Withdrawal
	database.DB.
		Where("role = ?", models.WithdrawalRoleAdmin).
		Order("withdrawn_at desc").
		Limit(10).
		Find(&recent)

	return c.JSON(fiber.Map{
		"available_commission": balance,
		"recent_withdrawals":   recent,
	})
}

// ProcessAdminWithdrawal debits the platform commission balance.
func ProcessAdminWithdrawal(c *fiber.Ctx) error {
	var req WithdrawalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	withdrawal, err := services.WithdrawPlatformCommission(req.Amount, adminName(c))
	switch {
	case err == nil:
		return c.JSON(fiber.Map{
			"message":    "Withdrawal processed successfully",
			"withdrawal": withdrawal,
		})
	case errors.Is(err, services.ErrInvalidAmount):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Withdrawal amount must be greater than zero"})
	case errors.Is(err, services.ErrInsufficientBalance):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Insufficient balance for this withdrawal"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process withdrawal"})
	}
}

// ClearAdminWithdrawals wipes all admin withdrawal records. Destructive
// reset tool; instructor withdrawals are untouched.
func ClearAdminWithdrawals(c *fiber.Ctx) error {
	deleted, err := services.ClearAdminWithdrawals()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to clear withdrawals"})
	}
	return c.JSON(fiber.Map{"message": "Withdrawal records cleared", "deleted": deleted})
}

// ListInstructorWithdrawals is the admin view of all instructor
// withdrawals, with each instructor's live balance alongside.
func ListInstructorWithdrawals(c *fiber.Ctx) error {
	var withdrawals []models.Withdrawal
	err := database.DB.Preload("Instructor").
		Where("role = ?", models.WithdrawalRoleInstructor).
		Order("requested_at desc").
		Find(&withdrawals).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	type row struct {
		InstructorName string  `json:"instructor_name"`
		Amount         float64 `json:"amount"`
		RequestedAt    string  `json:"requested_at"`
		CurrentBalance float64 `json:"current_balance"`
	}

	rows := make([]row, 0, len(withdrawals))
	for _, w := range withdrawals {
		r := row{Amount: w.Amount}
		if w.Instructor != nil {
			r.InstructorName = w.Instructor.FullName
		}
		if w.RequestedAt != nil {
			r.RequestedAt = w.RequestedAt.Format("2006-01-02 15:04")
		}
		if w.InstructorID != nil {
			if summary, err := services.InstructorEarnings(*w.InstructorID); err == nil {
				r.CurrentBalance = summary.CurrentBalance
			}
		}
		rows = append(rows, r)
	}

	return c.JSON(fiber.Map{"withdrawals": rows})
}
