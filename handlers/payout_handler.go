package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/thihanaung/ptp_education/database"
	"github.com/thihanaung/ptp_education/models"
	"github.com/thihanaung/ptp_education/services"
)

type payoutRow struct {
	EnrollmentID    string  `json:"enrollment_id"`
	StudentName     string  `json:"student_name"`
	StudentEmail    string  `json:"student_email"`
	StudentActive   bool    `json:"student_active"`
	CourseTitle     string  `json:"course_title"`
	InstructorName  string  `json:"instructor_name"`
	InstructorEmail string  `json:"instructor_email"`
	Price           float64 `json:"price"`
	InstructorShare float64 `json:"instructor_share"`
	ApprovalStatus  string  `json:"approval_status"`
	EnrolledAt      string  `json:"enrolled_at"`
}

// GetAdminPayouts is the admin payouts board: every enrollment not yet
// marked Paid, the due totals, and the admin's withdrawable commission.
// total_due counts everything for display; approved_due is the payable
// subset.
func GetAdminPayouts(c *fiber.Ctx) error {
	var enrollments []models.Enrollment
	err := database.DB.Preload("Student").Preload("Course").Preload("Course.Instructor").
		Where("payout_status IS NULL OR payout_status <> ?", models.PayoutStatusPaid).
		Order("enrolled_at desc").
		Find(&enrollments).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	rows := make([]payoutRow, 0, len(enrollments))
	for _, e := range enrollments {
		rows = append(rows, payoutRow{
			EnrollmentID:    e.ID.String(),
			StudentName:     e.Student.FullName,
			StudentEmail:    e.Student.Email,
			StudentActive:   e.Student.IsActive,
			CourseTitle:     e.Course.Title,
			InstructorName:  e.Course.Instructor.FullName,
			InstructorEmail: e.Course.Instructor.Email,
			Price:           e.Course.Price,
			InstructorShare: services.InstructorShare(e.Course.Price),
			ApprovalStatus:  e.ApprovalStatus,
			EnrolledAt:      e.EnrolledAt.Format("2006-01-02 15:04"),
		})
	}

	totals, err := services.PayoutDueTotals()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute due totals"})
	}

	balance, err := services.ReconcilePlatformBalance()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute platform balance"})
	}

	commission, err := services.AdminCommissionAccrued()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute commission"})
	}

	return c.JSON(fiber.Map{
		"rows":                    rows,
		"total_due":               totals.TotalDue,
		"approved_due":            totals.ApprovedDue,
		"admin_available_balance": balance,
		"admin_commission":        commission,
	})
}

// MarkPayoutPaid settles an enrollment's instructor share manually.
func MarkPayoutPaid(c *fiber.Ctx) error {
	enrollmentID, err := uuid.Parse(c.Params("enrollmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid enrollment ID format"})
	}

	payout, err := services.MarkPayoutPaid(enrollmentID, adminName(c))
	if err != nil {
		return payoutError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Payout marked as paid", "payout": payout})
}

// ProcessPendingPayout settles a pending enrollment through the platform,
// crediting the 30% commission to the platform balance.
func ProcessPendingPayout(c *fiber.Ctx) error {
	enrollmentID, err := uuid.Parse(c.Params("enrollmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid enrollment ID format"})
	}

	payout, err := services.ProcessPendingPayout(enrollmentID, adminName(c))
	if err != nil {
		return payoutError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Pending payout processed", "payout": payout})
}

func payoutError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Enrollment, course or instructor not found"})
	case errors.Is(err, services.ErrAlreadyPaid):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "This enrollment has already been paid out"})
	case errors.Is(err, services.ErrNotPending):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "This enrollment is not pending"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process payout"})
	}
}

// adminName resolves the acting admin's display name for the paid_by /
// withdrawn_by audit fields.
func adminName(c *fiber.Ctx) string {
	var admin models.User
	if err := database.DB.First(&admin, "id = ?", authUserID(c)).Error; err != nil {
		return "admin"
	}
	return admin.FullName
}
