package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/thihanaung/ptp_education/database"
	"github.com/thihanaung/ptp_education/models"
	"github.com/thihanaung/ptp_education/services"
	"gorm.io/gorm"
)

// GetEarningsOverview is the admin revenue dashboard. Gross revenue here
// sums all enrollments regardless of approval status; the approved-only
// figure is reported separately so the two views are never conflated.
func GetEarningsOverview(c *fiber.Ctx) error {
	grossAll, err := services.GrossRevenueAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute revenue"})
	}

	grossApproved, err := services.GrossRevenueApproved()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute revenue"})
	}

	monthly, err := monthlyRevenue()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute monthly revenue"})
	}

	return c.JSON(fiber.Map{
		"total_revenue":          grossAll,
		"total_revenue_approved": grossApproved,
		"total_platform_fee":     services.PlatformShare(grossAll),
		"total_paid_out":         services.InstructorShare(grossAll),
		"monthly_earnings":       monthly,
	})
}

type monthlyRevenueRow struct {
	Month   string  `json:"month"`
	Total   float64 `json:"total"`
	PaidOut float64 `json:"paid_out"`
}

func monthlyRevenue() ([]monthlyRevenueRow, error) {
	var rows []struct {
		EnrolledAt time.Time
		Price      float64
	}
	err := database.DB.Model(&models.Enrollment{}).
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Select("enrollments.enrolled_at AS enrolled_at, courses.price AS price").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]float64)
	order := []string{}
	for _, r := range rows {
		key := r.EnrolledAt.Format("2006-01")
		if _, seen := byMonth[key]; !seen {
			order = append(order, key)
		}
		byMonth[key] += r.Price
	}

	result := make([]monthlyRevenueRow, 0, len(order))
	for _, key := range order {
		total := byMonth[key]
		month, _ := time.Parse("2006-01", key)
		result = append(result, monthlyRevenueRow{
			Month:   month.Format("January 2006"),
			Total:   total,
			PaidOut: services.InstructorShare(total),
		})
	}
	return result, nil
}

// GetDashboardAnalytics is the admin landing page counters.
func GetDashboardAnalytics(c *fiber.Ctx) error {
	var totalStudents, totalInstructors, enrollmentsLast30Days int64

	database.DB.Model(&models.User{}).Where("role = ?", "student").Count(&totalStudents)
	database.DB.Model(&models.User{}).Where("role = ? AND is_active = ?", "instructor", true).Count(&totalInstructors)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	database.DB.Model(&models.Enrollment{}).Where("enrolled_at > ?", thirtyDaysAgo).Count(&enrollmentsLast30Days)

	var totalRevenue float64
	database.DB.Model(&models.Payment{}).Select("COALESCE(SUM(amount), 0)").Row().Scan(&totalRevenue)

	var recentEnrollments []models.Enrollment
	database.DB.Order("enrolled_at desc").Limit(5).Preload("Student").Preload("Course").Find(&recentEnrollments)

	return c.JSON(fiber.Map{
		"total_students":           totalStudents,
		"total_active_instructors": totalInstructors,
		"total_revenue":            totalRevenue,
		"enrollments_last_30_days": enrollmentsLast30Days,
		"recent_enrollments":       recentEnrollments,
	})
}

// GetEnrollmentsMonitor lists every enrollment with an optional
// approval-status filter.
func GetEnrollmentsMonitor(c *fiber.Ctx) error {
	statusFilter := c.Query("status")

	query := database.DB.Preload("Student").Preload("Course").Preload("Course.Instructor").
		Order("enrolled_at desc")
	if statusFilter != "" {
		query = query.Where("approval_status = ?", statusFilter)
	}

	var enrollments []models.Enrollment
	if err := query.Find(&enrollments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(enrollments)
}

// GetAllPayments is the admin payments ledger view.
func GetAllPayments(c *fiber.Ctx) error {
	var payments []models.Payment
	err := database.DB.Preload("Student").Preload("Course").
		Order("paid_at desc").
		Find(&payments).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(payments)
}

// GetAllUsers lists non-admin accounts with optional role filter.
func GetAllUsers(c *fiber.Ctx) error {
	roleFilter := c.Query("role")

	query := database.DB.Where("role <> ?", "admin").Order("created_at desc")
	if roleFilter != "" {
		query = query.Where("role = ?", roleFilter)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(users)
}

// GetAdminNotifications returns the latest withdrawal notifications.
func GetAdminNotifications(c *fiber.Ctx) error {
	var notifs []models.AdminNotification
	err := database.DB.Order("created_at desc").Limit(20).Find(&notifs).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(notifs)
}

// ToggleUserStatus bans or reinstates a user. Banning an instructor also
// pulls their courses from the catalogue; reinstating restores them.
func ToggleUserStatus(c *fiber.Ctx) error {
	userID := c.Params("userId")

	type Request struct {
		IsActive bool `json:"is_active"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("is_active", req.IsActive).Error; err != nil {
			return err
		}
		if user.Role == "instructor" {
			return tx.Model(&models.Course{}).
				Where("instructor_id = ?", user.ID).
				Update("is_available", req.IsActive).Error
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user status"})
	}

	return c.JSON(fiber.Map{"message": "User status updated successfully"})
}
