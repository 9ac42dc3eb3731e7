package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/thihanaung/ptp_education/database"
	"github.com/thihanaung/ptp_education/models"
	"github.com/thihanaung/ptp_education/notifications"
	"github.com/thihanaung/ptp_education/services"
	"gorm.io/gorm"
)

type PayCourseRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required"`
}

// PayCourse records a student's payment and creates the matching Pending
// enrollment in one transaction. The payment amount is copied from the
// course price so later edits never rewrite the ledger.
func PayCourse(c *fiber.Ctx) error {
	studentID := authUserID(c)

	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course ID format"})
	}

	var req PayCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var course models.Course
	if err := database.DB.Preload("Instructor").First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}
	if course.Status != "approved" || !course.IsAvailable {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Course is not open for enrollment"})
	}

	var enrollment models.Enrollment
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		payment := models.Payment{
			StudentID: studentID,
			CourseID:  courseID,
			Amount:    course.Price,
			Method:    req.PaymentMethod,
			PaidAt:    now,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		enrollment = models.Enrollment{
			StudentID:      studentID,
			CourseID:       courseID,
			EnrolledAt:     now,
			ApprovalStatus: models.EnrollmentPending,
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return services.ErrAlreadyEnrolled
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, services.ErrAlreadyEnrolled) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Already enrolled in this course"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process payment"})
	}

	var student models.User
	if err := database.DB.First(&student, "id = ?", studentID).Error; err == nil {
		go func() {
			notifications.SendEmail(
				course.Instructor.FullName,
				course.Instructor.Email,
				fmt.Sprintf("New Enrollment: %s", course.Title),
				fmt.Sprintf("<h1>New Enrollment</h1><p>Hello %s,</p><p>Your course \"%s\" has a new enrollment from %s (%.0f MMK). Please review and approve it from your dashboard.</p>", course.Instructor.FullName, course.Title, student.FullName, course.Price),
			)
			notifications.SendEmail(
				student.FullName,
				student.Email,
				fmt.Sprintf("Payment Received: %s", course.Title),
				fmt.Sprintf("<h1>Payment Received</h1><p>Hello %s,</p><p>We received your payment of %.0f MMK for \"%s\". Your enrollment is pending instructor approval.</p>", student.FullName, course.Price, course.Title),
			)
		}()
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Payment successful, enrollment pending approval",
		"enrollment": enrollment,
	})
}

// GetMyEnrolledCourses lists the student's approved enrollments.
func GetMyEnrolledCourses(c *fiber.Ctx) error {
	studentID := authUserID(c)

	var enrollments []models.Enrollment
	database.DB.Preload("Course").Preload("Course.Instructor").
		Where("student_id = ? AND approval_status = ?", studentID, models.EnrollmentApproved).
		Order("enrolled_at desc").
		Find(&enrollments)
	return c.JSON(enrollments)
}

// GetInstructorEnrollments lists enrollments across all of the acting
// instructor's courses, pending ones included.
func GetInstructorEnrollments(c *fiber.Ctx) error {
	instructorID := authUserID(c)

	var enrollments []models.Enrollment
	err := database.DB.Preload("Student").Preload("Course").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("courses.instructor_id = ?", instructorID).
		Order("enrolled_at desc").
		Find(&enrollments).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(enrollments)
}

// GetCourseEnrollments is the per-course detail view; instructors can only
// see their own courses.
func GetCourseEnrollments(c *fiber.Ctx) error {
	instructorID := authUserID(c)
	courseID := c.Params("courseId")

	var course models.Course
	err := database.DB.First(&course, "id = ? AND instructor_id = ?", courseID, instructorID).Error
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized to view enrollments for this course"})
	}

	var enrollments []models.Enrollment
	database.DB.Preload("Student").
		Where("course_id = ?", course.ID).
		Order("enrolled_at desc").
		Find(&enrollments)

	return c.JSON(fiber.Map{
		"course_title": course.Title,
		"enrollments":  enrollments,
	})
}

// ApproveEnrollment flips a pending enrollment to Approved, making its
// revenue payable.
func ApproveEnrollment(c *fiber.Ctx) error {
	instructorID := authUserID(c)

	enrollmentID, err := uuid.Parse(c.Params("enrollmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid enrollment ID format"})
	}

	err = services.ApproveEnrollment(enrollmentID, instructorID)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"message": "Enrollment successfully approved"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Enrollment not found"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized to approve this enrollment"})
	case errors.Is(err, services.ErrAlreadyApproved):
		return c.JSON(fiber.Map{"message": "Enrollment already approved"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to approve enrollment"})
	}
}
