package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/thihanaung/ptp_education/database"
	"github.com/thihanaung/ptp_education/models"
	"github.com/thihanaung/ptp_education/notifications"
	"gorm.io/gorm"
)

// ApproveEnrollment moves an enrollment from Pending to Approved on behalf
// of the instructor who owns its course. Approval is what makes the
// enrollment's revenue eligible for payout; there is no way back to
// Pending. The student email afterwards is best-effort only.
func ApproveEnrollment(enrollmentID, instructorID uuid.UUID) error {
	var enrollment models.Enrollment
	err := database.DB.First(&enrollment, "id = ?", enrollmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	var course models.Course
	err = database.DB.First(&course, "id = ? AND instructor_id = ?", enrollment.CourseID, instructorID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrForbidden
		}
		return err
	}

	if enrollment.ApprovalStatus == models.EnrollmentApproved {
		return ErrAlreadyApproved
	}

	err = database.DB.Model(&enrollment).
		Update("approval_status", models.EnrollmentApproved).Error
	if err != nil {
		return err
	}

	var student models.User
	if err := database.DB.First(&student, "id = ?", enrollment.StudentID).Error; err == nil {
		go notifications.SendEmail(
			student.FullName,
			student.Email,
			fmt.Sprintf("Enrollment Approved: %s", course.Title),
			fmt.Sprintf("<h1>Enrollment Approved</h1><p>Hello %s,</p><p>Your enrollment for the course \"%s\" has been approved by the instructor. You can now access it in My Courses.</p>", student.FullName, course.Title),
		)
	}

	return nil
}
