package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/thihanaung/ptp_education/database"
	"github.com/thihanaung/ptp_education/models"
	"gorm.io/gorm"
)

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// CreateReview lets a student review a course they hold an approved
// enrollment in. One review per student per course.
func CreateReview(c *fiber.Ctx) error {
	studentID := authUserID(c)

	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course ID format"})
	}

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var enrollment models.Enrollment
	err = database.DB.
		Where("student_id = ? AND course_id = ? AND approval_status = ?", studentID, courseID, models.EnrollmentApproved).
		First(&enrollment).Error
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only review courses you are enrolled in"})
	}

	var existing models.Review
	err = database.DB.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You have already reviewed this course"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	review := models.Review{
		StudentID: studentID,
		CourseID:  courseID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := database.DB.Create(&review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create review"})
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetMyReviews lists the signed-in student's reviews.
func GetMyReviews(c *fiber.Ctx) error {
	studentID := authUserID(c)

	var reviews []models.Review
	err := database.DB.Preload("Course").
		Where("student_id = ?", studentID).
		Order("created_at desc").
		Find(&reviews).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(reviews)
}

// AdminDeleteReview removes a review outright (moderation).
func AdminDeleteReview(c *fiber.Ctx) error {
	reviewID := c.Params("reviewId")

	var review models.Review
	if err := database.DB.First(&review, "id = ?", reviewID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Review not found"})
	}
	if err := database.DB.Delete(&review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete review"})
	}
	return c.JSON(fiber.Map{"message": "Review deleted"})
}

// GetCourseReviews returns a course's reviews with the average rating.
func GetCourseReviews(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var reviews []models.Review
	err := database.DB.Preload("Student").
		Where("course_id = ?", courseID).
		Order("created_at desc").
		Find(&reviews).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	var averageRating float64
	database.DB.Model(&models.Review{}).
		Where("course_id = ?", courseID).
		Select("COALESCE(AVG(rating), 0)").
		Row().Scan(&averageRating)

	return c.JSON(fiber.Map{
		"reviews":        reviews,
		"average_rating": averageRating,
		"review_count":   len(reviews),
	})
}
