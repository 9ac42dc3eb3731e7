package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/thihanaung/ptp_education/database"
	"github.com/thihanaung/ptp_education/models"
	"github.com/thihanaung/ptp_education/notifications"
)

type CourseRequest struct {
	Title       string  `json:"title" validate:"required,min=3"`
	Category    string  `json:"category" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}

// CreateCourse submits a new course for admin review. It stays invisible to
// students until approved.
func CreateCourse(c *fiber.Ctx) error {
	instructorID := authUserID(c)

	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	course := models.Course{
		InstructorID: instructorID,
		Title:        req.Title,
		Category:     req.Category,
		Description:  req.Description,
		Price:        req.Price,
		Status:       "pending",
		IsAvailable:  true,
	}
	if err := database.DB.Create(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create course"})
	}

	return c.Status(fiber.StatusCreated).JSON(course)
}

// ListCourses is the public catalogue: approved courses whose instructor is
// not banned.
func ListCourses(c *fiber.Ctx) error {
	var courses []models.Course
	err := database.DB.Preload("Instructor").
		Where("status = ? AND is_available = ?", "approved", true).
		Order("created_at desc").
		Find(&courses).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(courses)
}

func GetMyCourses(c *fiber.Ctx) error {
	instructorID := authUserID(c)

	var courses []models.Course
	database.DB.Where("instructor_id = ?", instructorID).Order("created_at desc").Find(&courses)
	return c.JSON(courses)
}

func ListPendingCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.DB.Preload("Instructor").Where("status = ?", "pending").Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(courses)
}

// ApproveCourse publishes a pending course. The approval timestamp is
// backfilled if the course never got one.
func ApproveCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var course models.Course
	if err := database.DB.Preload("Instructor").First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	updates := map[string]interface{}{"status": "approved"}
	if course.ApprovedAt == nil {
		updates["approved_at"] = time.Now().UTC()
	}
	if err := database.DB.Model(&course).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to approve course"})
	}

	go notifications.SendEmail(
		course.Instructor.FullName,
		course.Instructor.Email,
		"Course Approved",
		fmt.Sprintf("<h1>Course Approved</h1><p>Dear %s,</p><p>Your course \"%s\" has been approved and is now visible to students. Thank you for your contribution!</p>", course.Instructor.FullName, course.Title),
	)

	return c.JSON(fiber.Map{"message": "Course approved successfully"})
}

// RejectCourse deletes the course outright; enrollments are untouched.
func RejectCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var course models.Course
	if err := database.DB.Preload("Instructor").First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	if err := database.DB.Delete(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to reject course"})
	}

	go notifications.SendEmail(
		course.Instructor.FullName,
		course.Instructor.Email,
		"Course Rejected",
		fmt.Sprintf("<h1>Course Rejected</h1><p>Dear %s,</p><p>Unfortunately, your course \"%s\" was rejected by the admin. If you'd like to revise and resubmit, please follow the guidelines or contact support.</p>", course.Instructor.FullName, course.Title),
	)

	return c.JSON(fiber.Map{"message": "Course rejected and removed"})
}
