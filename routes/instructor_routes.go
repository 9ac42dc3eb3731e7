package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thihanaung/ptp_education/handlers"
	"github.com/thihanaung/ptp_education/middleware"
)

func InstructorRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	instructor := api.Group("/instructor", middleware.Protected(), middleware.InstructorRequired())

	instructor.Post("/courses", handlers.CreateCourse)
	instructor.Get("/courses", handlers.GetMyCourses)
	instructor.Get("/enrollments", handlers.GetInstructorEnrollments)
	instructor.Get("/courses/:courseId/enrollments", handlers.GetCourseEnrollments)
	instructor.Put("/enrollments/:enrollmentId/approve", handlers.ApproveEnrollment)

	instructor.Get("/earnings", handlers.GetMyEarnings)
	instructor.Post("/withdrawals", handlers.RequestWithdrawal)
	instructor.Get("/withdrawals", handlers.GetMyWithdrawals)
}
