package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thihanaung/ptp_education/handlers"
	"github.com/thihanaung/ptp_education/middleware"
)

func StudentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	student := api.Group("/student", middleware.Protected())

	student.Post("/courses/:courseId/pay", handlers.PayCourse)
	student.Get("/enrollments", handlers.GetMyEnrolledCourses)
	student.Post("/courses/:courseId/reviews", handlers.CreateReview)
	student.Get("/reviews", handlers.GetMyReviews)
	student.Post("/reports", handlers.CreateReport)
	student.Get("/reports", handlers.GetMyReports)
}
