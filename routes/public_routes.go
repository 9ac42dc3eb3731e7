package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thihanaung/ptp_education/handlers"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	courses := api.Group("/courses")
	courses.Get("", handlers.ListCourses)
	courses.Get("/:courseId/reviews", handlers.GetCourseReviews)
}
