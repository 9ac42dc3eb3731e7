package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thihanaung/ptp_education/handlers"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register/student", handlers.RegisterStudent)
	auth.Post("/register/instructor", handlers.RegisterInstructor)
	auth.Post("/login", handlers.LoginUser)
}
