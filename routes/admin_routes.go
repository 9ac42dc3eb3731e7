package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thihanaung/ptp_education/handlers"
	"github.com/thihanaung/ptp_education/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/dashboard-analytics", handlers.GetDashboardAnalytics)
	admin.Get("/earnings", handlers.GetEarningsOverview)
	admin.Get("/enrollments", handlers.GetEnrollmentsMonitor)
	admin.Get("/payments", handlers.GetAllPayments)
	admin.Get("/notifications", handlers.GetAdminNotifications)

	courses := admin.Group("/courses")
	courses.Get("/pending", handlers.ListPendingCourses)
	courses.Put("/:courseId/approve", handlers.ApproveCourse)
	courses.Delete("/:courseId/reject", handlers.RejectCourse)

	payouts := admin.Group("/payouts")
	payouts.Get("", handlers.GetAdminPayouts)
	payouts.Post("/:enrollmentId/mark-paid", handlers.MarkPayoutPaid)
	payouts.Post("/:enrollmentId/process", handlers.ProcessPendingPayout)

	withdrawals := admin.Group("/withdrawals")
	withdrawals.Get("", handlers.GetAdminWithdrawView)
	withdrawals.Post("", handlers.ProcessAdminWithdrawal)
	withdrawals.Delete("", handlers.ClearAdminWithdrawals)
	withdrawals.Get("/instructors", handlers.ListInstructorWithdrawals)

	users := admin.Group("/users")
	users.Get("", handlers.GetAllUsers)
	users.Put("/:userId/status", handlers.ToggleUserStatus)

	reviews := admin.Group("/reviews")
	reviews.Delete("/:reviewId", handlers.AdminDeleteReview)

	reports := admin.Group("/reports")
	reports.Get("", handlers.GetReports)
	reports.Put("/:reportId/resolve", handlers.ResolveReport)
}
