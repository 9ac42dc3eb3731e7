package routes

import (
	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/thihanaung/ptp_education/handlers"
	"github.com/thihanaung/ptp_education/middleware"
)

func MessagingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	messages := api.Group("/messages", middleware.Protected())
	messages.Get("/conversations", handlers.GetUserConversations)
	messages.Post("/conversations", handlers.CreateOrGetConversation)
	messages.Get("/conversations/:conversationId", handlers.GetConversationMessages)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocketcontrib.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/chat", websocketcontrib.New(handlers.ServeWs))
}
