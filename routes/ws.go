package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fixzep/fixzep-server/ws"
)

// SetupWebsocketRoutes exposes the real-time activity channel
func SetupWebsocketRoutes(app *fiber.App) {
	app.Use("/customer/ws", ws.Upgrade)
	app.Get("/customer/ws", ws.Handler())
}
