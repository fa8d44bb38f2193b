package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fixzep/fixzep-server/controllers"
	"github.com/fixzep/fixzep-server/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/customer/auth")

	// Public routes
	auth.Post("/register", controllers.Register)
	auth.Post("/login", controllers.Login)
	auth.Post("/forgot-password", controllers.ForgotPassword)
	auth.Post("/reset-password", controllers.ResetPassword)
	auth.Post("/refresh", controllers.RefreshToken)

	// Protected routes
	auth.Post("/logout", middleware.Protected(), controllers.Logout)
}
