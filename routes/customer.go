package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fixzep/fixzep-server/controllers/customer"
	"github.com/fixzep/fixzep-server/middleware"
)

// SetupCustomerRoutes configures the storefront API
func SetupCustomerRoutes(app *fiber.App) {
	// Catalog is public
	services := app.Group("/customer/services")
	services.Get("/", customer.GetAllServices)
	services.Get("/search", customer.SearchServices)
	services.Get("/:id", customer.GetService)
	services.Get("/:id/ratings", customer.GetServiceRatings)

	app.Get("/customer/categories", customer.GetCategories)

	// Everything below requires a session
	app.Get("/customer/time-slots", middleware.Protected(), customer.GetTimeSlots)

	addresses := app.Group("/customer/addresses", middleware.Protected())
	addresses.Get("/", customer.GetAddresses)
	addresses.Post("/", customer.CreateAddress)
	addresses.Put("/:id", customer.UpdateAddress)
	addresses.Delete("/:id", customer.DeleteAddress)
	addresses.Patch("/:id/preferred", customer.SetPreferredAddress)

	cart := app.Group("/customer/cart", middleware.Protected())
	cart.Get("/", customer.GetCart)
	cart.Post("/items", customer.AddCartItem)
	cart.Put("/items", customer.UpdateCartItem)
	cart.Delete("/items/:serviceId", customer.RemoveCartItem)
	cart.Delete("/", customer.ClearCart)

	orders := app.Group("/customer/orders", middleware.Protected())
	orders.Post("/", customer.CreateOrders)
	orders.Get("/", customer.GetOrders)
	orders.Get("/:id", customer.GetOrder)
	orders.Patch("/:id/cancel", customer.CancelOrder)
	orders.Get("/:id/messages", customer.GetOrderMessages)
	orders.Post("/:id/messages", customer.PostOrderMessage)
	orders.Get("/:id/jobcard", customer.GetJobCard)
	orders.Post("/:id/jobcard/items/:itemId/review", customer.ReviewJobCardItem)
	orders.Post("/:id/rating", customer.RateOrder)

	payments := app.Group("/customer/payments", middleware.Protected())
	payments.Post("/", customer.CreatePayment)
	payments.Post("/init-with-orders", customer.InitPaymentWithOrders)
	payments.Post("/confirm", customer.ConfirmPayment)
	payments.Get("/:id", customer.GetPayment)

	profile := app.Group("/customer/profile", middleware.Protected())
	profile.Get("/", customer.GetProfile)
	profile.Put("/", customer.UpdateProfile)
	profile.Post("/deactivate", customer.DeactivateAccount)
}
