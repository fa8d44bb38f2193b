package main

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/fixzep/fixzep-server/cron"

	"github.com/fixzep/fixzep-server/db"

	"github.com/fixzep/fixzep-server/redis"

	"github.com/fixzep/fixzep-server/routes"
)

func main() {
	app := fiber.New()
	if os.Getenv("AUTO_MIGRATE") == "true" {
		db.Migrate()
	} else {
		db.Init()
	}
	redis.InitRedis()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("FixZep API is up")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupCustomerRoutes(app)
	routes.SetupWebsocketRoutes(app)

	cron.StartCronJobs()

	app.Listen(":8000")
	fmt.Println("Server started on port 8000")
}
