package routes

import (
	"github.com/gofiber/fiber/v2"

	"salesbrowser/handlers"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	sales := api.Group("/sales")
	sales.Get("/", handlers.HandleQuerySales)
	sales.Get("/filter-options", handlers.HandleGetFilterOptions)
	sales.Get("/summary", handlers.HandleGetSalesSummary)
	sales.Post("/insights", handlers.HandleGetSalesInsights)
}
