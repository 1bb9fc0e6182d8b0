package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"salesbrowser/query"
)

// engine is the query engine all sales handlers dispatch to, set once at
// startup.
var engine *query.Engine

// SetEngine injects the query engine the handlers use.
func SetEngine(e *query.Engine) {
	engine = e
}

// salesParams maps raw query parameters onto the engine's input shape. The
// engine owns all normalization, so values pass through untouched;
// "categories" is accepted as an alias for "productCategories", matching
// the public parameter name the frontend was built against.
func salesParams(c *fiber.Ctx) query.Params {
	categories := c.Query("productCategories")
	if categories == "" {
		categories = c.Query("categories")
	}

	return query.Params{
		Search:            c.Query("search"),
		Regions:           queryList(c, "regions"),
		Genders:           queryList(c, "genders"),
		ProductCategories: listOf(categories),
		Tags:              queryList(c, "tags"),
		PaymentMethods:    queryList(c, "paymentMethods"),
		AgeMin:            c.Query("ageMin"),
		AgeMax:            c.Query("ageMax"),
		DateStart:         c.Query("dateStart"),
		DateEnd:           c.Query("dateEnd"),
		SortBy:            c.Query("sortBy"),
		SortOrder:         c.Query("sortOrder"),
		Page:              c.Query("page"),
		PageSize:          c.Query("pageSize"),
	}
}

func queryList(c *fiber.Ctx, name string) []string {
	return listOf(c.Query(name))
}

func listOf(raw string) []string {
	if raw == "" {
		return nil
	}
	return []string{raw}
}

// HandleQuerySales answers the paginated, filterable, sortable sales view.
// GET /api/v1/sales
func HandleQuerySales(c *fiber.Ctx) error {
	result, err := engine.Query(c.Context(), salesParams(c))
	if err != nil {
		log.Printf("Error querying sales: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to load sales data"})
	}
	return c.JSON(result)
}

// HandleGetFilterOptions lists the distinct values for each filter control.
// GET /api/v1/sales/filter-options
func HandleGetFilterOptions(c *fiber.Ctx) error {
	options, err := engine.FilterOptions(c.Context())
	if err != nil {
		log.Printf("Error collecting filter options: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to load filter options"})
	}
	return c.JSON(fiber.Map{"status": "success", "data": options})
}

// HandleGetSalesSummary aggregates the filtered result set.
// GET /api/v1/sales/summary
func HandleGetSalesSummary(c *fiber.Ctx) error {
	summary, err := engine.Summarize(c.Context(), salesParams(c))
	if err != nil {
		log.Printf("Error summarizing sales: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to summarize sales data"})
	}
	return c.JSON(fiber.Map{"status": "success", "data": summary})
}
