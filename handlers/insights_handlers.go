package handlers

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"salesbrowser/config"
	"salesbrowser/models"
)

// HandleGetSalesInsights generates a natural-language reading of the
// currently filtered sales set using the Gemini API. Filters arrive as the
// same query parameters the sales endpoint takes.
// POST /api/v1/sales/insights
func HandleGetSalesInsights(c *fiber.Ctx) error {
	apiKey := config.AppConfig.GeminiAPIKey
	if apiKey == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "error",
			"message": "Insights are not configured on this server",
		})
	}

	summary, err := engine.Summarize(c.Context(), salesParams(c))
	if err != nil {
		log.Printf("Error summarizing sales for insights: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to summarize sales data"})
	}

	ctx := c.Context()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		log.Printf("Error creating Gemini client: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to initialize Gemini client"})
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-1.5-pro-latest")
	resp, err := model.GenerateContent(ctx, genai.Text(insightsPrompt(summary)))
	if err != nil {
		log.Printf("Error generating insights: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to generate insights"})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"insight": responseText(resp),
			"summary": summary,
		},
	})
}

func insightsPrompt(s *models.SalesSummary) string {
	var b strings.Builder
	b.WriteString("You are an analyst for a retail chain. Summarize the following filtered sales data in two or three sentences, pointing out anything notable:\n")
	fmt.Fprintf(&b, "Transactions: %d\n", s.TotalItems)
	fmt.Fprintf(&b, "Units sold: %d\n", s.TotalQuantity)
	fmt.Fprintf(&b, "Gross revenue: %.2f\n", s.TotalAmount)
	fmt.Fprintf(&b, "Net revenue after discounts: %.2f\n", s.FinalAmount)

	categories := make([]string, 0, len(s.RevenueByCategory))
	for cat := range s.RevenueByCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)
	for _, cat := range categories {
		fmt.Fprintf(&b, "Revenue in %s: %.2f\n", cat, s.RevenueByCategory[cat])
	}
	return b.String()
}

func responseText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return b.String()
}
