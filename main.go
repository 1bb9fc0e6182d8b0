package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"salesbrowser/config"
	"salesbrowser/database"
	"salesbrowser/handlers"
	"salesbrowser/ingest"
	"salesbrowser/query"
	"salesbrowser/routes"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	config.Load()

	// Pick the record source: an in-memory CSV snapshot loaded once, or a
	// Postgres-backed store queried per request.
	var source query.RecordSource
	switch config.AppConfig.DataSource {
	case "postgres":
		if config.AppConfig.DatabaseURL == "" {
			log.Fatal("DATABASE_URL is not set")
		}
		database.Connect(config.AppConfig.DatabaseURL)
		defer database.Close()
		source = database.NewSalesSource(database.GetDB())
	case "csv":
		csvSource, err := ingest.NewCSVSource(config.AppConfig.CSVPath)
		if err != nil {
			log.Fatalf("Unable to load sales CSV: %v", err)
		}
		source = csvSource
		log.Printf("Loaded sales records from %s", config.AppConfig.CSVPath)
	default:
		log.Fatalf("Unknown DATA_SOURCE %q (expected csv or postgres)", config.AppConfig.DataSource)
	}

	handlers.SetEngine(query.NewEngine(source))

	app := fiber.New()

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	routes.SetupRoutes(app)

	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
