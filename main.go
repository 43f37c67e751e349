package main

import (
	"fmt"
	"os"

	"homicide-report/config"
	"homicide-report/models"
	"homicide-report/scraper/murdermap"
	"homicide-report/scraper/sample"
	"homicide-report/services"
	"homicide-report/storage"
	"homicide-report/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Homicide Report System starting ===")
	logger.Info("Config — pages: %d | cases/page: %d | concurrency: %d | rate: %dms",
		cfg.PagesToScrape, cfg.CasesPerPage, cfg.MaxConcurrency, cfg.RateLimitMs)

	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		os.Exit(1)
	}
	defer csvWriter.Close()

	pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		logger.Error("Make sure Docker is running: docker compose up -d")
		os.Exit(1)
	}
	defer pgWriter.Close()

	rawIncidents := acquire(cfg, logger)
	if len(rawIncidents) == 0 {
		logger.Error("No incident records were obtained. Exiting.")
		os.Exit(1)
	}

	logger.Info("Obtained %d raw incidents — writing to CSV...", len(rawIncidents))

	if err := csvWriter.WriteRaw(rawIncidents); err != nil {
		logger.Error("CSV write failed: %v", err)
	} else {
		logger.Info("Raw incidents saved to %s", cfg.CSVOutputPath)
	}

	sanitizer := services.NewSanitizer(logger)
	incidents, dropStats := sanitizer.Sanitize(rawIncidents)

	reportSvc := services.NewReportService(logger)

	if len(incidents) == 0 {
		logger.Error("All incidents were dropped during sanitisation.")
		reportSvc.PrintEmpty(dropStats)
		os.Exit(1)
	}

	logger.Info("Cleaned dataset: %d incidents", len(incidents))

	if err := pgWriter.Write(incidents); err != nil {
		logger.Error("PostgreSQL write failed: %v", err)
	} else {
		logger.Info("Clean incidents stored in PostgreSQL (table: incidents)")
	}

	dbIncidents, err := pgWriter.FetchAll()
	if err != nil {
		logger.Error("Failed to fetch incidents from DB for analysis: %v", err)
		dbIncidents = incidents
	}

	report, err := reportSvc.Generate(len(rawIncidents), dbIncidents, dropStats)
	if err != nil {
		reportSvc.PrintEmpty(dropStats)
		os.Exit(1)
	}
	reportSvc.Print(report)

	fmt.Printf("  Done. Raw CSV → %s | Clean data → PostgreSQL (incidents table)\n\n",
		cfg.CSVOutputPath)
}

// acquire obtains raw incidents from the live source, falling back to the
// synthetic generator when scraping is disabled or comes back empty.
func acquire(cfg *config.Config, logger *utils.Logger) []*models.RawIncident {
	if cfg.UseSampleData {
		logger.Info("USE_SAMPLE_DATA set — using synthetic incidents")
		return sample.New(logger).Generate(cfg.SampleSize)
	}

	scraper := murdermap.New(cfg, logger)
	rawIncidents, err := scraper.Scrape()
	if err != nil {
		logger.Error("Scrape failed: %v", err)
	}

	if len(rawIncidents) == 0 {
		logger.Warn("Scrape returned no cases — falling back to synthetic incidents")
		return sample.New(logger).Generate(cfg.SampleSize)
	}
	return rawIncidents
}
