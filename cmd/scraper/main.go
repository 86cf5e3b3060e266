// Command scraper collects day-ahead market hours from the OTE web site for
// a date range and stores them as CSV and/or SQLite rows compatible with the
// dam_prices table shape.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"otecli/internal/config"
	"otecli/internal/exporter"
	"otecli/internal/infrastructure"
	"otecli/internal/scraper"
	"otecli/pkg/contracts"
	"otecli/pkg/contracts/domain"
)

var csvHeaders = []string{"date", "hour", "price_eur", "volume_mwh", "saldo_mwh", "export_mwh", "import_mwh"}

func main() {
	startStr := flag.String("start", "2025-01-01", "start date (YYYY-MM-DD)")
	endStr := flag.String("end", "2025-12-31", "end date (YYYY-MM-DD), inclusive")
	output := flag.String("output", "ote_electricity_prices", "output filename without extension")
	format := flag.String("format", "both", "output format: csv | sqlite | both")
	delay := flag.Duration("delay", time.Second, "delay between requests")
	resume := flag.Bool("resume", false, "skip dates already present in the SQLite database")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.VersionString())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg.Logging.FilePath = "logs/scraper.log"

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Printf("Warning: failed to initialize logger, using default: %v\n", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	start, err := time.Parse("2006-01-02", *startStr)
	if err != nil {
		logger.Error("invalid --start date", slog.String("error", err.Error()))
		os.Exit(1)
	}
	end, err := time.Parse("2006-01-02", *endStr)
	if err != nil {
		logger.Error("invalid --end date", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if end.Before(start) {
		logger.Error("end date precedes start date")
		os.Exit(1)
	}

	writeCSV := *format == "csv" || *format == "both"
	writeDB := *format == "sqlite" || *format == "both"
	if !writeCSV && !writeDB {
		logger.Error("unknown output format", slog.String("format", *format))
		os.Exit(1)
	}

	totalDays := int(end.Sub(start).Hours()/24) + 1
	logger.Info("starting day-ahead market scrape",
		slog.String("from", *startStr),
		slog.String("to", *endStr),
		slog.Int("days", totalDays),
		slog.String("format", *format))

	csvPath := *output + ".csv"
	dbPath := *output + ".db"

	var store *scraper.Store
	scraped := make(map[string]bool)
	if writeDB {
		store, err = scraper.OpenStore(dbPath)
		if err != nil {
			logger.Error("failed to open database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer store.Close()

		if *resume {
			scraped, err = store.ScrapedDates()
			if err != nil {
				logger.Error("failed to read scraped dates", slog.String("error", err.Error()))
				os.Exit(1)
			}
			logger.Info("resume mode", slog.Int("dates_already_scraped", len(scraped)))
		}
	}

	csvWriter := exporter.NewCSVWriter(".")
	if writeCSV && !*resume {
		if err := csvWriter.WriteSimpleCSV(csvPath, csvHeaders, nil); err != nil {
			logger.Error("failed to initialize CSV", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	client := scraper.NewClient(*delay)
	ctx := context.Background()

	var scrapedDays, skippedDays, failedDays int
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		dateStr := day.Format("2006-01-02")
		if scraped[dateStr] {
			skippedDays++
			continue
		}

		records := client.ScrapeDateWithRetry(ctx, day)
		if len(records) == 0 {
			failedDays++
			logger.Warn("no data for date", slog.String("date", dateStr))
			continue
		}

		if writeCSV {
			if err := csvWriter.AppendToCSV(csvPath, toCSVRecords(records)); err != nil {
				logger.Error("failed to append CSV", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}
		if writeDB {
			if err := store.Upsert(records); err != nil {
				logger.Error("failed to store records", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}

		scrapedDays++
		logger.Info("date scraped",
			slog.String("date", dateStr),
			slog.Int("hours", len(records)))
	}

	logger.Info("scrape complete",
		slog.Int("days_scraped", scrapedDays),
		slog.Int("days_skipped", skippedDays),
		slog.Int("days_failed", failedDays))
}

func toCSVRecords(records []domain.DAMPrice) [][]string {
	out := make([][]string, 0, len(records))
	for _, r := range records {
		out = append(out, []string{
			r.Date,
			fmt.Sprintf("%d", r.Hour),
			formatCell(r.Price),
			formatCell(r.Volume),
			formatCell(r.Saldo),
			formatCell(r.Export),
			formatCell(r.Import),
		})
	}
	return out
}

func formatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%g", *v)
}
