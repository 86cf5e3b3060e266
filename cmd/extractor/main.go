// Command extractor runs the full OTE annual report extraction: every
// configured electricity and gas workbook is parsed into canonical series,
// the daily CZK/EUR rate series is completed, and the seven output tables are
// written once per currency.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"otecli/internal/config"
	"otecli/internal/dataprocessing"
	"otecli/internal/exporter"
	"otecli/internal/files"
	"otecli/internal/infrastructure"
	"otecli/pkg/contracts"
)

func main() {
	dataDir := flag.String("data", "", "input directory with report workbooks (defaults to configured data dir)")
	outDir := flag.String("out", "", "output directory for CSV tables (defaults to configured output dir)")
	discover := flag.Bool("discover", false, "also process report workbooks found in the data dir but absent from the configured lists")
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

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Printf("Warning: failed to initialize logger, using default: %v\n", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if *dataDir == "" {
		*dataDir = cfg.Paths.DataDir
	}
	if *outDir == "" {
		*outDir = cfg.Paths.OutputDir
	}

	logger.Info("starting OTE report extraction",
		slog.String("data_dir", *dataDir),
		slog.String("output_dir", *outDir),
		slog.Int("electricity_files", len(cfg.Markets.ElectricityFiles)),
		slog.Int("gas_files", len(cfg.Markets.GasFiles)))

	electricityFiles := cfg.Markets.ElectricityFiles
	gasFiles := cfg.Markets.GasFiles
	if *discover {
		discovered, err := files.NewDiscovery(*dataDir).Workbooks()
		if err != nil {
			logger.Error("workbook discovery failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		electricityFiles, gasFiles = mergeDiscovered(electricityFiles, gasFiles, discovered, logger)
	}

	history := dataprocessing.NewHistory()

	for _, name := range electricityFiles {
		path := filepath.Join(*dataDir, name)
		if _, err := os.Stat(path); err != nil {
			logger.Warn("workbook not found, skipping", slog.String("file", name))
			continue
		}
		if err := history.ProcessElectricityWorkbook(path); err != nil {
			logger.Error("failed to process workbook", slog.String("file", name), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	for _, name := range gasFiles {
		path := filepath.Join(*dataDir, name)
		if _, err := os.Stat(path); err != nil {
			logger.Warn("workbook not found, skipping", slog.String("file", name))
			continue
		}
		if err := history.ProcessGasWorkbook(path); err != nil {
			logger.Error("failed to process workbook", slog.String("file", name), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	history.FinalizeRates()
	logger.Info("extraction complete",
		slog.Int("dam_rows", len(history.DAM)),
		slog.Int("im_rows", len(history.IM)),
		slog.Int("re_positive_rows", len(history.REPositive)),
		slog.Int("re_negative_rows", len(history.RENegative)),
		slog.Int("imbalance_rows", len(history.Imbalances)),
		slog.Int("gas_rows", len(history.Gas)),
		slog.Int("index_rows", len(history.DAMIndexes)),
		slog.Int("rate_dates", history.Rates.Len()))

	tables := exporter.BuildTables(history)
	emitter := exporter.NewEmitter(exporter.NewCSVWriter(*outDir), history.Rates)

	for _, currency := range []exporter.Currency{exporter.EUR, exporter.CZK} {
		if err := emitter.Emit(currency, tables); err != nil {
			logger.Error("failed to write output tables",
				slog.String("currency", string(currency)),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("output tables written", slog.String("currency", string(currency)))
	}
}

// mergeDiscovered appends discovered workbooks the configured lists do not
// already name, keeping the configured order first.
func mergeDiscovered(electricity, gas []string, discovered []files.Workbook, logger *slog.Logger) ([]string, []string) {
	known := make(map[string]bool, len(electricity)+len(gas))
	for _, name := range electricity {
		known[name] = true
	}
	for _, name := range gas {
		known[name] = true
	}

	for _, wb := range discovered {
		if known[wb.Name] {
			continue
		}
		logger.Info("discovered unconfigured workbook",
			slog.String("file", wb.Name))
		switch wb.Market {
		case files.MarketElectricity:
			electricity = append(electricity, wb.Name)
		case files.MarketGas:
			gas = append(gas, wb.Name)
		}
	}
	return electricity, gas
}
