package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete application configuration. Values come from
// environment variables (prefix OTE) layered over an optional YAML file,
// with struct-tag defaults as the base.
type Config struct {
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Markets MarketsConfig `yaml:"markets" envconfig:"MARKETS"`
}

// PathsConfig contains the file system locations of the pipeline.
type PathsConfig struct {
	DataDir   string `yaml:"data_dir" envconfig:"DATA_DIR" default:"ote_data"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"extracted_data"`
	LogsDir   string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/extractor.log"`
}

// MarketsConfig enumerates the annual report workbooks per market. The lists
// are fixed: a file that is not present on disk is skipped with a warning.
type MarketsConfig struct {
	ElectricityFiles []string `yaml:"electricity_files" envconfig:"ELECTRICITY_FILES" default:"Annual_market_report_2024_V0.xlsx,Annual_market_report_2025_V0.xlsx,Annual_report_2026_V0_markets_RRD.xlsx"`
	GasFiles         []string `yaml:"gas_files" envconfig:"GAS_FILES" default:"Annual_market_report_gas_2024_V0.xlsx,Annual_market_report_gas_2025_V0.xlsx,Annual_market_report_gas_2026_V0.xlsx"`
}

// Load loads configuration from environment variables and an optional config
// file, env taking precedence over file values.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("OTE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile := findConfigFile(); configFile != "" {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence for
// any field the environment actually set; envconfig leaves defaults in place
// for unset fields, so the file only fills slots still at their default).
func mergeConfigs(fileCfg, envCfg Config) Config {
	def := Default()

	if envCfg.Paths.DataDir == def.Paths.DataDir && fileCfg.Paths.DataDir != "" {
		envCfg.Paths.DataDir = fileCfg.Paths.DataDir
	}
	if envCfg.Paths.OutputDir == def.Paths.OutputDir && fileCfg.Paths.OutputDir != "" {
		envCfg.Paths.OutputDir = fileCfg.Paths.OutputDir
	}
	if envCfg.Paths.LogsDir == def.Paths.LogsDir && fileCfg.Paths.LogsDir != "" {
		envCfg.Paths.LogsDir = fileCfg.Paths.LogsDir
	}
	if envCfg.Logging.Level == def.Logging.Level && fileCfg.Logging.Level != "" {
		envCfg.Logging.Level = fileCfg.Logging.Level
	}
	if envCfg.Logging.FilePath == def.Logging.FilePath && fileCfg.Logging.FilePath != "" {
		envCfg.Logging.FilePath = fileCfg.Logging.FilePath
	}
	if len(fileCfg.Markets.ElectricityFiles) > 0 {
		envCfg.Markets.ElectricityFiles = fileCfg.Markets.ElectricityFiles
	}
	if len(fileCfg.Markets.GasFiles) > 0 {
		envCfg.Markets.GasFiles = fileCfg.Markets.GasFiles
	}

	return envCfg
}

// validate checks the configuration for unusable values.
func (c *Config) validate() error {
	if c.Paths.DataDir == "" {
		return fmt.Errorf("data directory must not be empty")
	}
	if c.Paths.OutputDir == "" {
		return fmt.Errorf("output directory must not be empty")
	}
	if len(c.Markets.ElectricityFiles) == 0 && len(c.Markets.GasFiles) == 0 {
		return fmt.Errorf("at least one workbook must be configured")
	}

	if c.Logging.Format != "json" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output != "both" && c.Logging.Output != "file" && c.Logging.Output != "console" {
		c.Logging.Output = "both"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = filepath.Join(c.Paths.LogsDir, "extractor.log")
	}

	return nil
}

// findConfigFile returns the path of the first config file found in the
// common locations, or "" to run on env vars and defaults only.
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			DataDir:   "ote_data",
			OutputDir: "extracted_data",
			LogsDir:   "logs",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "both",
			FilePath: "logs/extractor.log",
		},
		Markets: MarketsConfig{
			ElectricityFiles: []string{
				"Annual_market_report_2024_V0.xlsx",
				"Annual_market_report_2025_V0.xlsx",
				"Annual_report_2026_V0_markets_RRD.xlsx",
			},
			GasFiles: []string{
				"Annual_market_report_gas_2024_V0.xlsx",
				"Annual_market_report_gas_2025_V0.xlsx",
				"Annual_market_report_gas_2026_V0.xlsx",
			},
		},
	}
}
