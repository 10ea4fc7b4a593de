package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// DefaultConfigFile is read by Load when present in the working directory
const DefaultConfigFile = "config.yaml"

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// EngineConfig represents pricing engine configuration
type EngineConfig struct {
	ExecutionMode string  `yaml:"execution_mode"` // auto, cpu, parallel
	Workers       int     `yaml:"workers"`        // 0 = one per CPU
	BatchSize     int     `yaml:"batch_size"`     // Max contracts per batch request
	DefaultSteps  int     `yaml:"default_steps"`  // Binomial steps when a request omits them
	DefaultPayout float64 `yaml:"default_payout"` // Binary payout when a request omits it
}

// CSVConfig represents CSV export configuration
type CSVConfig struct {
	FilenameFormat string `yaml:"filename_format"`
}

// DisplayConfig controls formatted values in API responses
type DisplayConfig struct {
	Precision int `yaml:"precision"`
}

// AuditConfig controls the valuation audit trail
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	File    string `yaml:"file"`
}

type Config struct {
	// Server settings
	Port string

	Logging LoggingConfig
	Engine  EngineConfig
	CSV     CSVConfig
	Display DisplayConfig
	Audit   AuditConfig
}

// YAMLConfig mirrors config.yaml. Zero values leave the env/default value alone.
type YAMLConfig struct {
	Port    string        `yaml:"port"`
	Logging LoggingConfig `yaml:"logging"`
	Engine  EngineConfig  `yaml:"engine"`
	CSV     CSVConfig     `yaml:"csv"`
	Display DisplayConfig `yaml:"display"`
	Audit   *AuditConfig  `yaml:"audit"`
}

// Load reads env defaults and overlays config.yaml from the working directory
func Load() *Config {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom reads env defaults and overlays the given YAML file if it parses
func LoadFrom(path string) *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Logging: LoggingConfig{
			LogLevel: getEnv("LOG_LEVEL", "info"),
			LogFile:  getEnv("LOG_FILE", "greeks.log"),
		},
		Engine: EngineConfig{
			ExecutionMode: getEnv("ENGINE_EXECUTION_MODE", "auto"),
			Workers:       getEnvInt("ENGINE_WORKERS", 0),
			BatchSize:     getEnvInt("ENGINE_BATCH_SIZE", 1000),
			DefaultSteps:  getEnvInt("ENGINE_DEFAULT_STEPS", 200),
			DefaultPayout: getEnvFloat("ENGINE_DEFAULT_PAYOUT", 1.0),
		},
		CSV: CSVConfig{
			FilenameFormat: getEnv("CSV_FILENAME_FORMAT", "{time}_{style}_{count}contracts.csv"),
		},
		Display: DisplayConfig{
			Precision: getEnvInt("DISPLAY_PRECISION", 6),
		},
		Audit: AuditConfig{
			Enabled: getEnvBool("AUDIT_ENABLED", false),
			File:    getEnv("AUDIT_FILE", "audit.jsonl"),
		},
	}

	if yamlCfg := loadYAMLConfig(path); yamlCfg != nil {
		if yamlCfg.Port != "" {
			cfg.Port = yamlCfg.Port
		}

		if yamlCfg.Logging.LogLevel != "" {
			cfg.Logging.LogLevel = yamlCfg.Logging.LogLevel
		}
		if yamlCfg.Logging.LogFile != "" {
			cfg.Logging.LogFile = yamlCfg.Logging.LogFile
		}

		if yamlCfg.Engine.ExecutionMode != "" {
			cfg.Engine.ExecutionMode = yamlCfg.Engine.ExecutionMode
		}
		if yamlCfg.Engine.Workers > 0 {
			cfg.Engine.Workers = yamlCfg.Engine.Workers
		}
		if yamlCfg.Engine.BatchSize > 0 {
			cfg.Engine.BatchSize = yamlCfg.Engine.BatchSize
		}
		if yamlCfg.Engine.DefaultSteps > 0 {
			cfg.Engine.DefaultSteps = yamlCfg.Engine.DefaultSteps
		}
		if yamlCfg.Engine.DefaultPayout > 0 {
			cfg.Engine.DefaultPayout = yamlCfg.Engine.DefaultPayout
		}

		if yamlCfg.CSV.FilenameFormat != "" {
			cfg.CSV.FilenameFormat = yamlCfg.CSV.FilenameFormat
		}
		if yamlCfg.Display.Precision > 0 {
			cfg.Display.Precision = yamlCfg.Display.Precision
		}

		// audit section replaces the whole block so it can switch auditing off
		if yamlCfg.Audit != nil {
			cfg.Audit.Enabled = yamlCfg.Audit.Enabled
			if yamlCfg.Audit.File != "" {
				cfg.Audit.File = yamlCfg.Audit.File
			}
		}
	}

	// Sanity limits
	if cfg.Engine.DefaultSteps < 1 {
		cfg.Engine.DefaultSteps = 200
	}
	if cfg.Engine.BatchSize < 1 {
		cfg.Engine.BatchSize = 1000
	}
	if cfg.Display.Precision < 0 || cfg.Display.Precision > 12 {
		cfg.Display.Precision = 6
	}

	return cfg
}

func loadYAMLConfig(path string) *YAMLConfig {
	data, err := os.ReadFile(path)
	if err != nil {
		// No config file - env and defaults only
		return nil
	}

	var yamlCfg YAMLConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		// Could not parse - silently ignore like a missing file
		return nil
	}

	return &yamlCfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// FormatCSVFilename fills the CSV filename template
func FormatCSVFilename(format, style string, count int, now time.Time) string {
	result := format
	result = strings.ReplaceAll(result, "{time}", now.Format("2006-01-02_15-04-05"))
	result = strings.ReplaceAll(result, "{style}", style)
	result = strings.ReplaceAll(result, "{count}", strconv.Itoa(count))
	return result
}
