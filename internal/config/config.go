package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix namespaces every environment variable read by Load, e.g.
// FLOOD_PIPELINE_START_YEAR or FLOOD_REPORTS_BASELINE_YEAR.
const EnvPrefix = "FLOOD"

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Pipeline  PipelineConfig  `yaml:"pipeline" envconfig:"PIPELINE"`
	Reports   ReportsConfig   `yaml:"reports" envconfig:"REPORTS"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// PathsConfig contains input and output locations
type PathsConfig struct {
	InputFile        string `yaml:"input_file" envconfig:"INPUT_FILE" validate:"required"`
	OutputDir        string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	EfficiencyReport string `yaml:"efficiency_report" envconfig:"EFFICIENCY_REPORT" validate:"required"`
	ContractorReport string `yaml:"contractor_report" envconfig:"CONTRACTOR_REPORT" validate:"required"`
	TrendReport      string `yaml:"trend_report" envconfig:"TREND_REPORT" validate:"required"`
	SummaryFile      string `yaml:"summary_file" envconfig:"SUMMARY_FILE" validate:"required"`
	WorkbookFile     string `yaml:"workbook_file" envconfig:"WORKBOOK_FILE" validate:"required"`
}

// PipelineConfig controls record filtering
type PipelineConfig struct {
	StartYear int `yaml:"start_year" envconfig:"START_YEAR" validate:"gt=0"`
	EndYear   int `yaml:"end_year" envconfig:"END_YEAR" validate:"gtefield=StartYear"`
}

// ReportsConfig holds the report generation parameters
type ReportsConfig struct {
	DelayThresholdDays         int     `yaml:"delay_threshold_days" envconfig:"DELAY_THRESHOLD_DAYS" validate:"gte=0"`
	ReliabilityDelayNormalizer float64 `yaml:"reliability_delay_normalizer" envconfig:"RELIABILITY_DELAY_NORMALIZER" validate:"gt=0"`
	MinContractorProjects      int     `yaml:"min_contractor_projects" envconfig:"MIN_CONTRACTOR_PROJECTS" validate:"gte=1"`
	ContractorTopN             int     `yaml:"contractor_top_n" envconfig:"CONTRACTOR_TOP_N" validate:"gte=1"`
	HighRiskThreshold          float64 `yaml:"high_risk_threshold" envconfig:"HIGH_RISK_THRESHOLD"`
	BaselineYear               int     `yaml:"baseline_year" envconfig:"BASELINE_YEAR" validate:"gt=0"`
	PreviewRows                int     `yaml:"preview_rows" envconfig:"PREVIEW_ROWS" validate:"gte=0"`
	WriteWorkbook              bool    `yaml:"write_workbook" envconfig:"WRITE_WORKBOOK"`
}

// TelemetryConfig controls tracing and metrics export
type TelemetryConfig struct {
	TraceExporter   string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=stdout none"`
	MetricsEnabled  bool   `yaml:"metrics_enabled" envconfig:"METRICS_ENABLED"`
	MetricsTextfile string `yaml:"metrics_textfile" envconfig:"METRICS_TEXTFILE"`
}

// Load builds the configuration from defaults, an optional YAML file and
// the environment, in increasing order of precedence. An empty path searches
// the usual locations; an explicit path that does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	configFile := path
	if configFile == "" {
		configFile = getConfigFilePath()
	} else if _, err := os.Stat(configFile); err != nil {
		return nil, fmt.Errorf("config file %s: %w", configFile, err)
	}

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Environment overrides only the variables that are actually set
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays YAML values onto cfg. Keys missing from the file keep
// their current value.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

var validate = validator.New()

// Validate checks the configuration against its struct constraints
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"floodreport.yaml",
		"configs/floodreport.yaml",
		"../configs/floodreport.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Paths: PathsConfig{
			InputFile:        DefaultInputFile,
			OutputDir:        DefaultOutputDir,
			EfficiencyReport: EfficiencyReportFile,
			ContractorReport: ContractorReportFile,
			TrendReport:      TrendReportFile,
			SummaryFile:      SummaryFile,
			WorkbookFile:     WorkbookFile,
		},
		Pipeline: PipelineConfig{
			StartYear: DefaultStartYear,
			EndYear:   DefaultEndYear,
		},
		Reports: ReportsConfig{
			DelayThresholdDays:         DefaultDelayThresholdDays,
			ReliabilityDelayNormalizer: DefaultReliabilityDelayNormalizer,
			MinContractorProjects:      DefaultMinContractorProjects,
			ContractorTopN:             DefaultContractorTopN,
			HighRiskThreshold:          DefaultHighRiskThreshold,
			BaselineYear:               DefaultBaselineYear,
			PreviewRows:                DefaultPreviewRows,
			WriteWorkbook:              false,
		},
		Telemetry: TelemetryConfig{
			TraceExporter:  "none",
			MetricsEnabled: true,
		},
	}
}
