// Package config provides centralized configuration management for the
// flood-control reporting tool. It handles loading configuration from multiple
// sources, validation, and resolution of output file locations.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values (lowest priority)
//
// Command-line flags are applied by the caller after Load returns.
//
// # Environment Variables
//
// All environment variables follow the pattern FLOOD_<SECTION>_<FIELD>:
//
//	FLOOD_PATHS_INPUT_FILE=dpwh_flood_control_projects.csv
//	FLOOD_PATHS_OUTPUT_DIR=out
//	FLOOD_PIPELINE_START_YEAR=2021
//	FLOOD_PIPELINE_END_YEAR=2023
//	FLOOD_REPORTS_BASELINE_YEAR=2021
//	FLOOD_LOGGING_LEVEL=debug
//
// # Validation
//
// Load validates the merged configuration with go-playground/validator
// struct tags: log level and output are enumerations, the year window must
// satisfy EndYear >= StartYear, and report parameters must be positive.
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	paths := cfg.ResolvePaths()
//
// # Testing
//
// Use config.Default() for a configuration that does not depend on the
// environment or any file.
package config
