package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains every resolved file location used by a run.
// This is the single source of truth for output file names.
type Paths struct {
	InputFile string
	OutputDir string
	LogsDir   string

	EfficiencyCSV string
	ContractorCSV string
	TrendCSV      string
	SummaryJSON   string
	WorkbookXLSX  string
}

// ResolvePaths joins the configured report names onto the output directory.
func (c *Config) ResolvePaths() *Paths {
	out := c.Paths.OutputDir
	if out == "" {
		out = DefaultOutputDir
	}

	logsDir := ""
	if c.Logging.Output != "console" && c.Logging.FilePath != "" {
		logsDir = filepath.Dir(c.Logging.FilePath)
	}

	return &Paths{
		InputFile:     c.Paths.InputFile,
		OutputDir:     out,
		LogsDir:       logsDir,
		EfficiencyCSV: filepath.Join(out, c.Paths.EfficiencyReport),
		ContractorCSV: filepath.Join(out, c.Paths.ContractorReport),
		TrendCSV:      filepath.Join(out, c.Paths.TrendReport),
		SummaryJSON:   filepath.Join(out, c.Paths.SummaryFile),
		WorkbookXLSX:  filepath.Join(out, c.Paths.WorkbookFile),
	}
}

// EnsureDirectories creates the output and log directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	logger := slog.Default()

	for _, dir := range []string{p.OutputDir, p.LogsDir} {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		logger.Debug("Ensured directory exists", slog.String("directory", dir))
	}

	return nil
}

// ReportFiles lists the files a generate run writes, workbook excluded.
func (p *Paths) ReportFiles() []string {
	return []string{p.EfficiencyCSV, p.ContractorCSV, p.TrendCSV, p.SummaryJSON}
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs the resolved locations for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Debug("Path resolution summary",
		slog.String("input", p.InputFile),
		slog.String("output_dir", p.OutputDir),
		slog.Group("report_files",
			slog.String("efficiency", p.EfficiencyCSV),
			slog.String("contractor", p.ContractorCSV),
			slog.String("trend", p.TrendCSV),
			slog.String("summary", p.SummaryJSON),
			slog.String("workbook", p.WorkbookXLSX),
		))
}
