package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jdsia/CSADPRG-MCO2/internal/app"
	"github.com/jdsia/CSADPRG-MCO2/internal/config"
	"github.com/jdsia/CSADPRG-MCO2/pkg/contracts"
)

type rootOptions struct {
	configFile string
	input      string
	outputDir  string
	startYear  int
	endYear    int
	baseline   int
	workbook   bool
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Flood-control project analytics",
		Long: `floodreport loads a flood-control project dataset, cleans it and writes
three reports (regional efficiency, contractor ranking, annual overrun trend)
plus a summary file.

Without a subcommand it starts the interactive menu.`,
		Version:       contracts.GetFullVersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app.Application) error {
				return a.RunMenu(ctx, cmd.InOrStdin())
			})
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default: ./floodreport.yaml or configs/floodreport.yaml)")
	flags.StringVarP(&opts.input, "input", "i", "", "input CSV or XLSX file")
	flags.StringVarP(&opts.outputDir, "out", "o", "", "output directory for the report files")
	flags.IntVar(&opts.startYear, "start-year", 0, "first FundingYear to include")
	flags.IntVar(&opts.endYear, "end-year", 0, "last FundingYear to include")
	flags.IntVar(&opts.baseline, "baseline-year", 0, "baseline year of the YoY column")
	flags.BoolVar(&opts.workbook, "workbook", false, "also write reports.xlsx")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(newRunCmd(opts))
	return cmd
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Load the input file and generate every report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app.Application) error {
				return a.Run(ctx)
			})
		},
	}
}

func withApp(cmd *cobra.Command, opts *rootOptions, fn func(context.Context, *app.Application) error) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	a, err := app.New(cfg, app.WithOutput(cmd.OutOrStdout()))
	if err != nil {
		return err
	}
	defer func() {
		if stopErr := a.Stop(context.Background()); stopErr != nil {
			fmt.Fprintln(os.Stderr, stopErr)
		}
	}()

	return fn(cmd.Context(), a)
}

// loadConfig reads the config file and environment, then applies the flags
// that were set explicitly on the command line.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Paths.InputFile = opts.input
	}
	if flags.Changed("out") {
		cfg.Paths.OutputDir = opts.outputDir
	}
	if flags.Changed("start-year") {
		cfg.Pipeline.StartYear = opts.startYear
	}
	if flags.Changed("end-year") {
		cfg.Pipeline.EndYear = opts.endYear
	}
	if flags.Changed("baseline-year") {
		cfg.Reports.BaselineYear = opts.baseline
	}
	if flags.Changed("workbook") {
		cfg.Reports.WriteWorkbook = opts.workbook
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
