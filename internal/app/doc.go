// Package app wires configuration, logging, telemetry, the cleaning pipeline,
// the report generator and the exporter into one Application.
//
// # Lifecycle
//
//	1. Load configuration (defaults, YAML file, FLOOD_* environment)
//	2. Initialize logging and OpenTelemetry
//	3. LoadFile: validate the input path, load and clean the records
//	4. GenerateReports: build the reports, write the files, print a preview
//	5. Stop: flush telemetry and close the log file
//
// The loaded dataset lives on the Application between menu actions.
// GenerateReports before LoadFile is an EmptyInput error and writes nothing.
//
// # Usage
//
//	a, err := app.New(cfg)
//	if err != nil {
//	    return err
//	}
//	defer a.Stop(context.Background())
//	return a.RunMenu(ctx, os.Stdin)
package app
