// Package dataprocessing turns raw flood-control project rows into the
// canonical records consumed by the report generators.
//
// # Architecture
//
// The package is organized into the loader and four pure stages:
//
// 1. Load: reads CSV or XLSX input into RawRecords keyed by header name
// 2. Validate: drops malformed records and counts them
// 3. FilterByYear: keeps the inclusive FundingYear window
// 4. DeriveFields: computes CostSavings and CompletionDelayDays
// 5. Normalize: builds typed CleanedRecords
//
// Pipeline.Process composes stages 2 to 5 in that order and adds logging,
// tracing and metrics around each stage.
//
// # Usage
//
//	p := dataprocessing.NewPipeline(logger, dataprocessing.WithYearRange(2021, 2023))
//	result, err := p.LoadAndProcess(ctx, "dpwh_flood_control_projects.csv")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(len(result.Records), result.Invalid)
//
// # Data Flow
//
//	CSV/XLSX → RawRecord → ValidatedRecord → EnrichedRecord → CleanedRecord
//
// # Error Handling
//
// Malformed records are never errors to the caller: they are excluded and
// counted in ProcessResult.Invalid. Loader failures are returned as
// STORAGE or PARSING AppErrors.
package dataprocessing
