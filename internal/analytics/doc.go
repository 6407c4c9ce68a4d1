// Package analytics implements the flood-control project reports: regional
// efficiency, contractor performance ranking, annual overrun trend and the
// summary statistics.
//
// Every generator is a pure function of its input. Groups are keyed by typed
// structs and accumulated in first-seen order, so repeated calls on the same
// records give identical output and input slices are never modified.
//
// Generator.GenerateAll runs the four generators concurrently with errgroup.
package analytics
