// =============================================================================
// S&P Global Statutory Filing Parser - Main Entry Point
// =============================================================================
//
// This is the main entry point for the spglobal CLI. It initializes the
// Cobra CLI framework and delegates command execution to the cmd package.
//
// USAGE:
//   spglobal process    - Process all XML filing exports in the input directory
//   spglobal version    - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Core pipeline logic (loader, classifier, anchors,
//                  extractor, normalizer, aggregator, workbook writer)
//   - pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/jakemendlovic/SP-Global-Parsing/cmd"
)

// main simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
