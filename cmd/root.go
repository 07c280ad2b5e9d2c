// =============================================================================
// S&P Global Statutory Filing Parser - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that the 'process' and 'version' commands attach to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (spglobal)
//   ├── processCmd (spglobal process)
//   └── versionCmd (spglobal version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "spglobal",
	Short: "Consolidate S&P Global statutory filing exports into one workbook",
	Long: `spglobal ingests a directory of XML statutory filing exports, detects
whether each worksheet is a Page 19 (Exhibit of Premiums and Losses) or a
Schedule P - Part 1 report, extracts the normalized records from each, and
consolidates everything into a single two-sheet XLSX workbook.

Extraction anchors on the stable numeric column codes printed in the report
headers rather than on display text, so it survives label changes between
filing vintages. No single file's failure aborts a batch: unreadable,
unrecognized, and malformed inputs are skipped, logged, and counted in the
final summary.

Example Usage:
  spglobal process                     # Process all XML files in the input directory
  spglobal process --config ./my.yaml  # Use a custom configuration file
  spglobal process --watch             # Keep running and re-process on new files`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}
