// =============================================================================
// S&P Global Statutory Filing Parser - File Manager Utility
// =============================================================================
//
// This module provides the file-handling glue around the core pipeline:
//   - Input discovery (deterministic ordering)
//   - Output file naming
//   - Archival of processed inputs
//   - Error log generation
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DiscoverInputFiles lists the .xml files in the input directory, sorted
// lexicographically by name. The sort is what makes batch output
// reproducible: filenames carry no semantic meaning, but their order fixes
// the deduplication fold order.
func DiscoverInputFiles(inputDir string) ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".xml") {
			files = append(files, filepath.Join(inputDir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// RenderOutputName expands the output filename template. Supported
// placeholders: {timestamp} and {uuid}.
func RenderOutputName(format string) string {
	name := format
	name = strings.ReplaceAll(name, "{timestamp}", time.Now().Format("20060102_150405"))
	name = strings.ReplaceAll(name, "{uuid}", uuid.New().String())
	if filepath.Ext(name) != ".xlsx" {
		name += ".xlsx"
	}
	return name
}

// ArchiveFile moves a processed input into the archive directory.
func ArchiveFile(path, archiveDir string) error {
	target := filepath.Join(archiveDir, filepath.Base(path))
	if err := os.Rename(path, target); err != nil {
		return fmt.Errorf("failed to archive %s: %w", path, err)
	}
	return nil
}

// WriteErrorLog writes the collected failure lines to a timestamped log in
// the output directory and returns its path.
func WriteErrorLog(outputDir string, lines []string) (string, error) {
	name := fmt.Sprintf("errors_%s.log", time.Now().Format("20060102_150405"))
	path := filepath.Join(outputDir, name)

	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write error log: %w", err)
	}
	return path, nil
}
