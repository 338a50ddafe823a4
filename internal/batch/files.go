package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/andrei-lupu/cf-extract/constants"
)

// ListPDFs enumerates eligible input files in dir, sorted by name for
// deterministic batch ordering. macOS resource forks ("._*") are skipped
// silently; they shadow real PDFs on exFAT copies.
func ListPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !constants.IsPDF(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
