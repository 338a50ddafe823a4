package constants

import "strings"

// Persisted artifact names, one set per output directory.
const (
	CheckpointFile = "checkpoint.json"
	ErrorsFile     = "errors.json"
	ProgressFile   = "progress.json"
	WorkbookFile   = "cadastral_data.xlsx"
)

// ResourceForkPrefix marks macOS AppleDouble files that shadow real PDFs.
const ResourceForkPrefix = "._"

// IsPDF reports whether name looks like an eligible input file.
func IsPDF(name string) bool {
	if strings.HasPrefix(name, ResourceForkPrefix) {
		return false
	}
	return strings.EqualFold(NormalizeExt(name), "pdf")
}

// NormalizeExt lowercases the extension of name and trims the dot.
func NormalizeExt(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}
