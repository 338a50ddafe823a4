package textacq

import "strings"

// ocrReplacer fixes common tesseract misreads in Romanian text: the cedilla
// diacritic family is collapsed into the comma-below family, and a pipe
// recognized in place of a capital I is corrected.
var ocrReplacer = strings.NewReplacer(
	"ţ", "ț",
	"ş", "ș",
	"Ţ", "Ț",
	"Ş", "Ș",
	"|", "I",
)

// NormalizeRomanian canonicalizes OCR output before parsing.
func NormalizeRomanian(s string) string {
	if s == "" {
		return s
	}
	return ocrReplacer.Replace(s)
}
