package parser

import (
	"regexp"
	"strings"
)

// diacriticFold maps both Romanian diacritic families (cedilla and
// comma-below) onto plain ASCII so every downstream pattern is
// diacritic-insensitive.
var diacriticFold = strings.NewReplacer(
	"ţ", "t", "ț", "t", "ş", "s", "ș", "s",
	"ă", "a", "î", "i", "â", "a",
	"Ţ", "T", "Ț", "T", "Ş", "S", "Ș", "S",
	"Ă", "A", "Î", "I", "Â", "A",
)

var reIntraSpace = regexp.MustCompile(`[ \t]+`)

// Clean standardizes raw document text for regex matching: strips carriage
// returns, folds diacritics to ASCII and collapses runs of spaces/tabs.
// Line structure is preserved; several patterns anchor on newlines.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "\r", "")
	text = diacriticFold.Replace(text)
	return reIntraSpace.ReplaceAllString(text, " ")
}
