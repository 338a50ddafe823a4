package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reUnfenced = regexp.MustCompile(`(?i)Teren\s+neimprejmuit`)
	reFenced   = regexp.MustCompile(`(?i)Teren\s+imprejmuit`)

	// Generic terrain note: free text after the A1 row values, ending at the
	// address or the next section marker.
	reObsPrefix = regexp.MustCompile(`A1[^\w\n]+[0-9\-/]+[^\w\n]+[\d.]+[^\w\n]+`)
	reObsEnd    = regexp.MustCompile(`\s+Adresa|\s+Jud\.|\s+B\.|\s+Partea`)

	reMasurata = regexp.MustCompile(`(?i)Masurata:?\s*(\d+[.\s]?\d*)`)
	reDinActe  = regexp.MustCompile(`(?i)Din\s+acte:?\s*(\d+[.\s]?\d*)`)

	// Table-layout fallbacks for the measured surface.
	reSurfSameLine  = regexp.MustCompile(`A1[^\d\n]+[0-9\-/]+[^\d\n]+(\d{1,3}(?:\.\d{3})*)`)
	reSurfMultiLine = regexp.MustCompile(`A1\s+(?:CAD:?\s*)?[\d\-/]+[\s\-]*\n[\d/]+\s+(\d{2,6})\s*\n`)
	reA1Section     = regexp.MustCompile(`A1\s`)
	reBPartStart    = regexp.MustCompile(`B\.\s*Partea`)
	reLooseNumber   = regexp.MustCompile(`\s(\d{2,6})\s`)
)

// stripThousands removes dot/space thousand separators ("1.234" -> "1234").
func stripThousands(s string) string {
	s = strings.ReplaceAll(s, ".", "")
	return strings.ReplaceAll(s, " ", "")
}

var measuredSurfaceChain = []strategy{
	{"labeled", func(text string) string {
		if m := reMasurata.FindStringSubmatch(text); m != nil {
			return stripThousands(m[1])
		}
		return ""
	}},
	{"table-same-line", func(text string) string {
		if m := reSurfSameLine.FindStringSubmatch(text); m != nil {
			return strings.ReplaceAll(m[1], ".", "")
		}
		return ""
	}},
	{"table-multi-line", func(text string) string {
		// Wrapped cadastral number: "A1 CAD: 6886-\n5094/1 965\n" -> 965.
		if m := reSurfMultiLine.FindStringSubmatch(text); m != nil {
			return m[1]
		}
		return ""
	}},
	{"range-scan", func(text string) string {
		// Last resort: any number in the parcel section that is plausibly a
		// surface. The range floor rejects row indexes, the ceiling rejects
		// request numbers, and 1900-2030 would be caught as years by the
		// other chains first.
		section, ok := sliceBetween(text, reA1Section, reBPartStart)
		if !ok {
			return ""
		}
		for _, m := range reLooseNumber.FindAllStringSubmatch(section, -1) {
			if n, err := strconv.Atoi(m[1]); err == nil && n >= 10 && n <= 500000 {
				return m[1]
			}
		}
		return ""
	}},
}

// extractParcelData reads the measured surface, the surface per legal
// documents, and the free-text terrain observation.
func extractParcelData(text string) (measured, docSurface, obs string) {
	switch {
	case reUnfenced.MatchString(text):
		obs = "Teren neimprejmuit"
	case reFenced.MatchString(text):
		obs = "Teren imprejmuit"
	default:
		if span, ok := sliceBetween(text, reObsPrefix, reObsEnd); ok {
			if loc := reObsPrefix.FindStringIndex(span); loc != nil {
				raw := strings.TrimSpace(span[loc[1]:])
				raw = strings.ReplaceAll(raw, ";", "")
				raw = strings.ReplaceAll(raw, `"`, "")
				if len(raw) < 50 { // longer captures are table noise
					obs = raw
				}
			}
		}
	}

	measured, _ = runChain(measuredSurfaceChain, text)

	if m := reDinActe.FindStringSubmatch(text); m != nil {
		docSurface = stripThousands(m[1])
	}

	return measured, docSurface, obs
}
