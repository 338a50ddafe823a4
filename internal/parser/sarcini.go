package parser

import (
	"regexp"
	"strings"
)

var (
	rePartIIIStart = regexp.MustCompile(`(?i)C\.\s*Partea\s+III`)
	rePartIIIEnd   = regexp.MustCompile(`Anexa|Certificat`)
	reBankLine     = regexp.MustCompile(`(?i)(?:Banca|BCR|BRD|CEC|Raiffeisen|ING)[^\n]*`)
)

// extractSarcini summarizes Part III: the literal no-encumbrance phrase
// short-circuits, otherwise mortgage (with holder when a bank line is
// present) and usufruct keywords accumulate.
func extractSarcini(text string) string {
	partIII, ok := sliceBetween(text, rePartIIIStart, rePartIIIEnd)
	if !ok {
		return ""
	}

	if strings.Contains(partIII, "NU SUNT") {
		return "NU SUNT"
	}

	var sarcini []string
	upper := strings.ToUpper(partIII)
	if strings.Contains(upper, "IPOTECA") {
		if bank := reBankLine.FindString(partIII); bank != "" {
			sarcini = append(sarcini, "Ipoteca: "+strings.TrimSpace(bank))
		} else {
			sarcini = append(sarcini, "Ipoteca")
		}
	}
	if strings.Contains(upper, "UZUFRUCT") {
		sarcini = append(sarcini, "Uzufruct")
	}

	return strings.Join(sarcini, "; ")
}
