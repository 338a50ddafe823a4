package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/andrei-lupu/cf-extract/constants"
)

var (
	reCFNumber  = regexp.MustCompile(`(?i)CARTE\s+FUNCIARA\s+NR\.?\s+(\d+)`)
	reUAT       = regexp.MustCompile(`(?:UAT|Comuna|Oras|Municipiu)[:\s]+([A-Z][a-zA-Z\s\-]+)`)
	reLocality  = regexp.MustCompile(`Loc\.\s*([A-Z][a-zA-Z\s\-]+)`)
	reCadA1     = regexp.MustCompile(`\bA1[^\d\n]*([0-9\-/]+)`)
	reCadLabel  = regexp.MustCompile(`(?i)Nr\.?\s*(?:cadastral|topografic).*?(\d+[0-9\-/]*)`)
	reRequest   = regexp.MustCompile(`(?i)Cerere\s+nr\.\s*(\d+)`)
	reIssueDate = regexp.MustCompile(`Ziua\s+(\d{2})\s+Luna\s+(\d{2})\s+Anul\s+(\d{4})`)
)

// extractCFNumber reads the land-book number from the document header.
func extractCFNumber(text string) string {
	if m := reCFNumber.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return constants.NotDetected
}

// extractUATLocality reads the administrative unit and locality labels.
func extractUATLocality(text string) (uat, locality string) {
	if m := reUAT.FindStringSubmatch(text); m != nil {
		uat = strings.TrimSpace(m[1])
	}
	if m := reLocality.FindStringSubmatch(text); m != nil {
		locality = strings.TrimSpace(m[1])
	}
	return uat, locality
}

var cadastralChain = []strategy{
	{"a1-row", func(text string) string {
		if m := reCadA1.FindStringSubmatch(text); m != nil {
			return m[1]
		}
		return ""
	}},
	{"label", func(text string) string {
		// Generic "Nr. cadastral/topografic" label; historical references
		// qualified as "vechi" are not the current number.
		if m := reCadLabel.FindStringSubmatch(text); m != nil {
			if !strings.Contains(strings.ToLower(m[0]), "vechi") {
				return m[1]
			}
		}
		return ""
	}},
}

func extractCadastralNumber(text string) string {
	if v, _ := runChain(cadastralChain, text); v != "" {
		return v
	}
	return constants.NotDetected
}

func extractRequestNumber(text string) string {
	if m := reRequest.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// extractIssueDate renders the "Ziua DD Luna MM Anul YYYY" stamp as DD/MM/YYYY.
func extractIssueDate(text string) string {
	if m := reIssueDate.FindStringSubmatch(text); m != nil {
		return fmt.Sprintf("%s/%s/%s", m[1], m[2], m[3])
	}
	return ""
}
