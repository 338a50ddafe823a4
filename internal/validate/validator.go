// Package validate evaluates parsed records for completeness. Rows that fail
// any check are flagged for manual review rather than dropped: the report
// optimizes for surfacing uncertain data, not hiding it.
package validate

import (
	"strings"

	"github.com/andrei-lupu/cf-extract/constants"
	"github.com/andrei-lupu/cf-extract/internal/parser"
)

// Validate checks one record and returns its status plus a comma-joined
// reason list. Pure function; checks are independent and all accumulate.
func Validate(r *parser.Record) (status, message string) {
	var issues []string

	if r.CFNumber == "" || r.CFNumber == constants.NotDetected {
		issues = append(issues, "Lipsa Numar CF")
	}

	switch {
	case r.Owners == "" || r.Owners == constants.NotDetected:
		issues = append(issues, "Lipsa Proprietar")
	case len(r.Owners) < 3:
		issues = append(issues, "Nume Proprietar Suspect")
	}

	if r.MeasuredSurface == "" || r.MeasuredSurface == "0" {
		if r.DocumentSurface == "" {
			issues = append(issues, "Lipsa Suprafata Teren")
		}
	}

	if r.ConstructionID != "" {
		if r.BuiltSurface == "" || r.BuiltSurface == "0" {
			issues = append(issues, "Lipsa Suprafata Constructie")
		}
		if r.Destination == "" {
			issues = append(issues, "Lipsa Destinatie")
		}
	}

	if len(issues) == 0 {
		return constants.ValidationOK, ""
	}
	return constants.ValidationReview, strings.Join(issues, ", ")
}
