package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrei-lupu/cf-extract/constants"
	"github.com/andrei-lupu/cf-extract/internal/parser"
)

func validRecord() parser.Record {
	return parser.Record{
		CFNumber:        "12345",
		Owners:          "POPESCU ION",
		MeasuredSurface: "965",
	}
}

func TestValidateOK(t *testing.T) {
	r := validRecord()
	status, msg := Validate(&r)
	assert.Equal(t, constants.ValidationOK, status)
	assert.Empty(t, msg)
}

func TestValidateMissingCF(t *testing.T) {
	r := validRecord()
	r.CFNumber = constants.NotDetected
	status, msg := Validate(&r)
	assert.Equal(t, constants.ValidationReview, status)
	assert.Equal(t, "Lipsa Numar CF", msg)
}

func TestValidateOwnerIssues(t *testing.T) {
	r := validRecord()
	r.Owners = constants.NotDetected
	_, msg := Validate(&r)
	assert.Equal(t, "Lipsa Proprietar", msg)

	r = validRecord()
	r.Owners = "AB"
	_, msg = Validate(&r)
	assert.Equal(t, "Nume Proprietar Suspect", msg)
}

func TestValidateSurfaceFallsBackToDocument(t *testing.T) {
	// Document-stated surface covers for a missing measured one.
	r := validRecord()
	r.MeasuredSurface = ""
	r.DocumentSurface = "970"
	status, _ := Validate(&r)
	assert.Equal(t, constants.ValidationOK, status)

	r.DocumentSurface = ""
	_, msg := Validate(&r)
	assert.Equal(t, "Lipsa Suprafata Teren", msg)

	r.MeasuredSurface = "0"
	_, msg = Validate(&r)
	assert.Equal(t, "Lipsa Suprafata Teren", msg)
}

func TestValidateConstructionChecks(t *testing.T) {
	r := validRecord()
	r.ConstructionID = "C1"
	_, msg := Validate(&r)
	assert.Equal(t, "Lipsa Suprafata Constructie, Lipsa Destinatie", msg)

	r.BuiltSurface = "120"
	r.Destination = "Locuinta"
	status, _ := Validate(&r)
	assert.Equal(t, constants.ValidationOK, status)
}

func TestValidateIssuesAccumulate(t *testing.T) {
	r := parser.Record{}
	status, msg := Validate(&r)
	assert.Equal(t, constants.ValidationReview, status)
	assert.Equal(t, "Lipsa Numar CF, Lipsa Proprietar, Lipsa Suprafata Teren", msg)
}
