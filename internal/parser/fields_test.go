package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrei-lupu/cf-extract/constants"
)

func TestExtractCFNumber(t *testing.T) {
	assert.Equal(t, "50712", extractCFNumber("EXTRAS DE CARTE FUNCIARA NR. 50712 Comuna X"))
	assert.Equal(t, "123", extractCFNumber("Carte Funciara Nr 123"))
	assert.Equal(t, constants.NotDetected, extractCFNumber("no header here"))
}

func TestExtractCadastralNumber(t *testing.T) {
	// A1 table row wins over the generic label.
	assert.Equal(t, "6886-5094/1", extractCadastralNumber("A1 CAD: 6886-5094/1 965"))
	assert.Equal(t, "456", extractCadastralNumber("Nr. cadastral 456"))
	assert.Equal(t, constants.NotDetected, extractCadastralNumber("nimic"))
}

func TestCadastralOldNumberIgnored(t *testing.T) {
	// "vechi" marks the historical number, not the current one.
	assert.Equal(t, constants.NotDetected, extractCadastralNumber("Nr. topografic vechi 123"))
}

func TestExtractUATLocality(t *testing.T) {
	uat, loc := extractUATLocality("Comuna Floresti, Jud. Cluj\nLoc. Luna de Sus, Jud. Cluj")
	assert.Equal(t, "Floresti", uat)
	assert.Equal(t, "Luna de Sus", loc)
}

func TestExtractIssueDate(t *testing.T) {
	assert.Equal(t, "03/11/2021", extractIssueDate("eliberat Ziua 03 Luna 11 Anul 2021"))
	assert.Empty(t, extractIssueDate("fara stampila"))
}

func TestExtractRequestNumber(t *testing.T) {
	assert.Equal(t, "88221", extractRequestNumber("inregistrat sub Cerere nr. 88221 din"))
	assert.Empty(t, extractRequestNumber("fara cerere"))
}
