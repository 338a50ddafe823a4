package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inlineConstructionDoc = `A. Partea I. Descrierea imobilului
A1 CAD: 6886 965 Teren neimprejmuit
A1.1 6886-C1 Casa de locuit din caramida, S. construita la sol: 120 mp, an 1998, regim P+1
A1.2 6886-C2 Anexa gospodareasca, S. construita la sol: 35 mp
B. Partea II. Proprietari si acte
B1 Intabulare, drept de PROPRIETATE, cota actuala 1/1
1) POPESCU ION
C. Partea III. SARCINI
NU SUNT
`

func TestInlineConstructions(t *testing.T) {
	buildings := extractConstructions(Clean(inlineConstructionDoc))
	require.Len(t, buildings, 2)

	c1 := buildings[0]
	assert.Equal(t, "C1", c1.ID)
	assert.Equal(t, "Locuinta", c1.Destination)
	assert.Equal(t, "120", c1.BuiltSurface)
	assert.Equal(t, "1998", c1.Year)
	assert.Equal(t, "Caramida", c1.Material)
	assert.Equal(t, "P+1", c1.FloorNotes)

	c2 := buildings[1]
	assert.Equal(t, "C2", c2.ID)
	assert.Equal(t, "Anexa", c2.Destination)
	assert.Equal(t, "35", c2.BuiltSurface)
}

func TestParseFansOutPerConstruction(t *testing.T) {
	records := Parse("6886.pdf", inlineConstructionDoc)
	require.Len(t, records, 2)

	// Shared parcel and owner fields, per-building construction fields.
	assert.Equal(t, "6886-C1", records[0].CadastralNumber)
	assert.Equal(t, "6886-C2", records[1].CadastralNumber)
	assert.Equal(t, "POPESCU ION", records[0].Owners)
	assert.Equal(t, records[0].Owners, records[1].Owners)
	assert.Equal(t, "965", records[0].MeasuredSurface)
	assert.Equal(t, "Locuinta", records[0].Destination)
	assert.Equal(t, "Anexa", records[1].Destination)
}

func TestSectionConstructions(t *testing.T) {
	doc := `Date referitoare la constructii
6886-C1 Locuinta S. construita: 85 Anul construirii 2005
6886-C2 garaj din metal
Lungime Segmente
`
	buildings := extractConstructions(Clean(doc))
	require.Len(t, buildings, 2)

	assert.Equal(t, "C1", buildings[0].ID)
	assert.Equal(t, "Locuinta", buildings[0].Destination)
	assert.Equal(t, "85", buildings[0].BuiltSurface)
	assert.Equal(t, "2005", buildings[0].Year)

	assert.Equal(t, "C2", buildings[1].ID)
	assert.Equal(t, "Garaj", buildings[1].Destination)
	assert.Equal(t, "Metal", buildings[1].Material)
}

func TestDestinationTableOrderIsPriority(t *testing.T) {
	// Table rank decides, not text position: garaj wins even when anexa
	// appears first in the block.
	assert.Equal(t, "Garaj", classifyDestination("anexa gospodareasca si garaj", inlineDestTable))
	assert.Equal(t, "Garaj", classifyDestination("garaj si anexa", sectionDestTable))
	assert.Equal(t, "Anexa", classifyDestination("anexa gospodareasca", inlineDestTable))
	assert.Equal(t, "Cladire", classifyDestination("fara cuvinte cheie", inlineDestTable))
}

func TestBackfillSurfacesFromPartII(t *testing.T) {
	doc := `A. Partea I
A1.1 100-C1 Locuinta
B. Partea II
B1 Intabulare, constructia C1 in suprafata construita de 72 mp
C. Partea III
`
	buildings := extractConstructions(Clean(doc))
	require.Len(t, buildings, 1)
	assert.Equal(t, "72", buildings[0].BuiltSurface)
}

func TestSurfaceInRangeRejectsYears(t *testing.T) {
	assert.Equal(t, "", surfaceInRange("2005"))
	assert.Equal(t, "", surfaceInRange("5"))
	assert.Equal(t, "", surfaceInRange("60000"))
	assert.Equal(t, "742", surfaceInRange("742"))
}

func TestRoundNum(t *testing.T) {
	assert.Equal(t, "121", roundNum("120,5"))
	assert.Equal(t, "120", roundNum("120.4"))
	assert.Equal(t, "", roundNum("abc"))
}
