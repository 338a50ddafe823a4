package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrei-lupu/cf-extract/constants"
)

func TestOwnerLatestEntryWins(t *testing.T) {
	text := `B. Partea II. Proprietari si acte
10001 / 01/01/2005
B1 Intabulare, drept de PROPRIETATE, dobandit prin Lege, cota actuala 1/1
1) IONESCU VASILE
Radiata prin incheierea nr. 200
20002 / 05/05/2010
B2 Intabulare, drept de PROPRIETATE, dobandit prin Cumparare, cota actuala 1/1
1) POPESCU MARIA
C. Partea III. SARCINI
`
	d := extractOwnerDetails(text)

	// B1 is cancelled; B2 carries the current owner.
	assert.Equal(t, "POPESCU MARIA", d.Owners)
	assert.Equal(t, "1/1", d.Share)

	// Cancelled entries leave the history too.
	assert.Equal(t, "2010-05-05: POPESCU MARIA", d.History)
}

func TestOwnerHistorySkipsCancelledKeepsTransferred(t *testing.T) {
	text := `B. Partea II. Proprietari si acte
10001 / 01/01/2005
B1 Intabulare, drept de PROPRIETATE, cota actuala 0/1
1) PRIMUL PROPRIETAR
20002 / 05/05/2010
B2 Intabulare, drept de PROPRIETATE, cota actuala 1/1
1) INTERMEDIAR VANDUT
Radiata prin incheierea nr. 333
30003 / 09/09/2015
B3 Intabulare, drept de PROPRIETATE, cota actuala 1/1
1) ACTUAL TITULAR
C. Partea III. SARCINI
`
	d := extractOwnerDetails(text)

	assert.Equal(t, "ACTUAL TITULAR", d.Owners)

	// The cancelled middle entry drops out; the transferred-out first entry
	// stays: its 0/1 share marks a past owner, not an invalid block.
	assert.Equal(t, "2005-01-01: PRIMUL PROPRIETAR | 2015-09-09: ACTUAL TITULAR", d.History)
}

func TestOwnerSkipsTransferredOutShare(t *testing.T) {
	text := `B. Partea II. Proprietari si acte
B1 Intabulare, drept de PROPRIETATE, cota actuala 0/1
1) VANZATOR GHEORGHE
B2 Intabulare, drept de PROPRIETATE, cota actuala 1/2
1) CUMPARATOR ANDREI
C. Partea III
`
	d := extractOwnerDetails(text)
	assert.Equal(t, "CUMPARATOR ANDREI", d.Owners)
	assert.Equal(t, "1/2", d.Share)
}

func TestOwnerSkipsNoteAndServitudeBlocks(t *testing.T) {
	text := `B. Partea II. Proprietari si acte
B1 se noteaza respingerea cererii
B2 Intabulare, drept de SERVITUTE de trecere
1) VECINUL NICOLAE
B3 Intabulare, drept de PROPRIETATE, cota actuala 1/1
1) TITULAR MIHAI
C. Partea III
`
	d := extractOwnerDetails(text)
	assert.Equal(t, "TITULAR MIHAI", d.Owners)
}

func TestOwnerJoinCapsAtThree(t *testing.T) {
	text := `B. Partea II. Proprietari si acte
B1 Intabulare, drept de PROPRIETATE, cota actuala 1/1
1) POP ANA
2) POP DAN
3) POP ELENA
4) POP FLORIN
C. Partea III
`
	d := extractOwnerDetails(text)
	assert.Equal(t, "POP ANA & POP DAN & POP ELENA", d.Owners)
}

func TestOwnerQualifierStripped(t *testing.T) {
	text := `B. Partea II. Proprietari si acte
B1 Intabulare, drept de PROPRIETATE, cota actuala 1/1
1) MARINESCU RADU, casatorit cu Marinescu Ioana, bun comun
C. Partea III
`
	d := extractOwnerDetails(text)
	assert.Equal(t, "MARINESCU RADU", d.Owners)
}

func TestOwnerMissingSectionSentinel(t *testing.T) {
	d := extractOwnerDetails("document with no ownership section at all")
	assert.Equal(t, constants.NoOwnerSection, d.Owners)
	assert.Empty(t, d.Share)
}

func TestOwnerUnidentifiedSentinel(t *testing.T) {
	text := `B. Partea II. Proprietari si acte
B1 Intabulare, PROPRIETAR NEIDENTIFICAT, in baza legii
C. Partea III
`
	d := extractOwnerDetails(text)
	assert.Equal(t, "Proprietar neidentificat", d.Owners)
	assert.Equal(t, "1/1", d.Share)
	assert.Equal(t, "Lege", d.AcquisitionMode)
}

func TestOwnerFallbackStateEntity(t *testing.T) {
	text := `B. Partea II. Proprietari si acte
B1 Intabulare, drept de PROPRIETATE
STATUL ROMAN in administrarea consiliului
C. Partea III
`
	d := extractOwnerDetails(text)
	assert.Equal(t, "STATUL ROMAN", d.Owners)
}

func TestOwnerNotDetectedWhenNothingMatches(t *testing.T) {
	text := `B. Partea II. Proprietari si acte
pozitii transcrise din vechiul registru
C. Partea III
`
	d := extractOwnerDetails(text)
	assert.Equal(t, constants.NotDetected, d.Owners)
}

func TestAcquisitionModePriority(t *testing.T) {
	// "vanzare" outranks "lege" when both appear.
	assert.Equal(t, "Cumparare", acquisitionMode("dobandit prin vanzare, conform legii"))
	assert.Equal(t, "Mostenire", acquisitionMode("certificat de mostenire"))
	assert.Equal(t, "Lege", acquisitionMode("dobandit prin lege"))
	assert.Equal(t, "", acquisitionMode("dobandit altfel"))
}
