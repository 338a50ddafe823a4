package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeasuredSurfaceLabeled(t *testing.T) {
	m, doc, _ := extractParcelData("Suprafata Masurata: 1.234 Din acte: 1.250")
	assert.Equal(t, "1234", m)
	assert.Equal(t, "1250", doc)
}

func TestMeasuredSurfaceTableSameLine(t *testing.T) {
	m, _, _ := extractParcelData("A1 CAD: 6886 965 Curti constructii")
	assert.Equal(t, "965", m)
}

func TestMeasuredSurfaceWrappedCadastral(t *testing.T) {
	// The cadastral number wraps onto the next line, surface follows it.
	m, _, _ := extractParcelData("A1 CAD: 6886-\n5094/1 965\nTeren")
	assert.Equal(t, "965", m)
}

func TestMeasuredSurfaceRangeScan(t *testing.T) {
	m, _, _ := extractParcelData("A1 top: nedef\nintravilan 742 arabil\nB. Partea II")
	assert.Equal(t, "742", m)
}

func TestTerrainNotesFenced(t *testing.T) {
	_, _, obs := extractParcelData("A1 CAD: 100 200 Teren imprejmuit cu gard")
	assert.Equal(t, "Teren imprejmuit", obs)

	_, _, obs = extractParcelData("A1 CAD: 100 200 Teren neimprejmuit")
	assert.Equal(t, "Teren neimprejmuit", obs)
}

func TestTerrainNotesGenericCapped(t *testing.T) {
	// Free-text observations survive only under the noise threshold.
	_, _, obs := extractParcelData("A1 100 1.000 Curti constructii Adresa: Str. Lunga")
	assert.Equal(t, "Curti constructii", obs)
}

func TestStripThousands(t *testing.T) {
	assert.Equal(t, "1234", stripThousands("1.234"))
	assert.Equal(t, "12345", stripThousands("12 345"))
	assert.Equal(t, "965", stripThousands("965"))
}
