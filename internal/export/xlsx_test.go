package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrei-lupu/cf-extract/constants"
	"github.com/andrei-lupu/cf-extract/internal/parser"
)

func rec(cf, owners, status string) parser.Record {
	return parser.Record{
		SourceFile:       cf + ".pdf",
		CFNumber:         cf,
		Owners:           owners,
		ValidationStatus: status,
	}
}

func TestWriteReadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), constants.WorkbookFile)
	w := NewWriter(path, nil)

	in := []parser.Record{
		rec("200", "POP ANA", constants.ValidationOK),
		rec("100", "POPESCU ION", constants.ValidationOK),
	}
	require.NoError(t, w.Write(in))

	out, err := w.Read()
	require.NoError(t, err)
	require.Len(t, out, 2)

	// Sorted by CF number on write.
	assert.Equal(t, "100", out[0].CFNumber)
	assert.Equal(t, "POPESCU ION", out[0].Owners)
	assert.Equal(t, "200", out[1].CFNumber)
	assert.Equal(t, "100.pdf", out[0].SourceFile)
}

func TestReadMissingFileIsEmpty(t *testing.T) {
	w := NewWriter(filepath.Join(t.TempDir(), "absent.xlsx"), nil)
	out, err := w.Read()
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSortRecordsReviewFirst(t *testing.T) {
	records := []parser.Record{
		rec("300", "A", constants.ValidationOK),
		rec("100", "B", constants.ValidationOK),
		rec("200", "C", constants.ValidationReview),
	}
	SortRecords(records)

	// Review rows surface at the top, then CF ascending within each group.
	assert.Equal(t, "200", records[0].CFNumber)
	assert.Equal(t, "100", records[1].CFNumber)
	assert.Equal(t, "300", records[2].CFNumber)
}

func TestWriteDoesNotMutateInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), constants.WorkbookFile)
	w := NewWriter(path, nil)

	in := []parser.Record{
		rec("2", "A", constants.ValidationOK),
		rec("1", "B", constants.ValidationOK),
	}
	require.NoError(t, w.Write(in))
	assert.Equal(t, "2", in[0].CFNumber)
}
