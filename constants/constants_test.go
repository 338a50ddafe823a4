package constants

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF("doc.pdf"))
	assert.True(t, IsPDF("DOC.PDF"))
	assert.False(t, IsPDF("._doc.pdf"))
	assert.False(t, IsPDF("doc.txt"))
	assert.False(t, IsPDF("noext"))
}

func TestNormalizeExt(t *testing.T) {
	assert.Equal(t, "pdf", NormalizeExt("a.PDF"))
	assert.Equal(t, "", NormalizeExt("noext"))
	assert.Equal(t, "gz", NormalizeExt("a.tar.gz"))
}

func TestRunStatusErrorCapsMessage(t *testing.T) {
	long := strings.Repeat("x", 150)
	got := string(RunStatusError(long))
	assert.Equal(t, "error: "+strings.Repeat("x", 100), got)
	assert.Equal(t, "error: boom", string(RunStatusError("boom")))
}

func TestColumnsShape(t *testing.T) {
	assert.Len(t, Columns, 28)
	assert.Equal(t, "Status_Validare", Columns[0])
	assert.Equal(t, "Numar_Cerere", Columns[len(Columns)-1])
}
