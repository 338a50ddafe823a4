package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrei-lupu/cf-extract/constants"
)

func TestStoreRoundtrip(t *testing.T) {
	store := NewStore(t.TempDir())

	cp := Checkpoint{RunID: "r1", ProcessedFiles: []string{"a.pdf"}, LastBatch: 2}
	require.NoError(t, store.SaveCheckpoint(cp))
	got := store.LoadCheckpoint()
	assert.Equal(t, "r1", got.RunID)
	assert.Equal(t, []string{"a.pdf"}, got.ProcessedFiles)
	assert.Equal(t, 2, got.LastBatch)
	assert.NotEmpty(t, got.Timestamp)

	require.NoError(t, store.SaveErrors([]ErrorEntry{{File: "a.pdf", Type: constants.ErrEmptyFile}}))
	assert.Len(t, store.LoadErrors(), 1)

	require.NoError(t, store.SaveProgress(Progress{Current: 3, Total: 10, Percent: 30, Status: "running"}))
	pr := store.LoadProgress()
	assert.Equal(t, 3, pr.Current)
	assert.Equal(t, "running", pr.Status)
}

func TestStoreMissingFilesDegrade(t *testing.T) {
	store := NewStore(t.TempDir())

	assert.Empty(t, store.LoadCheckpoint().ProcessedFiles)
	assert.Empty(t, store.LoadErrors())
	assert.Equal(t, string(constants.RunStatusIdle), store.LoadProgress().Status)
}

func TestStoreCorruptFilesDegrade(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	// A half-written file must not break the reader.
	require.NoError(t, os.WriteFile(filepath.Join(dir, constants.CheckpointFile), []byte(`{"run_id": "r`), 0o644))
	assert.Empty(t, store.LoadCheckpoint().RunID)
}

func TestStoreReset(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	require.NoError(t, store.SaveCheckpoint(Checkpoint{RunID: "r1"}))
	require.NoError(t, store.SaveProgress(Progress{Status: "running"}))
	require.NoError(t, store.Reset())

	assert.Empty(t, store.LoadCheckpoint().RunID)
	assert.Equal(t, string(constants.RunStatusIdle), store.LoadProgress().Status)

	// Resetting an already clean directory is fine.
	require.NoError(t, store.Reset())
}

func TestListPDFs(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"b.pdf", "a.PDF", "._a.pdf", "x.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.pdf"), 0o755))

	files, err := ListPDFs(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.PDF", filepath.Base(files[0]))
	assert.Equal(t, "b.pdf", filepath.Base(files[1]))
}

func TestListPDFsMissingDir(t *testing.T) {
	_, err := ListPDFs(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestRegistryReusesProcessors(t *testing.T) {
	made := 0
	reg := NewRegistry(func(in, out string) *Processor {
		made++
		return NewProcessor(in, out, testConfig(), stubAcquirer{}, nil)
	})

	a := reg.Get("in", "out")
	b := reg.Get("./in", "out")
	c := reg.Get("in", "other")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, made)
}
