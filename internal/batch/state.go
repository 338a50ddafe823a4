package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/andrei-lupu/cf-extract/constants"
)

// Checkpoint records which files a run has fully processed. Persisted after
// every batch so a crash loses at most one in-flight batch.
type Checkpoint struct {
	RunID          string   `json:"run_id"`
	ProcessedFiles []string `json:"processed_files"`
	LastBatch      int      `json:"last_batch"`
	Timestamp      string   `json:"timestamp,omitempty"`
}

// ErrorEntry is one per-file failure, kept alongside the output table.
type ErrorEntry struct {
	File    string                  `json:"file"`
	Type    constants.ErrorCategory `json:"type"`
	Details string                  `json:"details"`
}

// Progress is the snapshot external pollers read.
type Progress struct {
	RunID     string  `json:"run_id,omitempty"`
	Current   int     `json:"current"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp,omitempty"`
}

// Store persists batch state as whole-file-rewrite JSON documents in one
// output directory. Writes happen on the single orchestrator goroutine;
// readers tolerate concurrent writes by treating parse failures as
// "no data yet".
type Store struct {
	checkpointPath string
	errorsPath     string
	progressPath   string
}

func NewStore(outputDir string) *Store {
	return &Store{
		checkpointPath: filepath.Join(outputDir, constants.CheckpointFile),
		errorsPath:     filepath.Join(outputDir, constants.ErrorsFile),
		progressPath:   filepath.Join(outputDir, constants.ProgressFile),
	}
}

// LoadCheckpoint returns the persisted checkpoint, or a zero checkpoint when
// the file is missing or unreadable.
func (s *Store) LoadCheckpoint() Checkpoint {
	var cp Checkpoint
	readJSON(s.checkpointPath, &cp)
	return cp
}

func (s *Store) SaveCheckpoint(cp Checkpoint) error {
	cp.Timestamp = time.Now().Format(time.RFC3339)
	return writeJSON(s.checkpointPath, cp)
}

func (s *Store) LoadErrors() []ErrorEntry {
	var errs []ErrorEntry
	readJSON(s.errorsPath, &errs)
	return errs
}

func (s *Store) SaveErrors(errs []ErrorEntry) error {
	if errs == nil {
		errs = []ErrorEntry{}
	}
	return writeJSON(s.errorsPath, errs)
}

// LoadProgress returns the persisted snapshot; missing or partially written
// files degrade to an idle snapshot.
func (s *Store) LoadProgress() Progress {
	p := Progress{Status: string(constants.RunStatusIdle)}
	readJSON(s.progressPath, &p)
	return p
}

func (s *Store) SaveProgress(p Progress) error {
	p.Timestamp = time.Now().Format(time.RFC3339)
	return writeJSON(s.progressPath, p)
}

// Reset removes all persisted state so the next run starts fresh.
func (s *Store) Reset() error {
	for _, path := range []string{s.checkpointPath, s.errorsPath, s.progressPath} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("reset %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

func readJSON(path string, v any) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	_ = json.Unmarshal(data, v)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
