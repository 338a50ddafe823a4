// Package batch runs the end-to-end extraction pipeline over a directory of
// PDF extracts: acquire text, parse, validate, and persist results in
// checkpointed batches so long runs survive crashes and restarts.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/andrei-lupu/cf-extract/constants"
	"github.com/andrei-lupu/cf-extract/internal/common"
	"github.com/andrei-lupu/cf-extract/internal/export"
	"github.com/andrei-lupu/cf-extract/internal/parser"
	"github.com/andrei-lupu/cf-extract/internal/validate"
)

// Below this many non-space characters a document is treated as unreadable:
// even a heavily truncated extract carries more text than this.
const minViableText = 50

// Acquirer turns one PDF into plain text. Implementations must not fail:
// unreadable input degrades to an empty string.
type Acquirer interface {
	Acquire(ctx context.Context, path, scratchDir string) (text string, usedOCR bool)
}

// Processor orchestrates one input/output directory pair. At most one run is
// active per Processor; Start while running returns ErrBusy.
type Processor struct {
	inputDir  string
	outputDir string
	cfg       common.BatchConfig
	acquirer  Acquirer
	store     *Store
	writer    *export.Writer
	logger    *slog.Logger

	mu       sync.Mutex
	running  bool
	cancel   context.CancelFunc
	snapshot Progress
}

func NewProcessor(inputDir, outputDir string, cfg common.BatchConfig, acq Acquirer, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		inputDir:  inputDir,
		outputDir: outputDir,
		cfg:       cfg,
		acquirer:  acq,
		store:     NewStore(outputDir),
		writer:    export.NewWriter(filepath.Join(outputDir, constants.WorkbookFile), logger),
		logger:    logger.With("input_dir", inputDir),
	}
}

// Start launches a run in the background. It returns immediately; progress is
// observable through Progress.
func (p *Processor) Start(resume bool) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return common.ErrBusy
	}
	p.running = true
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.mu.Unlock()

	go func() {
		defer p.finish()
		if err := p.run(ctx, resume); err != nil {
			p.logger.Error("batch.run_failed", "error", err)
		}
	}()
	return nil
}

// Run executes a run on the caller's goroutine, honoring ctx for cooperative
// cancellation. Used by the CLI; Start is the service-style entry point.
func (p *Processor) Run(ctx context.Context, resume bool) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return common.ErrBusy
	}
	p.running = true
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.mu.Unlock()

	defer p.finish()
	return p.run(ctx, resume)
}

// Stop requests cooperative cancellation. The run finishes its current file,
// checkpoints the partial batch, and exits with status "stopped".
func (p *Processor) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
}

// Running reports whether a run is currently active.
func (p *Processor) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *Processor) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.running = false
	p.cancel = nil
}

// Progress returns the live in-memory snapshot while a run is active, and the
// persisted one otherwise.
func (p *Processor) Progress() Progress {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running && p.snapshot.Status != "" {
		return p.snapshot
	}
	return p.store.LoadProgress()
}

// Reset discards checkpoint, errors and progress so the next run starts from
// scratch. Rejected while a run is active.
func (p *Processor) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return common.ErrBusy
	}
	return p.store.Reset()
}

// ErrorReport renders the persisted per-file errors as a semicolon-delimited
// table, one line per error under a fixed header.
func (p *Processor) ErrorReport() string {
	var b strings.Builder
	b.WriteString("Filename;ErrorType;Details\n")
	for _, e := range p.store.LoadErrors() {
		fmt.Fprintf(&b, "%s;%s;%s\n", e.File, e.Type, e.Details)
	}
	return b.String()
}

func (p *Processor) run(ctx context.Context, resume bool) (err error) {
	start := time.Now()
	defer func() {
		if err != nil {
			p.mu.Lock()
			last := p.snapshot
			p.mu.Unlock()
			last.Status = string(constants.RunStatusError(err.Error()))
			_ = p.setProgress(last)
		}
	}()

	if mkErr := os.MkdirAll(p.outputDir, 0o755); mkErr != nil {
		return fmt.Errorf("create output dir: %w", mkErr)
	}

	files, err := ListPDFs(p.inputDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		p.logger.Info("batch.no_files")
		return p.setProgress(Progress{Status: string(constants.RunStatusNoFiles)})
	}

	var (
		checkpoint Checkpoint
		allErrors  []ErrorEntry
		allRecords []parser.Record
	)
	if resume {
		checkpoint = p.store.LoadCheckpoint()
		allErrors = p.store.LoadErrors()
		if recs, readErr := p.writer.Read(); readErr != nil {
			p.logger.Warn("batch.resume_workbook_unreadable", "error", readErr)
		} else {
			allRecords = recs
		}
	}
	if checkpoint.RunID == "" {
		checkpoint.RunID = uuid.NewString()
		checkpoint.LastBatch = 0
	}

	processed := make(map[string]struct{}, len(checkpoint.ProcessedFiles))
	for _, f := range checkpoint.ProcessedFiles {
		processed[f] = struct{}{}
	}

	var remaining []string
	for _, f := range files {
		if _, ok := processed[filepath.Base(f)]; !ok {
			remaining = append(remaining, f)
		}
	}

	total := len(files)
	p.logger.Info("batch.start",
		"run_id", checkpoint.RunID,
		"total", total,
		"remaining", len(remaining),
		"resume", resume,
	)
	if err := p.setProgress(p.progressAt(checkpoint.RunID, len(processed), total)); err != nil {
		return err
	}

	for offset := 0; offset < len(remaining); offset += p.cfg.BatchSize {
		if ctx.Err() != nil {
			break
		}
		end := offset + p.cfg.BatchSize
		if end > len(remaining) {
			end = len(remaining)
		}
		batchFiles := remaining[offset:end]
		checkpoint.LastBatch++

		records, entries, done := p.processBatch(ctx, checkpoint.LastBatch, batchFiles)
		allRecords = append(allRecords, records...)
		allErrors = append(allErrors, entries...)
		for _, f := range done {
			name := filepath.Base(f)
			checkpoint.ProcessedFiles = append(checkpoint.ProcessedFiles, name)
			processed[name] = struct{}{}
		}

		// Persistence order matters: checkpoint last, so a crash between
		// writes re-processes the batch rather than losing its rows.
		if err := p.writer.Write(allRecords); err != nil {
			return common.WrapError(err, "persist workbook")
		}
		if err := p.store.SaveErrors(allErrors); err != nil {
			return err
		}
		if err := p.store.SaveCheckpoint(checkpoint); err != nil {
			return err
		}
		if err := p.setProgress(p.progressAt(checkpoint.RunID, len(processed), total)); err != nil {
			return err
		}
	}

	final := p.progressAt(checkpoint.RunID, len(processed), total)
	if ctx.Err() != nil {
		final.Status = string(constants.RunStatusStopped)
	} else {
		final.Status = string(constants.RunStatusCompleted)
	}
	if err := p.setProgress(final); err != nil {
		return err
	}

	p.logger.Info("batch.done",
		"run_id", checkpoint.RunID,
		"status", final.Status,
		"records", len(allRecords),
		"errors", len(allErrors),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// processBatch handles one batch of files. It returns the parsed records, the
// per-file errors, and the subset of files actually processed; cancellation
// mid-batch leaves the tail out of all three so a resumed run picks it up.
func (p *Processor) processBatch(ctx context.Context, num int, files []string) ([]parser.Record, []ErrorEntry, []string) {
	p.logger.Info("batch.batch_start", "batch", num, "files", len(files))

	texts := p.acquireAll(ctx, files)

	var (
		records []parser.Record
		entries []ErrorEntry
		done    []string
	)
	for _, path := range files {
		if ctx.Err() != nil {
			break
		}
		recs, entry := p.processFile(ctx, path, texts)
		records = append(records, recs...)
		if entry != nil {
			entries = append(entries, *entry)
		}
		done = append(done, path)
	}
	return records, entries, done
}

type acquired struct {
	text    string
	usedOCR bool
}

// acquireAll pre-acquires text for a batch, concurrently when configured.
// With a single worker it returns nil and acquisition happens inline, keeping
// the sequential path free of goroutine overhead.
func (p *Processor) acquireAll(ctx context.Context, files []string) map[string]acquired {
	if p.cfg.AcquireWorkers <= 1 {
		return nil
	}

	results := make(map[string]acquired, len(files))
	var mu sync.Mutex
	jobs := make(chan string)

	var wg sync.WaitGroup
	for i := 0; i < p.cfg.AcquireWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				text, ocr := p.acquireOne(ctx, path)
				mu.Lock()
				results[path] = acquired{text: text, usedOCR: ocr}
				mu.Unlock()
			}
		}()
	}
	for _, path := range files {
		if ctx.Err() != nil {
			break
		}
		jobs <- path
	}
	close(jobs)
	wg.Wait()
	return results
}

func (p *Processor) acquireOne(ctx context.Context, path string) (string, bool) {
	if p.cfg.FileTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.FileTimeout)
		defer cancel()
	}
	return p.acquirer.Acquire(ctx, path, filepath.Join(p.outputDir, p.cfg.ScratchDir))
}

// processFile classifies and extracts a single PDF. A non-nil entry flags the
// file in the error report; records may still be returned alongside it
// (OWNER_NOT_FOUND rows stay in the table, flagged for review).
func (p *Processor) processFile(ctx context.Context, path string, prefetched map[string]acquired) (records []parser.Record, entry *ErrorEntry) {
	name := filepath.Base(path)
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("batch.file_panic", "file", name, "panic", r)
			records = nil
			entry = &ErrorEntry{
				File:    name,
				Type:    constants.ErrException,
				Details: common.Truncate(fmt.Sprintf("%v", r), 200),
			}
		}
	}()

	info, err := os.Stat(path)
	if err != nil {
		return nil, &ErrorEntry{
			File:    name,
			Type:    constants.ErrException,
			Details: common.Truncate(err.Error(), 200),
		}
	}
	if info.Size() == 0 {
		return nil, &ErrorEntry{File: name, Type: constants.ErrEmptyFile, Details: "fisier de 0 octeti"}
	}

	var text string
	var usedOCR bool
	if pre, ok := prefetched[path]; ok {
		text, usedOCR = pre.text, pre.usedOCR
	} else {
		text, usedOCR = p.acquireOne(ctx, path)
	}
	if len(strings.TrimSpace(text)) < minViableText {
		return nil, &ErrorEntry{File: name, Type: constants.ErrTextUnreadable, Details: "text ilizibil sau lipsa"}
	}

	records = parser.Parse(name, text)
	if len(records) == 0 {
		return nil, &ErrorEntry{File: name, Type: constants.ErrFieldExtraction, Details: "niciun camp extras"}
	}
	for i := range records {
		records[i].ValidationStatus, records[i].ValidationMessage = validate.Validate(&records[i])
	}

	p.logger.Debug("batch.file_ok", "file", name, "records", len(records), "ocr", usedOCR)

	if records[0].Owners == constants.NotDetected {
		entry = &ErrorEntry{File: name, Type: constants.ErrOwnerNotFound, Details: "proprietar negasit in text"}
	}
	return records, entry
}

func (p *Processor) progressAt(runID string, current, total int) Progress {
	percent := 0.0
	if total > 0 {
		percent = math.Round(float64(current)/float64(total)*1000) / 10
	}
	return Progress{
		RunID:   runID,
		Current: current,
		Total:   total,
		Percent: percent,
		Status:  string(constants.RunStatusRunning),
	}
}

func (p *Processor) setProgress(pr Progress) error {
	p.mu.Lock()
	p.snapshot = pr
	p.mu.Unlock()
	return p.store.SaveProgress(pr)
}
