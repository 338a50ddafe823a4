package textacq

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"github.com/andrei-lupu/cf-extract/internal/common"
)

// anchorTerms are phrases any readable Carte Funciara extract contains.
// If none appear, the text layer is likely a broken or image-only scan.
var anchorTerms = []string{"CARTE", "FUNCIAR", "Proprietar", "Partea", "cadastral"}

// Extractor turns a PDF into best-effort plain text, preferring the embedded
// text layer and falling back to rasterization + tesseract OCR.
type Extractor struct {
	cfg    common.TextAcqConfig
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg common.TextAcqConfig, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Lang == "" {
		cfg.Lang = "ron"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.MaxTextPages <= 0 {
		cfg.MaxTextPages = 10
	}
	if cfg.MaxOCRPages <= 0 {
		cfg.MaxOCRPages = 5
	}
	if cfg.MinTextChars <= 0 {
		cfg.MinTextChars = 150
	}
	if cfg.MinAlphaRatio <= 0 {
		cfg.MinAlphaRatio = 0.05
	}
	return &Extractor{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// Acquire extracts text from the PDF at path. It never returns an error:
// total failure degrades to empty text with usedOCR=true. scratchDir receives
// temporary page rasterizations and must be writable.
func (e *Extractor) Acquire(ctx context.Context, path, scratchDir string) (text string, usedOCR bool) {
	text = e.textLayer(path)

	if !e.needsOCR(text) {
		e.logger.Debug("textacq.textlayer.ok", "file", filepath.Base(path), "chars", len(text))
		return text, false
	}

	e.logger.Info("textacq.ocr.fallback", "file", filepath.Base(path), "textlayer_chars", len(text))
	text = e.ocr(ctx, path, scratchDir)
	if strings.TrimSpace(text) == "" {
		e.logger.Warn("textacq.failed", "file", filepath.Base(path))
	}
	return text, true
}

// textLayer reads the embedded text of the first MaxTextPages pages.
// Per-page failures are logged and skipped; panics inside the PDF library
// are recovered so a corrupt file cannot take down the batch.
func (e *Extractor) textLayer(path string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("textacq.textlayer.panic", "file", filepath.Base(path), "panic", fmt.Sprint(r))
			out = ""
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		e.logger.Error("textacq.textlayer.open_failed", "file", filepath.Base(path), "error", err)
		return ""
	}
	defer func() {
		_ = f.Close()
	}()

	maxPages := reader.NumPage()
	if maxPages > e.cfg.MaxTextPages {
		maxPages = e.cfg.MaxTextPages
	}

	var parts []string
	for i := 1; i <= maxPages; i++ {
		pageText, perr := e.pageText(reader, i)
		if perr != nil {
			e.logger.Warn("textacq.page.failed", "file", filepath.Base(path), "page", i, "error", perr)
			continue
		}
		if pageText != "" {
			parts = append(parts, pageText)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

func (e *Extractor) pageText(reader *pdf.Reader, num int) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: %v", num, r)
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

// needsOCR decides whether the embedded text layer is usable.
func (e *Extractor) needsOCR(text string) bool {
	if len(text) < e.cfg.MinTextChars {
		return true
	}

	lower := strings.ToLower(text)
	hasAnchor := false
	for _, term := range anchorTerms {
		if strings.Contains(lower, strings.ToLower(term)) {
			hasAnchor = true
			break
		}
	}
	if !hasAnchor {
		return true
	}

	alpha := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			alpha++
		}
	}
	total := len([]rune(text))
	if total == 0 {
		return true
	}
	return float64(alpha)/float64(total) < e.cfg.MinAlphaRatio
}

// ocr rasterizes the first MaxOCRPages pages into scratchDir and runs
// tesseract per page. Page failures are skipped; total failure yields "".
func (e *Extractor) ocr(ctx context.Context, path, scratchDir string) string {
	if err := os.MkdirAll(scratchDir, 0o755); err != nil {
		e.logger.Error("textacq.scratch.failed", "dir", scratchDir, "error", err)
		return ""
	}
	pageDir, err := os.MkdirTemp(scratchDir, "pages-*")
	if err != nil {
		e.logger.Error("textacq.scratch.failed", "dir", scratchDir, "error", err)
		return ""
	}
	defer func() {
		if rerr := os.RemoveAll(pageDir); rerr != nil {
			e.logger.Warn("textacq.scratch.cleanup_failed", "dir", pageDir, "error", rerr)
		}
	}()

	prefix := filepath.Join(pageDir, "page")
	// pdftoppm -f 1 -l 5 -r 300 -gray -png <in.pdf> <pageDir/page>
	_, _, err = e.runner.Run(ctx, e.cfg.Pdftoppm,
		"-f", "1",
		"-l", fmt.Sprintf("%d", e.cfg.MaxOCRPages),
		"-r", fmt.Sprintf("%d", e.cfg.DPI),
		"-gray", "-png",
		path, prefix,
	)
	if err != nil {
		return ""
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) > e.cfg.MaxOCRPages {
		matches = matches[:e.cfg.MaxOCRPages]
	}
	if len(matches) == 0 {
		e.logger.Warn("textacq.ocr.no_pages", "file", filepath.Base(path))
		return ""
	}

	var parts []string
	for i, img := range matches {
		txt, terr := e.tesseract(ctx, img)
		if terr != nil {
			e.logger.Warn("textacq.ocr.page_failed", "file", filepath.Base(path), "page", i+1, "error", terr)
			continue
		}
		if strings.TrimSpace(txt) != "" {
			parts = append(parts, txt)
		}
	}
	return NormalizeRomanian(strings.TrimSpace(strings.Join(parts, "\n")))
}

func (e *Extractor) tesseract(ctx context.Context, imgPath string) (string, error) {
	args := []string{imgPath, "stdout", "-l", e.cfg.Lang}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", fmt.Sprintf("%d", e.cfg.PSM))
	}
	if e.cfg.OEM > 0 {
		args = append(args, "--oem", fmt.Sprintf("%d", e.cfg.OEM))
	}

	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w (%s)", err, truncate(string(errb), 200))
	}
	return string(out), nil
}
