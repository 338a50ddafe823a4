package common

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Batch   BatchConfig
	TextAcq TextAcqConfig
}

// BatchConfig drives the batch orchestrator.
type BatchConfig struct {
	BatchSize      int           // files per checkpointed batch
	AcquireWorkers int           // >1 parallelizes text acquisition inside a batch
	FileTimeout    time.Duration // per-file ceiling for acquisition calls
	ScratchDir     string        // where OCR rasterization artifacts go
}

// TextAcqConfig drives PDF text acquisition.
type TextAcqConfig struct {
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Lang string // tesseract language pack, default "ron"
	DPI  int    // rasterization DPI for scanned PDFs, default 300
	PSM  int    // 6 = uniform block of text
	OEM  int    // 3 = default engine

	MaxTextPages  int     // text-layer pages to read, default 10
	MaxOCRPages   int     // pages to rasterize when falling back, default 5
	MinTextChars  int     // below this the text layer is considered absent
	MinAlphaRatio float64 // below this the text layer is considered garbage
}

// LoadConfig resolves configuration from defaults, an optional config file,
// and CFEXTRACT_* environment variables, in increasing precedence.
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CFEXTRACT")
	v.AutomaticEnv()

	v.SetDefault("batch.size", 100)
	v.SetDefault("batch.acquire_workers", 1)
	v.SetDefault("batch.file_timeout", 2*time.Minute)
	v.SetDefault("batch.scratch_dir", "temp_images")

	v.SetDefault("textacq.pdftoppm", "pdftoppm")
	v.SetDefault("textacq.tesseract", "tesseract")
	v.SetDefault("textacq.lang", "ron")
	v.SetDefault("textacq.dpi", 300)
	v.SetDefault("textacq.psm", 6)
	v.SetDefault("textacq.oem", 3)
	v.SetDefault("textacq.max_text_pages", 10)
	v.SetDefault("textacq.max_ocr_pages", 5)
	v.SetDefault("textacq.min_text_chars", 150)
	v.SetDefault("textacq.min_alpha_ratio", 0.05)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{
		Batch: BatchConfig{
			BatchSize:      v.GetInt("batch.size"),
			AcquireWorkers: v.GetInt("batch.acquire_workers"),
			FileTimeout:    v.GetDuration("batch.file_timeout"),
			ScratchDir:     v.GetString("batch.scratch_dir"),
		},
		TextAcq: TextAcqConfig{
			Pdftoppm:      v.GetString("textacq.pdftoppm"),
			Tesseract:     v.GetString("textacq.tesseract"),
			Lang:          v.GetString("textacq.lang"),
			DPI:           v.GetInt("textacq.dpi"),
			PSM:           v.GetInt("textacq.psm"),
			OEM:           v.GetInt("textacq.oem"),
			MaxTextPages:  v.GetInt("textacq.max_text_pages"),
			MaxOCRPages:   v.GetInt("textacq.max_ocr_pages"),
			MinTextChars:  v.GetInt("textacq.min_text_chars"),
			MinAlphaRatio: v.GetFloat64("textacq.min_alpha_ratio"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the batch loop cannot run with.
func (c *Config) Validate() error {
	if c.Batch.BatchSize <= 0 {
		return NewAppError("CONFIG_ERROR", "batch.size must be positive", ErrInvalidInput)
	}
	if c.Batch.AcquireWorkers <= 0 {
		return NewAppError("CONFIG_ERROR", "batch.acquire_workers must be positive", ErrInvalidInput)
	}
	if c.TextAcq.MinAlphaRatio < 0 || c.TextAcq.MinAlphaRatio > 1 {
		return NewAppError("CONFIG_ERROR", "textacq.min_alpha_ratio must be in [0,1]", ErrInvalidInput)
	}
	return nil
}
