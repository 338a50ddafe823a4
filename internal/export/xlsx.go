// Package export writes the accumulated record table to an XLSX workbook.
// The workbook is rewritten wholesale on every batch; on resume it is read
// back so earlier runs' rows survive.
package export

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/andrei-lupu/cf-extract/constants"
	"github.com/andrei-lupu/cf-extract/internal/parser"
)

const sheetName = "Date Cadastrale"

// Writer persists record tables to a fixed path.
type Writer struct {
	path   string
	logger *slog.Logger
}

func NewWriter(path string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{path: path, logger: logger}
}

// SortRecords orders rows for the report: review-flagged rows first
// (validation status descending), then CF number ascending.
func SortRecords(records []parser.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].ValidationStatus != records[j].ValidationStatus {
			return records[i].ValidationStatus > records[j].ValidationStatus
		}
		return records[i].CFNumber < records[j].CFNumber
	})
}

// Write sorts records and rewrites the whole workbook.
func (w *Writer) Write(records []parser.Record) error {
	start := time.Now()

	sorted := make([]parser.Record, len(records))
	copy(sorted, records)
	SortRecords(sorted)

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil {
			w.logger.Warn("export.close_failed", "error", cerr)
		}
	}()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	for i, h := range constants.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for rowIdx, rec := range sorted {
		for colIdx, v := range rec.Row() {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", rowIdx+2, err)
			}
		}
	}

	// Widen the columns operators read first.
	_ = f.SetColWidth(sheetName, "A", "B", 18) // validation
	_ = f.SetColWidth(sheetName, "C", "C", 32) // file name
	_ = f.SetColWidth(sheetName, "G", "G", 20) // cadastral number
	_ = f.SetColWidth(sheetName, "U", "U", 40) // owners
	_ = f.SetColWidth(sheetName, "Y", "Y", 60) // history

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("xlsx save: %w", err)
	}

	w.logger.Info("export.xlsx.ok",
		"path", w.path,
		"rows", len(sorted),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Read loads a previously written workbook back into records. A missing file
// yields an empty table; a corrupt one is an error the caller may treat as
// "start fresh".
func (w *Writer) Read() ([]parser.Record, error) {
	if _, err := os.Stat(w.path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("xlsx open: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			w.logger.Warn("export.close_failed", "error", cerr)
		}
	}()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("xlsx rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	records := make([]parser.Record, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		records = append(records, parser.FromRow(cells))
	}
	return records, nil
}
