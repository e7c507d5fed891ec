// Package export renders analysis results as spreadsheet rows and xlsx files.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/simsieve/internal/common"
	"github.com/Veraticus/simsieve/internal/model"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet title used by every export target.
const SheetName = "Kết Quả Phân Tích"

// Header is the column header row, in column order.
var Header = []string{
	"STT",
	"Số SIM",
	"Điểm Bát Cục",
	"Điểm Dân Gian",
	"Luận Giải",
	"Kết Luận",
	"Trạng Thái",
	"Ghi Chú",
}

var columnWidths = []float64{5, 15, 12, 12, 50, 40, 12, 30}

// ErrNoData is returned when there is nothing to export.
var ErrNoData = common.ErrNoData

// Rows converts results into data rows matching Header. STT is 1-based.
func Rows(results []model.AnalysisResult) [][]any {
	rows := make([][]any, 0, len(results))
	for i, r := range results {
		rows = append(rows, []any{
			i + 1,
			r.SimNumber,
			r.BatCucScore,
			r.FolkScore,
			r.Interpretation,
			r.Conclusion,
			r.StatusLabel(),
			r.ErrorMessage,
		})
	}
	return rows
}

// FileName returns the export file name for the given time.
func FileName(now time.Time) string {
	stamp := now.UTC().Truncate(time.Second).Format("2006-01-02T15:04:05")
	return "Phan_Tich_Sim_" + strings.ReplaceAll(stamp, ":", "-") + ".xlsx"
}

// WriteXLSX writes results as a single-sheet workbook to w.
func WriteXLSX(w io.Writer, results []model.AnalysisResult) error {
	if len(results) == 0 {
		return ErrNoData
	}

	f, err := build(results)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes the workbook into dir and returns the file path.
func SaveXLSX(dir string, results []model.AnalysisResult, now time.Time) (string, error) {
	if len(results) == 0 {
		return "", ErrNoData
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	f, err := build(results)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	path := filepath.Join(dir, FileName(now))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return path, nil
}

func build(results []model.AnalysisResult) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := writeHeader(f); err != nil {
		_ = f.Close()
		return nil, err
	}

	for i, row := range Rows(results) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	return f, nil
}

func writeHeader(f *excelize.File) error {
	for i, h := range Header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E2E8F0"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetRowStyle(SheetName, 1, 1, style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	return nil
}
