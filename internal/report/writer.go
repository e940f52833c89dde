package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	v1 "github.com/storepulse/storepulse/internal/api/v1"
	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	xlsxSheetName = "Uptime Report"
)

// ErrUnknownFormat is returned for an output format other than csv or xlsx.
var ErrUnknownFormat = errors.New("unknown report format")

// Writer serializes report rows to a file.
type Writer interface {
	// Extension is the file extension without the dot.
	Extension() string
	Write(path string, rows []v1.ReportRow) error
}

// NewWriter returns the writer for a configured format name.
func NewWriter(format string) (Writer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatCSV:
		return CSVWriter{}, nil
	case FormatXLSX:
		return XLSXWriter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// CSVWriter writes a header line followed by one line per store.
type CSVWriter struct{}

func (CSVWriter) Extension() string { return FormatCSV }

func (CSVWriter) Write(path string, rows []v1.ReportRow) error {
	return writeAtomic(path, func(f *os.File) error {
		w := csv.NewWriter(f)
		if err := w.Write(v1.ReportHeader); err != nil {
			return err
		}
		for _, row := range rows {
			if err := w.Write(row.Values()); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	})
}

// XLSXWriter writes a single sheet with a bold frozen header row.
// Figures are stored as numbers so spreadsheets can sum them.
type XLSXWriter struct{}

func (XLSXWriter) Extension() string { return FormatXLSX }

func (XLSXWriter) Write(path string, rows []v1.ReportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), xlsxSheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	header := make([]interface{}, len(v1.ReportHeader))
	for i, h := range v1.ReportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(xlsxSheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(v1.ReportHeader))
	if err != nil {
		return fmt.Errorf("failed to convert column number: %w", err)
	}
	if err := f.SetCellStyle(xlsxSheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}
	if err := f.SetColWidth(xlsxSheetName, "A", "A", 40); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(xlsxSheetName, "B", lastCol, 20); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	for i, row := range rows {
		cells, err := xlsxCells(row)
		if err != nil {
			return fmt.Errorf("store %s: %w", row.StoreID, err)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(xlsxSheetName, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(xlsxSheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze panes: %w", err)
	}

	return writeAtomic(path, func(out *os.File) error {
		_, err := f.WriteTo(out)
		return err
	})
}

func xlsxCells(row v1.ReportRow) ([]interface{}, error) {
	values := row.Values()
	cells := make([]interface{}, len(values))
	cells[0] = values[0]
	for i := 1; i < len(values); i++ {
		d, err := decimal.NewFromString(values[i])
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", v1.ReportHeader[i], err)
		}
		cells[i] = d.InexactFloat64()
	}
	return cells, nil
}

// writeAtomic writes into a temp file next to path and renames it into place,
// so readers never observe a partially written report.
func writeAtomic(path string, write func(f *os.File) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck

	if err := write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move report into place: %w", err)
	}
	return nil
}
