// Package report flattens classification results into the xlsx artifact and
// keeps the diagnostics trail for records the model left incomplete.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"db-privacy-scan/internal/classify"
)

const sheetName = "Detailed Analysis"

// Styling configuration for the generated sheet.
const (
	headerFillColor   = "1F4E79"
	headerFontColor   = "FFFFFF"
	alternateRowColor = "F2F2F2"
	borderColor       = "CCCCCC"
	maxColumnWidth    = 50
)

// Generator writes classification results to a styled spreadsheet under the
// output directory and appends anomalies to the diagnostics file next to it.
type Generator struct {
	outputDir string
	diag      *Diagnostics
	logger    *zap.Logger
}

func NewGenerator(outputDir string, logger *zap.Logger) (*Generator, error) {
	if outputDir == "" {
		outputDir = "reports"
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Generator{
		outputDir: outputDir,
		diag:      NewDiagnostics(filepath.Join(outputDir, "analysis_errors.log")),
		logger:    logger,
	}, nil
}

// Diagnostics exposes the generator's diagnostics file.
func (g *Generator) Diagnostics() *Diagnostics {
	return g.diag
}

// Generate flattens the per-table results into one row per (table, record)
// and writes the report. Records are tagged with their own table only; no
// cross-checking against column metadata happens here. A missing required
// field is logged and diagnosed, never fatal. Returns the report path.
func (g *Generator) Generate(results []classify.TableResult, dbName string) (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_privacy_analysis_%s.xlsx", dbName, timestamp)
	path := filepath.Join(g.outputDir, filename)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return "", fmt.Errorf("failed to name sheet: %w", err)
	}

	header := append([]string{"Table"}, classify.ReportFields...)
	row := make([]interface{}, len(header))
	for i, h := range header {
		row[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &row); err != nil {
		return "", fmt.Errorf("failed to write header row: %w", err)
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}

	rowIdx := 2
	for _, result := range results {
		if result.Skipped() {
			g.logger.Warn("table skipped, no rows in report",
				zap.String("table", result.Table),
				zap.String("reason", result.SkipReason))
			continue
		}
		for _, rec := range result.Records {
			for _, field := range rec.MissingFields() {
				g.diagnoseMissing(result.Table, field)
			}

			values := append([]string{result.Table}, rec.Values()...)
			cells := make([]interface{}, len(values))
			for i, v := range values {
				cells[i] = v
				if len(v) > widths[i] {
					widths[i] = len(v)
				}
			}
			cell, err := excelize.CoordinatesToCellName(1, rowIdx)
			if err != nil {
				return "", fmt.Errorf("failed to compute cell name: %w", err)
			}
			if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
				return "", fmt.Errorf("failed to write row %d: %w", rowIdx, err)
			}
			rowIdx++
		}
	}

	if err := g.applyStyling(f, len(header), rowIdx-1, widths); err != nil {
		return "", err
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}

	g.logger.Info("report generated",
		zap.String("path", path),
		zap.Int("rows", rowIdx-2))
	return path, nil
}

func (g *Generator) diagnoseMissing(table, field string) {
	line := fmt.Sprintf("required field %q for table %q is missing from the model reply", field, table)
	g.logger.Warn("missing required field",
		zap.String("table", table),
		zap.String("field", field))
	if err := g.diag.Append(line); err != nil {
		g.logger.Error("failed to write diagnostics", zap.Error(err))
	}
}

func (g *Generator) applyStyling(f *excelize.File, cols, lastRow int, widths []int) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
		Font: &excelize.Font{Bold: true, Color: headerFontColor},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	border := []excelize.Border{
		{Type: "left", Color: borderColor, Style: 1},
		{Type: "right", Color: borderColor, Style: 1},
		{Type: "top", Color: borderColor, Style: 1},
		{Type: "bottom", Color: borderColor, Style: 1},
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Border:    border,
		Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create body style: %w", err)
	}
	alternateStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{alternateRowColor}, Pattern: 1},
		Border:    border,
		Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create alternate row style: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		return fmt.Errorf("failed to resolve last column: %w", err)
	}

	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	for r := 2; r <= lastRow; r++ {
		style := bodyStyle
		if r%2 == 0 {
			style = alternateStyle
		}
		first := fmt.Sprintf("A%d", r)
		last := fmt.Sprintf("%s%d", lastCol, r)
		if err := f.SetCellStyle(sheetName, first, last, style); err != nil {
			return fmt.Errorf("failed to style row %d: %w", r, err)
		}
	}

	for i, w := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to resolve column %d: %w", i+1, err)
		}
		width := float64(w + 2)
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		if err := f.SetColWidth(sheetName, name, name, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	return nil
}
