// Package report renders the ranked job list into a spreadsheet.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/job-matcher/internal/types"
)

const sheetName = "Job Matches"

// maxColumnWidth caps the auto-sized column width.
const maxColumnWidth = 50

var headers = []string{"Job Title", "Company", "Required Skills", "Relevance Score", "Apply Link", "Source"}

// DefaultOutputPath returns the timestamped default report filename.
func DefaultOutputPath(now time.Time) string {
	return fmt.Sprintf("job_matches_%s.xlsx", now.Format("20060102_150405"))
}

// WriteXLSX writes the ranked jobs to an .xlsx file: one row per job in the
// given order, a bold centered header row, and column widths sized to
// content up to a capped maximum. An empty job list produces a header-only
// sheet without error.
func WriteXLSX(path string, jobs []types.Job) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to set up sheet: %w", err)
	}

	widths := make([]int, len(headers))
	for col, header := range headers {
		if err := setCell(f, col+1, 1, header); err != nil {
			return err
		}
		widths[col] = len(header)
	}

	for row, job := range jobs {
		values := []string{
			job.Title,
			job.Company,
			strings.Join(job.RequiredSkills, ", "),
			fmt.Sprintf("%.2f", job.RelevanceScore),
			job.Link,
			job.Source.Display(),
		}
		for col, value := range values {
			if err := setCell(f, col+1, row+2, value); err != nil {
				return err
			}
			if len(value) > widths[col] {
				widths[col] = len(value)
			}
		}
	}

	if err := styleHeader(f); err != nil {
		return err
	}

	for col, width := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("failed to size column %d: %w", col+1, err)
		}
		adjusted := width + 2
		if adjusted > maxColumnWidth {
			adjusted = maxColumnWidth
		}
		if err := f.SetColWidth(sheetName, name, name, float64(adjusted)); err != nil {
			return fmt.Errorf("failed to size column %s: %w", name, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report %s: %w", path, err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("failed to address cell (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(sheetName, cell, value); err != nil {
		return fmt.Errorf("failed to write cell %s: %w", cell, err)
	}
	return nil
}

func styleHeader(f *excelize.File) error {
	styleID, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return fmt.Errorf("failed to address header row: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", last, styleID); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}
	return nil
}
