package excel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"motinsight/domain/insight"
)

// ReportExporter writes a report as an XLSX workbook with a summary sheet
// and one sheet per issue list. Editors reviewing the detection output work
// from these workbooks.
type ReportExporter struct {
	dir string
}

// NewReportExporter creates an exporter writing workbooks into dir.
func NewReportExporter(dir string) (*ReportExporter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	return &ReportExporter{dir: dir}, nil
}

// Export writes the workbook and returns the written path.
func (e *ReportExporter) Export(_ context.Context, report *insight.Report) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeSummarySheet(f, report); err != nil {
		return "", err
	}
	if err := e.writeIssueSheet(f, "Grouped Issues", report.Grouped); err != nil {
		return "", err
	}
	if err := e.writeIssueSheet(f, "Individual Issues", report.Individual); err != nil {
		return "", err
	}

	name := strings.ToLower(strings.ReplaceAll(report.Make+"-"+report.Model, " ", "-")) + ".xlsx"
	path := filepath.Join(e.dir, name)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return path, nil
}

func (e *ReportExporter) writeSummarySheet(f *excelize.File, report *insight.Report) error {
	const sheet = "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to rename summary sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Make", report.Make},
		{"Model", report.Model},
		{"Total tests", report.TotalTests},
		{"Grouped issues", report.Grouped.Count()},
		{"Individual issues", report.Individual.Count()},
		{"Fleet mean pass %", report.FleetMeanPassPct},
		{"Fleet median pass %", report.FleetMedianPassPct},
		{},
		{"Category", "Occurrences", "Rate %", "Top defect"},
	}
	for _, s := range report.Systems {
		rows = append(rows, []interface{}{s.Category, s.Occurrences, s.RatePct, s.TopDefect})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Best years"})
	for _, y := range report.BestYears {
		rows = append(rows, []interface{}{y.Year, y.TotalTests, y.PassRatePct})
	}
	rows = append(rows, []interface{}{"Worst years"})
	for _, y := range report.WorstYears {
		rows = append(rows, []interface{}{y.Year, y.TotalTests, y.PassRatePct})
	}

	return writeRows(f, sheet, rows)
}

func (e *ReportExporter) writeIssueSheet(f *excelize.File, sheet string, buckets insight.SeverityBuckets) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"Tier", "Title", "Category", "Occurrences", "Model rate %", "Baseline %", "Ratio", "Rate low %", "Rate high %", "Typical mileage", "Premature", "Affected years", "Variants"},
	}
	appendIssues := func(issues []insight.KnownIssue) {
		for _, issue := range issues {
			rows = append(rows, []interface{}{
				string(issue.Tier),
				issue.Title,
				issue.Category,
				issue.Occurrences,
				issue.ModelRatePct,
				issue.BaselinePct,
				issue.Ratio,
				issue.Interval.LowPct,
				issue.Interval.HighPct,
				issue.TypicalMileage,
				issue.IsPremature,
				joinInts(issue.AffectedYears),
				strings.Join(issue.Variants, "; "),
			})
		}
	}
	appendIssues(buckets.Major)
	appendIssues(buckets.Known)
	appendIssues(buckets.Elevated)

	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d on %s: %w", i+1, sheet, err)
		}
	}
	return nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}
