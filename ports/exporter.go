package ports

import (
	"context"

	"motinsight/domain/insight"
)

// ReportExporter writes one generated report to a destination (JSON data
// file, workbook, ...) and returns the written path.
type ReportExporter interface {
	Export(ctx context.Context, report *insight.Report) (string, error)
}
