package jsonfile

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"motinsight/domain/insight"
)

func sampleReport() *insight.Report {
	return &insight.Report{
		Make:       "LAND ROVER",
		Model:      "RANGE ROVER SPORT",
		TotalTests: 20000,
		Grouped: insight.SeverityBuckets{
			Known: []insight.KnownIssue{{
				Title:        "Brake discs and drums",
				Category:     "Brakes",
				Occurrences:  200,
				ModelRatePct: 1.0,
				BaselinePct:  0.425,
				Ratio:        2.35,
				Tier:         insight.TierKnown,
			}},
		},
		FleetMeanPassPct:   71.5,
		FleetMedianPassPct: 72.0,
	}
}

func TestExporter_WritesSlugifiedFilename(t *testing.T) {
	e, err := NewExporter(t.TempDir())
	if err != nil {
		t.Fatalf("NewExporter: %v", err)
	}

	path, err := e.Export(context.Background(), sampleReport())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if got := filepath.Base(path); got != "land-rover-range-rover-sport.json" {
		t.Errorf("filename = %q", got)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("exported file missing: %v", err)
	}
}

func TestExporter_OutputIsDeterministic(t *testing.T) {
	e, err := NewExporter(t.TempDir())
	if err != nil {
		t.Fatalf("NewExporter: %v", err)
	}

	first, err := e.Export(context.Background(), sampleReport())
	if err != nil {
		t.Fatalf("first export: %v", err)
	}
	a, err := os.ReadFile(first)
	if err != nil {
		t.Fatal(err)
	}

	second, err := e.Export(context.Background(), sampleReport())
	if err != nil {
		t.Fatalf("second export: %v", err)
	}
	b, err := os.ReadFile(second)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(a, b) {
		t.Error("repeated export of the same report produced different bytes")
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"FORD":              "ford",
		"MERCEDES-BENZ":     "mercedes-benz",
		"  C220 D  ":        "c220-d",
		"VOLKSWAGEN GOLF +": "volkswagen-golf",
	}
	for in, want := range cases {
		if got := slug(in); got != want {
			t.Errorf("slug(%q) = %q, want %q", in, got, want)
		}
	}
}
