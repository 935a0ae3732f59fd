package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"motinsight/adapters/excel"
	"motinsight/adapters/jsonfile"
	"motinsight/adapters/postgres"
	"motinsight/app"
	"motinsight/internal"
	"motinsight/internal/config"
	"motinsight/internal/grouping"
	"motinsight/ports"
)

func main() {
	// .env is optional; real deployments configure through the environment
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "motinsight",
		Short: "Generate MOT known-issues reports from the statistics fact store",
	}

	rootCmd.AddCommand(
		newReportCmd(),
		newBatchCmd(),
		newGroupsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newReportCmd() *cobra.Command {
	var withExcel bool

	cmd := &cobra.Command{
		Use:   "report <make> <model>",
		Short: "Generate the known-issues report for one make/model",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, services, cleanup, err := wire()
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := services.reports.Generate(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if report == nil {
				fmt.Printf("no test data for %s %s\n", args[0], args[1])
				return nil
			}

			exporters := []ports.ReportExporter{services.json}
			if withExcel {
				xlsx, err := excel.NewReportExporter(cfg.Output.Dir)
				if err != nil {
					return err
				}
				exporters = append(exporters, xlsx)
			}
			for _, exporter := range exporters {
				path, err := exporter.Export(cmd.Context(), report)
				if err != nil {
					return err
				}
				fmt.Printf("wrote %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withExcel, "excel", false, "Also write an XLSX workbook")
	return cmd
}

func newBatchCmd() *cobra.Command {
	var input string
	var outDir string
	var workers int
	var withExcel bool

	cmd := &cobra.Command{
		Use:   "batch --input pairs.txt",
		Short: "Generate reports for every make/model pair in a file",
		Long: `Generate reports for many models in one run.

The input file holds one tab- or comma-separated "make,model" pair per line.
Each report is independent, so generation fans out across a worker pool.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, err := readPairs(input)
			if err != nil {
				return err
			}

			cfg, services, cleanup, err := wire()
			if err != nil {
				return err
			}
			defer cleanup()

			if outDir == "" {
				outDir = cfg.Output.Dir
			}
			jsonExporter, err := jsonfile.NewExporter(outDir)
			if err != nil {
				return err
			}
			exporters := []ports.ReportExporter{jsonExporter}
			if withExcel {
				xlsx, err := excel.NewReportExporter(outDir)
				if err != nil {
					return err
				}
				exporters = append(exporters, xlsx)
			}

			if workers == 0 {
				workers = cfg.Output.Workers
			}
			batch := app.NewBatchService(services.reports, exporters, services.log)
			result, err := batch.GenerateAll(cmd.Context(), pairs, workers)
			if err != nil {
				return err
			}
			fmt.Printf("run %s: %d/%d generated, %d skipped, %d failed (%s)\n",
				result.RunID, result.Generated, result.Requested, result.Skipped, result.Failed, result.Elapsed)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "File of make,model pairs (required)")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default from OUTPUT_DIR)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent reports (default from BATCH_WORKERS)")
	cmd.Flags().BoolVar(&withExcel, "excel", false, "Also write XLSX workbooks")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newGroupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "Print the component-group taxonomy in match order",
		RunE: func(cmd *cobra.Command, args []string) error {
			classifier := grouping.NewClassifier()
			for _, g := range classifier.Groups() {
				fmt.Printf("%-22s %s\n", g, grouping.DisplayName(g))
			}
			return nil
		},
	}
}

// services bundles the wired dependencies shared by the CLI commands.
type services struct {
	reports *app.ReportService
	json    *jsonfile.Exporter
	log     *internal.Logger
}

func wire() (*config.Config, *services, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to fact store: %w", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	jsonExporter, err := jsonfile.NewExporter(cfg.Output.Dir)
	if err != nil {
		db.Close()
		return nil, nil, nil, err
	}

	logger := internal.NewDefaultLogger()
	store := postgres.NewFactsRepository(db)
	reports := app.NewReportService(store, grouping.NewClassifier(), cfg.Analysis, logger)

	cleanup := func() { db.Close() }
	return cfg, &services{reports: reports, json: jsonExporter, log: logger}, cleanup, nil
}

func readPairs(path string) ([]app.Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pairs file: %w", err)
	}
	defer f.Close()

	var pairs []app.Pair
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sep := ","
		if strings.Contains(line, "\t") {
			sep = "\t"
		}
		parts := strings.SplitN(line, sep, 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid pair line: %q", line)
		}
		pairs = append(pairs, app.Pair{
			Make:  strings.TrimSpace(parts[0]),
			Model: strings.TrimSpace(parts[1]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return pairs, nil
}
