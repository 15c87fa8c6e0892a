package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/datascope-io/datascope/pkg/config"
	"github.com/datascope-io/datascope/pkg/insight"
	"github.com/datascope-io/datascope/pkg/logger"
	csvsource "github.com/datascope-io/datascope/pkg/source/csv"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	root := &cobra.Command{
		Use:   "datascope",
		Short: "Datascope - streaming column statistics for tabular datasets",
		Long: `Datascope profiles tabular datasets without loading them into memory.
It streams row batches from a CSV file and folds every cell into per-column
statistics: numeric range and mean, empty/whitespace/null-like counts and a
bounded sample of distinct values.`,
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Datascope v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	var (
		configFile     string
		inputFile      string
		outputFile     string
		batchSize      int
		workers        int
		maxCapture     int
		captureColumns []int
		nullLike       []string
		noHeader       bool
		delimiter      string
		logLevel       string
		timeout        time.Duration
	)

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a CSV dataset and emit a per-column statistics report",
		Long: `Analyze streams a CSV file (optionally gzip-compressed) batch by batch and
prints a JSON report with one entry per column.

Example:
  datascope analyze --input orders.csv.gz --capture-columns 0,3 --null-like "n/a,null"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(analyzeParams{
				configFile:     configFile,
				inputFile:      inputFile,
				outputFile:     outputFile,
				batchSize:      batchSize,
				workers:        workers,
				maxCapture:     maxCapture,
				captureColumns: captureColumns,
				nullLike:       nullLike,
				noHeader:       noHeader,
				delimiter:      delimiter,
				logLevel:       logLevel,
				timeout:        timeout,
			})
		},
	}

	analyzeCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Path to the CSV file, .gz accepted (required)")
	_ = analyzeCmd.MarkFlagRequired("input")

	analyzeCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to a YAML config file; flags override its values")
	analyzeCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the JSON report to this file instead of stdout")
	analyzeCmd.Flags().IntVar(&batchSize, "batch-size", 1000, "Rows per batch pulled from the reader")
	analyzeCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "Column-parallel workers per batch")
	analyzeCmd.Flags().IntVar(&maxCapture, "max-capture", config.DefaultMaxCaptureCount, "Bound on distinct values sampled per captured column")
	analyzeCmd.Flags().IntSliceVar(&captureColumns, "capture-columns", nil, "Zero-based column indices that sample distinct values")
	analyzeCmd.Flags().StringSliceVar(&nullLike, "null-like", []string{"null", "n/a", "na", "none", "nil"}, "Values treated as missing (case-insensitive, trimmed)")
	analyzeCmd.Flags().BoolVar(&noHeader, "no-header", false, "Treat the first row as data and name columns column_N")
	analyzeCmd.Flags().StringVar(&delimiter, "delimiter", ",", "Field delimiter")
	analyzeCmd.Flags().StringVar(&logLevel, "log-level", "error", "Log level (debug, info, warn, error)")
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Minute, "Analysis timeout")

	root.AddCommand(analyzeCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type analyzeParams struct {
	configFile     string
	inputFile      string
	outputFile     string
	batchSize      int
	workers        int
	maxCapture     int
	captureColumns []int
	nullLike       []string
	noHeader       bool
	delimiter      string
	logLevel       string
	timeout        time.Duration
}

func runAnalyze(p analyzeParams) error {
	cfg := config.NewDefault(p.inputFile)
	if p.configFile != "" {
		if err := config.Load(p.configFile, cfg); err != nil {
			return err
		}
	}
	cfg.Performance.BatchSize = p.batchSize
	cfg.Performance.Workers = p.workers
	cfg.Analysis.MaxCaptureCount = p.maxCapture
	if len(p.captureColumns) > 0 {
		cfg.Analysis.CaptureColumns = p.captureColumns
	}
	if len(p.nullLike) > 0 {
		cfg.Analysis.NullLikeValues = p.nullLike
	}
	cfg.Observability.LogLevel = p.logLevel
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := logger.Init(logger.Config{
		Level:    cfg.Observability.LogLevel,
		Encoding: "console",
	}); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	var comma rune
	if p.delimiter != "" {
		runes := []rune(p.delimiter)
		if len(runes) != 1 {
			return fmt.Errorf("delimiter must be a single character, got %q", p.delimiter)
		}
		comma = runes[0]
	}

	reader, err := csvsource.NewReader(csvsource.Options{
		Path:      p.inputFile,
		BatchSize: cfg.Performance.BatchSize,
		Comma:     comma,
		HasHeader: !p.noHeader,
		Logger:    log,
	})
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	start := time.Now()
	opts := insight.FromConfig(cfg)
	opts.Logger = log

	analysis, err := insight.AnalyzeDataset(ctx, reader, opts)
	if err != nil {
		return err
	}

	log.Info("analysis finished",
		zap.Int64("rows", analysis.RowsSeen()),
		zap.Int("columns", len(analysis.Columns)),
		zap.Duration("elapsed", time.Since(start)))

	return writeReport(analysis, p.outputFile)
}

func writeReport(analysis *insight.DataAnalysis, outputFile string) error {
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if outputFile == "" {
		fmt.Println(string(data))
		return nil
	}
	if !strings.HasSuffix(outputFile, ".json") {
		outputFile += ".json"
	}
	return os.WriteFile(outputFile, data, 0o644)
}
