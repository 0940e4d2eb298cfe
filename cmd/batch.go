package main

import (
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/portscout/portscout/internal/batch"
	"github.com/portscout/portscout/internal/fetcher"
	"github.com/portscout/portscout/internal/model"
)

var (
	batchInput       string
	batchColumn      string
	batchSheet       string
	batchOutput      string
	batchLimit       int
	batchConcurrency int
	batchNoHeader    bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score locations from a CSV or XLSX file",
	Long: `Reads candidate locations from a spreadsheet, scores each row
concurrently, and writes results as CSV in input order.

Examples:
  portscout batch --input sites.csv --column "Location URL" --output scored.csv
  portscout batch --input sites.xlsx --sheet Candidates --column 2 --limit 10`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv("batch")
		if err != nil {
			return err
		}

		inputs, err := readInputs()
		if err != nil {
			return err
		}
		zap.L().Info("parsed input file",
			zap.String("file", batchInput),
			zap.Int("rows", len(inputs)),
		)

		if batchLimit > 0 && batchLimit < len(inputs) {
			inputs = inputs[:batchLimit]
		}

		concurrency := batchConcurrency
		if concurrency == 0 {
			concurrency = cfg.Batch.Concurrency
		}

		rows, err := env.newRunner(concurrency).Run(ctx, inputs)
		if err != nil {
			return eris.Wrap(err, "batch: run")
		}
		logBatchSummary(rows)

		out, closeOut, err := openOutput(batchOutput)
		if err != nil {
			return err
		}
		defer closeOut()

		return batch.WriteCSV(out, rows)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchInput, "input", "", "input CSV or XLSX file (required)")
	batchCmd.Flags().StringVar(&batchColumn, "column", "", "location column, by header name or 1-based number (default first column)")
	batchCmd.Flags().StringVar(&batchSheet, "sheet", "", "XLSX sheet name (default first sheet)")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "output CSV file (default stdout)")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max number of rows to score (0 = all)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "concurrent rows (default from config)")
	batchCmd.Flags().BoolVar(&batchNoHeader, "no-header", false, "treat the first row as data, not a header")
	_ = batchCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(batchCmd)
}

// readInputs parses the input file by extension and selects the location
// column.
func readInputs() ([]string, error) {
	var (
		header []string
		rows   [][]string
		err    error
	)

	switch strings.ToLower(filepath.Ext(batchInput)) {
	case ".xlsx":
		header, rows, err = fetcher.ReadXLSX(batchInput, fetcher.XLSXOptions{
			SheetName: batchSheet,
			HasHeader: !batchNoHeader,
		})
	default:
		f, openErr := os.Open(batchInput)
		if openErr != nil {
			return nil, eris.Wrap(openErr, "batch: open input")
		}
		defer f.Close()
		header, rows, err = fetcher.ReadCSV(f, fetcher.CSVOptions{HasHeader: !batchNoHeader})
	}
	if err != nil {
		return nil, err
	}

	return batch.SelectColumn(header, rows, batchColumn)
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, eris.Wrap(err, "batch: create output")
	}
	return f, func() { f.Close() }, nil
}

func logBatchSummary(rows []model.BatchRow) {
	ranks := make(map[model.Rank]int)
	failed := 0
	for _, row := range rows {
		if !row.Resolved() {
			failed++
			continue
		}
		ranks[row.Rank()]++
	}

	zap.L().Info("batch complete",
		zap.Int("total", len(rows)),
		zap.Int("failed", failed),
		zap.Int("rank_s", ranks[model.RankS]),
		zap.Int("rank_a", ranks[model.RankA]),
		zap.Int("rank_b", ranks[model.RankB]),
		zap.Int("rank_c", ranks[model.RankC]),
		zap.Int("rank_d", ranks[model.RankD]),
	)
}
