package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/common"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/dictionary"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/engine"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/model"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/service"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify transaction descriptions",
		Long: `Classify raw bank transaction descriptions against the merchant
dictionary.

Input comes either from a CSV file of "id,description" rows (use "-" for
stdin) or, with --from-db, from stored transactions that have no
classification yet.

Examples:
  orbi classify --input extrato.csv
  cat extrato.csv | orbi classify --input -
  orbi classify --from-db --limit 500
  orbi classify --input extrato.csv --dry-run`,
		RunE: runClassify,
	}

	cmd.Flags().StringP("input", "i", "", `CSV file of "id,description" rows ("-" for stdin)`)
	cmd.Flags().Bool("from-db", false, "Classify stored transactions without a result")
	cmd.Flags().Int("limit", 0, "Maximum transactions to pull with --from-db (0 = all)")
	cmd.Flags().StringP("user", "u", "", "User whose dictionary overrides apply")
	cmd.Flags().Bool("dry-run", false, "Classify without persisting results")

	_ = viper.BindPFlag("classification.user", cmd.Flags().Lookup("user"))

	return cmd
}

func runClassify(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	input, _ := cmd.Flags().GetString("input")
	fromDB, _ := cmd.Flags().GetBool("from-db")
	limit, _ := cmd.Flags().GetInt("limit")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	userID := viper.GetString("classification.user")

	if input == "" && !fromDB {
		return common.NewUserError("either --input or --from-db is required", nil)
	}

	db, err := openStorage()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
	}()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	var items []engine.BatchItem
	if fromDB {
		transactions, txErr := db.GetTransactionsToClassify(ctx, limit)
		if txErr != nil {
			return fmt.Errorf("failed to load transactions: %w", txErr)
		}
		for _, txn := range transactions {
			items = append(items, engine.BatchItem{ID: txn.ID, RawDescription: txn.RawDescription})
		}
	} else {
		items, err = readBatchCSV(input)
		if err != nil {
			return err
		}
	}

	if len(items) == 0 {
		slog.Info("No transactions to classify")
		return nil
	}

	registry, err := loadRegistry()
	if err != nil {
		return err
	}

	loader := dictionary.NewLoader(db, dictionaryTTL())
	runner := engine.NewBatchRunner(db, loader, registry, engineConfig())
	if dryRun {
		slog.Info("Running in dry-run mode, results will not be persisted")
		runner = engine.NewBatchRunner(nil, loader, registry, engineConfig())
	}

	start := time.Now()
	bar := progressbar.Default(int64(len(items)), "classifying")

	var results []model.ClassificationResult
	canceled := false
	for _, chunk := range chunkItems(items, 100) {
		chunkResults, batchErr := runner.ClassifyBatch(ctx, userID, chunk)
		results = append(results, chunkResults...)
		_ = bar.Add(len(chunk))

		if batchErr != nil {
			if errors.Is(batchErr, context.Canceled) {
				canceled = true
				break
			}
			return fmt.Errorf("classification failed: %w", batchErr)
		}
	}
	_ = bar.Finish()

	printStats(engine.Stats(results, time.Since(start)))

	if canceled {
		slog.Warn("Classification interrupted, partial results persisted")
		return nil
	}

	slog.Info("Classification complete")
	return nil
}

// readBatchCSV reads "id,description" rows from a file or stdin. A header
// row starting with "id" is skipped.
func readBatchCSV(path string) ([]engine.BatchItem, error) {
	var reader io.Reader
	if path == "-" {
		reader = os.Stdin
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input file: %w", err)
		}
		defer func() { _ = file.Close() }()
		reader = file
	}

	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1

	var items []engine.BatchItem
	for {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if len(record) < 2 {
			continue
		}
		if len(items) == 0 && strings.EqualFold(strings.TrimSpace(record[0]), "id") {
			continue
		}
		items = append(items, engine.BatchItem{
			ID:             strings.TrimSpace(record[0]),
			RawDescription: record[1],
		})
	}

	return items, nil
}

// chunkItems splits the batch so progress can be reported between chunks.
func chunkItems(items []engine.BatchItem, size int) [][]engine.BatchItem {
	if size <= 0 {
		size = len(items)
	}
	var chunks [][]engine.BatchItem
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}

func printStats(stats service.BatchStats) {
	fmt.Printf("\nProcessed %d transactions in %s\n", stats.Total, stats.Duration.Round(time.Millisecond))
	fmt.Printf("  classified:   %d\n", stats.Classified)
	fmt.Printf("  unclassified: %d\n", stats.Unclassified)
	fmt.Printf("  rejected:     %d\n", stats.Rejected)
}
