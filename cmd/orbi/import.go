package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/common"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/ofx"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.ofx>",
		Short: "Import transactions from an OFX/QFX statement",
		Long: `Import bank statement transactions from an OFX/QFX file into the local
database. Imported transactions are deduplicated by hash and classified
later with "orbi classify --from-db".`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open OFX file: %w", err)
	}
	defer func() { _ = file.Close() }()

	parser := ofx.NewParser()
	transactions, err := parser.ParseFile(ctx, file)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if len(transactions) == 0 {
		slog.Info("No transactions found in file", "file", path)
		return nil
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

	if err := db.SaveTransactions(ctx, transactions); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}

	common.LogInfo("Import complete", common.Fields{
		"file":         path,
		"transactions": len(transactions),
	})
	return nil
}
