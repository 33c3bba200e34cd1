package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/common"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/dictionary"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/model"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/storage"
)

func merchantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merchants",
		Short: "Maintain the merchant dictionary",
		Long: `Maintain the merchant dictionary consulted by classification.

These commands are the maintenance workflow: the classification path
itself only ever reads the dictionary.`,
	}

	cmd.AddCommand(merchantsListCmd())
	cmd.AddCommand(merchantsAddCmd())
	cmd.AddCommand(merchantsRemoveCmd())
	cmd.AddCommand(merchantsSeedCmd())

	return cmd
}

func merchantsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all merchant entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openMigratedStorage(cmd)
			if err != nil {
				return err
			}
			defer closeStorage(db)

			entries, err := db.FetchAllMerchantEntries(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch merchants: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println("No merchant entries.")
				return nil
			}

			for _, entry := range entries {
				partition := "global"
				if entry.UserID != "" {
					partition = "user:" + entry.UserID
				}
				fmt.Printf("%-30s  %-20s  %.2f  [%s]", entry.CanonicalName, entry.CategoryID, entry.ConfidenceBase, partition)
				if len(entry.Aliases) > 0 {
					fmt.Printf("  aliases: %s", strings.Join(entry.Aliases, ", "))
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func merchantsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <canonical-name>",
		Short: "Add or update a merchant entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, _ := cmd.Flags().GetString("category")
			aliases, _ := cmd.Flags().GetStringSlice("alias")
			userID, _ := cmd.Flags().GetString("user")
			confidence, _ := cmd.Flags().GetFloat64("confidence")

			if category == "" {
				return fmt.Errorf("--category is required")
			}

			db, err := openMigratedStorage(cmd)
			if err != nil {
				return err
			}
			defer closeStorage(db)

			entry := &model.MerchantEntry{
				CanonicalName:  args[0],
				CategoryID:     category,
				UserID:         userID,
				Aliases:        aliases,
				ConfidenceBase: confidence,
				Source:         model.SourceManual,
			}

			if err := db.SaveMerchant(cmd.Context(), entry); err != nil {
				return fmt.Errorf("failed to save merchant: %w", err)
			}

			slog.Info("Merchant saved", "name", entry.CanonicalName, "category", entry.CategoryID)
			return nil
		},
	}

	cmd.Flags().StringP("category", "c", "", "Category identifier for the merchant")
	cmd.Flags().StringSliceP("alias", "a", nil, "Alias for the merchant (repeatable)")
	cmd.Flags().StringP("user", "u", "", "Owner of the override entry (empty = global)")
	cmd.Flags().Float64("confidence", 0.8, "Base confidence for dictionary matches")

	return cmd
}

func merchantsRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <canonical-name>",
		Short: "Remove a merchant entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, _ := cmd.Flags().GetString("user")

			db, err := openMigratedStorage(cmd)
			if err != nil {
				return err
			}
			defer closeStorage(db)

			if err := db.DeleteMerchant(cmd.Context(), args[0], userID); err != nil {
				return fmt.Errorf("failed to remove merchant: %w", err)
			}

			slog.Info("Merchant removed", "name", args[0])
			return nil
		},
	}

	cmd.Flags().StringP("user", "u", "", "Owner of the override entry (empty = global)")

	return cmd
}

func merchantsSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Seed the dictionary from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := dictionary.ParseSeedFile(args[0])
			if err != nil {
				return err
			}

			db, err := openMigratedStorage(cmd)
			if err != nil {
				return err
			}
			defer closeStorage(db)

			saved := 0
			for i := range entries {
				if err := db.SaveMerchant(cmd.Context(), &entries[i]); err != nil {
					slog.Error("Failed to seed merchant",
						"name", entries[i].CanonicalName,
						"error", err)
					continue
				}
				saved++
			}

			slog.Info("Dictionary seeded", "file", args[0], "saved", saved, "total", len(entries))
			return nil
		},
	}
}

func openMigratedStorage(cmd *cobra.Command) (*storage.SQLiteStorage, error) {
	db, err := openStorage()
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(cmd.Context()); err != nil {
		closeStorage(db)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

func closeStorage(db *storage.SQLiteStorage) {
	if err := db.Close(); err != nil {
		common.LogError(err, "Failed to close database", nil)
	}
}
