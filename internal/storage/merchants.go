package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/common"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/model"
)

// FetchAllMerchantEntries returns every dictionary entry with its alias
// set, across both the global and all user-override partitions. This is
// the read interface the classification path depends on.
func (s *SQLiteStorage) FetchAllMerchantEntries(ctx context.Context) ([]model.MerchantEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, canonical_name, category_id, user_id, confidence_base, source, created_at
		FROM merchants
		ORDER BY canonical_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query merchants: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.MerchantEntry
	byID := make(map[int64]int)

	for rows.Next() {
		var entry model.MerchantEntry
		err := rows.Scan(
			&entry.ID,
			&entry.CanonicalName,
			&entry.CategoryID,
			&entry.UserID,
			&entry.ConfidenceBase,
			&entry.Source,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan merchant: %w", err)
		}
		byID[entry.ID] = len(entries)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate merchants: %w", err)
	}

	aliasRows, err := s.db.QueryContext(ctx, `
		SELECT merchant_id, alias
		FROM merchant_aliases
		ORDER BY merchant_id, alias
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query merchant aliases: %w", err)
	}
	defer func() { _ = aliasRows.Close() }()

	for aliasRows.Next() {
		var merchantID int64
		var alias string
		if err := aliasRows.Scan(&merchantID, &alias); err != nil {
			return nil, fmt.Errorf("failed to scan merchant alias: %w", err)
		}
		if i, ok := byID[merchantID]; ok {
			entries[i].Aliases = append(entries[i].Aliases, alias)
		}
	}

	return entries, aliasRows.Err()
}

// GetMerchantByName retrieves one merchant entry by canonical name within
// a partition (empty userID means the global partition).
func (s *SQLiteStorage) GetMerchantByName(ctx context.Context, canonicalName, userID string) (*model.MerchantEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(canonicalName, "canonicalName"); err != nil {
		return nil, err
	}

	var entry model.MerchantEntry
	err := s.db.QueryRowContext(ctx, `
		SELECT id, canonical_name, category_id, user_id, confidence_base, source, created_at
		FROM merchants
		WHERE canonical_name = ? AND user_id = ?
	`, canonicalName, userID).Scan(
		&entry.ID,
		&entry.CanonicalName,
		&entry.CategoryID,
		&entry.UserID,
		&entry.ConfidenceBase,
		&entry.Source,
		&entry.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get merchant: %w", err)
	}

	aliasRows, err := s.db.QueryContext(ctx, `
		SELECT alias FROM merchant_aliases WHERE merchant_id = ? ORDER BY alias
	`, entry.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query aliases: %w", err)
	}
	defer func() { _ = aliasRows.Close() }()

	for aliasRows.Next() {
		var alias string
		if err := aliasRows.Scan(&alias); err != nil {
			return nil, fmt.Errorf("failed to scan alias: %w", err)
		}
		entry.Aliases = append(entry.Aliases, alias)
	}

	return &entry, aliasRows.Err()
}

// SaveMerchant inserts or updates a merchant entry and replaces its alias
// set. Used by the maintenance workflow (seeding, corrections), never by
// the classification path.
func (s *SQLiteStorage) SaveMerchant(ctx context.Context, entry *model.MerchantEntry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateMerchant(entry); err != nil {
		return err
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if entry.Source == "" {
		entry.Source = model.SourceManual
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO merchants (canonical_name, category_id, user_id, confidence_base, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(canonical_name, user_id) DO UPDATE SET
			category_id = excluded.category_id,
			confidence_base = excluded.confidence_base,
			source = excluded.source
	`, entry.CanonicalName, entry.CategoryID, entry.UserID, entry.ConfidenceBase, entry.Source, entry.CreatedAt); err != nil {
		return fmt.Errorf("failed to save merchant: %w", err)
	}

	var merchantID int64
	if err := tx.QueryRowContext(ctx, `
		SELECT id FROM merchants WHERE canonical_name = ? AND user_id = ?
	`, entry.CanonicalName, entry.UserID).Scan(&merchantID); err != nil {
		return fmt.Errorf("failed to resolve merchant id: %w", err)
	}
	entry.ID = merchantID

	if _, err := tx.ExecContext(ctx, `DELETE FROM merchant_aliases WHERE merchant_id = ?`, merchantID); err != nil {
		return fmt.Errorf("failed to clear aliases: %w", err)
	}
	for _, alias := range entry.Aliases {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO merchant_aliases (merchant_id, alias) VALUES (?, ?)
		`, merchantID, alias); err != nil {
			return fmt.Errorf("failed to save alias %q: %w", alias, err)
		}
	}

	return tx.Commit()
}

// DeleteMerchant removes a merchant entry and its aliases.
func (s *SQLiteStorage) DeleteMerchant(ctx context.Context, canonicalName, userID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(canonicalName, "canonicalName"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM merchants WHERE canonical_name = ? AND user_id = ?
	`, canonicalName, userID)
	if err != nil {
		return fmt.Errorf("failed to delete merchant: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return common.ErrNotFound
	}

	return nil
}
