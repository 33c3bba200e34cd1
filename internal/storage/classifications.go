package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/model"
)

// SaveClassification upserts the classification result for a transaction
// and appends an audit row to the history table.
func (s *SQLiteStorage) SaveClassification(ctx context.Context, result *model.ClassificationResult) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateClassification(result); err != nil {
		return err
	}

	if result.ClassifiedAt.IsZero() {
		result.ClassifiedAt = time.Now()
	}

	var merchantID any
	if result.Merchant != nil && result.Merchant.ID != 0 {
		merchantID = result.Merchant.ID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO classifications
			(transaction_id, cleaned_text, channel, noise_removed, merchant_id, category_id, status, confidence, notes, classified_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(transaction_id) DO UPDATE SET
			cleaned_text = excluded.cleaned_text,
			channel = excluded.channel,
			noise_removed = excluded.noise_removed,
			merchant_id = excluded.merchant_id,
			category_id = excluded.category_id,
			status = excluded.status,
			confidence = excluded.confidence,
			notes = excluded.notes,
			classified_at = excluded.classified_at
	`,
		result.TransactionID,
		result.Candidate.Text,
		string(result.Candidate.Context.Channel),
		result.Candidate.NoiseRemoved,
		merchantID,
		result.CategoryID,
		string(result.Status),
		result.Confidence,
		result.Notes,
		result.ClassifiedAt,
	); err != nil {
		return fmt.Errorf("failed to save classification: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO classification_history (transaction_id, category_id, status, confidence)
		VALUES (?, ?, ?, ?)
	`, result.TransactionID, result.CategoryID, string(result.Status), result.Confidence); err != nil {
		return fmt.Errorf("failed to record classification history: %w", err)
	}

	return tx.Commit()
}

// GetClassificationsByStatus returns results with the given terminal
// status, most recent first.
func (s *SQLiteStorage) GetClassificationsByStatus(ctx context.Context, status model.ClassificationStatus) ([]model.ClassificationResult, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT transaction_id, cleaned_text, channel, noise_removed, category_id, status, confidence, notes, classified_at
		FROM classifications
		WHERE status = ?
		ORDER BY classified_at DESC
	`, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to query classifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanClassifications(rows)
}

// GetClassificationsByDateRange returns results classified inside the
// [start, end] window.
func (s *SQLiteStorage) GetClassificationsByDateRange(ctx context.Context, start, end time.Time) ([]model.ClassificationResult, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date %v is before start date %v", ErrInvalidDateRange, end, start)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT transaction_id, cleaned_text, channel, noise_removed, category_id, status, confidence, notes, classified_at
		FROM classifications
		WHERE classified_at BETWEEN ? AND ?
		ORDER BY classified_at
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query classifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanClassifications(rows)
}

func scanClassifications(rows *sql.Rows) ([]model.ClassificationResult, error) {
	var results []model.ClassificationResult
	for rows.Next() {
		var result model.ClassificationResult
		var cleanedText, channel, categoryID, notes sql.NullString
		var noiseRemoved sql.NullInt64

		err := rows.Scan(
			&result.TransactionID,
			&cleanedText,
			&channel,
			&noiseRemoved,
			&categoryID,
			&result.Status,
			&result.Confidence,
			&notes,
			&result.ClassifiedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan classification: %w", err)
		}

		result.Candidate.Text = cleanedText.String
		if channel.Valid && channel.String != "" {
			result.Candidate.Context.Channel = model.Channel(channel.String)
		}
		result.Candidate.NoiseRemoved = int(noiseRemoved.Int64)
		result.CategoryID = categoryID.String
		result.Notes = notes.String

		results = append(results, result)
	}

	return results, rows.Err()
}
