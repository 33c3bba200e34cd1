package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/common"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/model"
)

// SaveTransactions stores a batch of transactions, skipping duplicates by
// hash.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(transactions); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := range transactions {
		txn := &transactions[i]
		if txn.Hash == "" {
			txn.Hash = txn.GenerateHash()
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO transactions (id, hash, date, raw_description, amount, account_id)
			VALUES (?, ?, ?, ?, ?, ?)
		`, txn.ID, txn.Hash, txn.Date, txn.RawDescription, txn.Amount, txn.AccountID); err != nil {
			return fmt.Errorf("failed to save transaction %s: %w", txn.ID, err)
		}
	}

	return tx.Commit()
}

// GetTransactionByID retrieves a single transaction.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var txn model.Transaction
	err := s.db.QueryRowContext(ctx, `
		SELECT id, hash, date, raw_description, amount, COALESCE(account_id, '')
		FROM transactions
		WHERE id = ?
	`, id).Scan(&txn.ID, &txn.Hash, &txn.Date, &txn.RawDescription, &txn.Amount, &txn.AccountID)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return &txn, nil
}

// GetTransactionsToClassify returns transactions without a classification
// result, oldest first. A non-positive limit returns all of them.
func (s *SQLiteStorage) GetTransactionsToClassify(ctx context.Context, limit int) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT t.id, t.hash, t.date, t.raw_description, t.amount, COALESCE(t.account_id, '')
		FROM transactions t
		LEFT JOIN classifications c ON c.transaction_id = t.id
		WHERE c.transaction_id IS NULL
		ORDER BY t.date, t.id
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		if err := rows.Scan(&txn.ID, &txn.Hash, &txn.Date, &txn.RawDescription, &txn.Amount, &txn.AccountID); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, txn)
	}

	return transactions, rows.Err()
}
