// Package storage provides the data persistence layer for the application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/model"
)

// Validation errors.
var (
	ErrNilContext            = errors.New("context cannot be nil")
	ErrEmptyString           = errors.New("string parameter cannot be empty")
	ErrNilParameter          = errors.New("parameter cannot be nil")
	ErrEmptySlice            = errors.New("slice cannot be empty")
	ErrInvalidDateRange      = errors.New("start date must be before end date")
	ErrInvalidStatus         = errors.New("invalid classification status")
	ErrInvalidTransaction    = errors.New("invalid transaction")
	ErrInvalidMerchant       = errors.New("invalid merchant entry")
	ErrInvalidClassification = errors.New("invalid classification result")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTransactions validates a slice of transactions.
func validateTransactions(transactions []model.Transaction) error {
	if transactions == nil {
		return fmt.Errorf("%w: transactions", ErrNilParameter)
	}
	if len(transactions) == 0 {
		return fmt.Errorf("%w: transactions", ErrEmptySlice)
	}

	for i, txn := range transactions {
		if err := validateTransaction(&txn); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}
	return nil
}

// validateTransaction validates a single transaction.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTransaction)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	if txn.RawDescription == "" {
		return fmt.Errorf("%w: missing raw description", ErrInvalidTransaction)
	}
	return nil
}

// validateMerchant validates a merchant entry.
func validateMerchant(entry *model.MerchantEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: merchant", ErrNilParameter)
	}
	if strings.TrimSpace(entry.CanonicalName) == "" {
		return fmt.Errorf("%w: missing canonical name", ErrInvalidMerchant)
	}
	if strings.TrimSpace(entry.CategoryID) == "" {
		return fmt.Errorf("%w: missing category ID", ErrInvalidMerchant)
	}
	if entry.ConfidenceBase < 0 || entry.ConfidenceBase > 1 {
		return fmt.Errorf("%w: confidence base must be between 0 and 1", ErrInvalidMerchant)
	}
	return nil
}

// validateClassification validates a classification result.
func validateClassification(result *model.ClassificationResult) error {
	if result == nil {
		return fmt.Errorf("%w: classification", ErrNilParameter)
	}
	if result.TransactionID == "" {
		return fmt.Errorf("%w: missing transaction ID", ErrInvalidClassification)
	}

	switch result.Status {
	case model.StatusClassified,
		model.StatusUnclassified,
		model.StatusRejected:
		// Valid status
	default:
		return fmt.Errorf("%w: %s", ErrInvalidStatus, result.Status)
	}

	if result.Confidence < 0 || result.Confidence > 1 {
		return fmt.Errorf("%w: confidence must be between 0 and 1", ErrInvalidClassification)
	}

	return nil
}
