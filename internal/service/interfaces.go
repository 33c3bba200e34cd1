// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Transaction operations
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error)
	GetTransactionsToClassify(ctx context.Context, limit int) ([]model.Transaction, error)

	// Merchant dictionary operations. Writes are performed by the
	// maintenance workflow only; the classification path is read-only.
	FetchAllMerchantEntries(ctx context.Context) ([]model.MerchantEntry, error)
	GetMerchantByName(ctx context.Context, canonicalName, userID string) (*model.MerchantEntry, error)
	SaveMerchant(ctx context.Context, entry *model.MerchantEntry) error
	DeleteMerchant(ctx context.Context, canonicalName, userID string) error

	// Classification operations
	SaveClassification(ctx context.Context, result *model.ClassificationResult) error
	GetClassificationsByStatus(ctx context.Context, status model.ClassificationStatus) ([]model.ClassificationResult, error)
	GetClassificationsByDateRange(ctx context.Context, start, end time.Time) ([]model.ClassificationResult, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// BatchStats shows the results of a classification batch.
type BatchStats struct {
	Total        int
	Classified   int
	Unclassified int
	Rejected     int
	Duration     time.Duration
}
