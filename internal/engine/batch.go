package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/common"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/dictionary"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/model"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/noise"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/service"
)

// ErrNilBatch is returned for a nil input sequence; it is the only contract
// violation the batch boundary reports as an error.
var ErrNilBatch = errors.New("batch must not be nil")

// BatchItem is one transaction at the batch invocation boundary. The
// surrounding transport (CLI, HTTP handler, queue consumer) adapts to this
// shape.
type BatchItem struct {
	ID             string
	RawDescription string
}

// BatchRunner fans per-transaction classification out over a bounded worker
// pool and persists the results. Per-item failures never abort the batch.
type BatchRunner struct {
	storage  service.Storage
	loader   *dictionary.Loader
	registry *noise.Registry
	config   Config
}

// NewBatchRunner creates a batch runner. storage may be nil for dry runs;
// results are then returned without being persisted.
func NewBatchRunner(storage service.Storage, loader *dictionary.Loader, registry *noise.Registry, config Config) *BatchRunner {
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultConfig().Concurrency
	}
	if config.DictionaryTimeout <= 0 {
		config.DictionaryTimeout = DefaultConfig().DictionaryTimeout
	}
	if config.PersistTimeout <= 0 {
		config.PersistTimeout = DefaultConfig().PersistTimeout
	}
	return &BatchRunner{
		storage:  storage,
		loader:   loader,
		registry: registry,
		config:   config,
	}
}

// ClassifyBatch classifies every item and returns one result per input in
// input order, even though classification completes out of order
// internally. The dictionary is loaded once per invocation; total
// unavailability degrades every item to UNCLASSIFIED with a diagnostic
// note instead of failing the batch. On cancellation the results of
// already-completed items survive and are returned alongside ctx.Err().
func (r *BatchRunner) ClassifyBatch(ctx context.Context, userID string, items []BatchItem) ([]model.ClassificationResult, error) {
	if items == nil {
		return nil, ErrNilBatch
	}

	results := make([]model.ClassificationResult, len(items))
	if len(items) == 0 {
		return results, nil
	}

	slog.Info("Starting classification batch",
		"items", len(items),
		"concurrency", r.config.Concurrency)

	dictCtx, cancel := context.WithTimeout(ctx, r.config.DictionaryTimeout)
	snapshot, err := r.loader.Snapshot(dictCtx, userID)
	cancel()
	if err != nil {
		slog.Error("Merchant dictionary unavailable, degrading batch", "error", err)
		now := time.Now()
		for i, item := range items {
			results[i] = model.ClassificationResult{
				TransactionID: item.ID,
				Status:        model.StatusUnclassified,
				Notes:         "dictionary unavailable: " + err.Error(),
				ClassifiedAt:  now,
			}
		}
		r.persist(ctx, results)
		return results, nil
	}

	classifier := NewClassifier(r.registry, snapshot, r.config)

	// Results are collected by input index, not completion order, so the
	// returned sequence always lines up with the input.
	var group errgroup.Group
	group.SetLimit(r.config.Concurrency)

	for i := range items {
		if ctx.Err() != nil {
			break
		}
		i := i
		group.Go(func() error {
			results[i] = r.classifyItem(classifier, items[i])
			return nil
		})
	}
	_ = group.Wait()

	// Items never started because of cancellation still get a result so
	// the sequence stays complete and order-preserving.
	for i, item := range items {
		if results[i].Status == "" {
			results[i] = model.ClassificationResult{
				TransactionID: item.ID,
				Status:        model.StatusUnclassified,
				Notes:         "batch canceled before classification",
				ClassifiedAt:  time.Now(),
			}
		}
	}

	r.persist(ctx, results)

	if err := ctx.Err(); err != nil {
		slog.Warn("Batch canceled, returning partial results", "items", len(items))
		return results, err
	}

	return results, nil
}

// classifyItem guards one classification call. An unexpected fault inside
// the pipeline is caught here and surfaced as a rejection for that item
// only, never aborting siblings.
func (r *BatchRunner) classifyItem(classifier *Classifier, item BatchItem) (result model.ClassificationResult) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("Pipeline fault during classification",
				"transaction_id", item.ID,
				"panic", rec)
			result = model.ClassificationResult{
				TransactionID: item.ID,
				Status:        model.StatusRejected,
				Notes:         fmt.Sprintf("internal pipeline fault: %v", rec),
				ClassifiedAt:  time.Now(),
			}
		}
	}()

	return classifier.Classify(item.ID, item.RawDescription)
}

// persist writes results item by item. Completed results are written even
// when the batch context is already canceled; item-level write failures are
// logged and skipped.
func (r *BatchRunner) persist(ctx context.Context, results []model.ClassificationResult) {
	if r.storage == nil {
		return
	}

	for i := range results {
		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.config.PersistTimeout)
		err := common.WithRetry(writeCtx, func() error {
			return r.storage.SaveClassification(writeCtx, &results[i])
		}, service.RetryOptions{
			MaxAttempts:  2,
			InitialDelay: 200 * time.Millisecond,
			MaxDelay:     time.Second,
			Multiplier:   2.0,
		})
		cancel()
		if err != nil {
			slog.Error("Failed to persist classification",
				"transaction_id", results[i].TransactionID,
				"error", err)
		}
	}
}

// Stats summarizes a result sequence for reporting.
func Stats(results []model.ClassificationResult, duration time.Duration) service.BatchStats {
	stats := service.BatchStats{Total: len(results), Duration: duration}
	for _, result := range results {
		switch result.Status {
		case model.StatusClassified:
			stats.Classified++
		case model.StatusUnclassified:
			stats.Unclassified++
		case model.StatusRejected:
			stats.Rejected++
		}
	}
	return stats
}
