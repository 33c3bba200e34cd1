package dictionary

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/common"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/model"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/service"
)

// DefaultCacheTTL bounds how stale a warm dictionary cache may get in a
// long-lived service before the next batch forces a refresh.
const DefaultCacheTTL = 5 * time.Minute

// Loader fetches merchant entries from storage and caches them for reuse
// across batches, so a batch never pays N sequential fetches.
type Loader struct {
	expiry  time.Time
	storage service.Storage
	entries []model.MerchantEntry
	ttl     time.Duration
	mu      sync.Mutex
}

// NewLoader creates a loader over the given storage. A non-positive ttl
// falls back to DefaultCacheTTL.
func NewLoader(storage service.Storage, ttl time.Duration) *Loader {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Loader{storage: storage, ttl: ttl}
}

// Snapshot returns a dictionary snapshot for userID, fetching entries from
// storage if the cache is cold or expired. The fetch is retried once; after
// the retry budget the caller gets ErrDictionaryUnavailable and decides how
// to degrade.
func (l *Loader) Snapshot(ctx context.Context, userID string) (*Snapshot, error) {
	entries, err := l.fetchEntries(ctx)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(entries, userID), nil
}

func (l *Loader) fetchEntries(ctx context.Context) ([]model.MerchantEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.entries != nil && time.Now().Before(l.expiry) {
		return l.entries, nil
	}

	var entries []model.MerchantEntry
	err := common.WithRetry(ctx, func() error {
		var fetchErr error
		entries, fetchErr = l.storage.FetchAllMerchantEntries(ctx)
		return fetchErr
	}, service.RetryOptions{
		MaxAttempts:  2, // one retry for transient fetch failures
		InitialDelay: 250 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2.0,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDictionaryUnavailable, err)
	}

	common.LogDebug("Merchant dictionary refreshed", common.Fields{"entries": len(entries)})

	l.entries = entries
	l.expiry = time.Now().Add(l.ttl)
	return entries, nil
}

// Invalidate drops the cached entries so the next Snapshot call refetches.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
	l.expiry = time.Time{}
}
