package model

import "time"

// MerchantSource indicates how a merchant entry was created.
type MerchantSource string

const (
	// SourceSeed indicates the entry came from the curated seed set.
	SourceSeed MerchantSource = "SEED"
	// SourceManual indicates the entry was created via CLI command.
	SourceManual MerchantSource = "MANUAL"
	// SourceConfirmed indicates the entry was confirmed from a classification.
	SourceConfirmed MerchantSource = "CONFIRMED"
)

// MerchantEntry maps a canonical merchant identity to its known aliases and
// default category. Entries with a non-empty UserID belong to that user's
// override partition; entries with an empty UserID are global.
type MerchantEntry struct {
	CreatedAt      time.Time
	CanonicalName  string
	CategoryID     string
	UserID         string
	Source         MerchantSource
	Aliases        []string
	ID             int64
	ConfidenceBase float64
}
