package model

import "time"

// ClassificationStatus indicates the terminal outcome for one transaction.
type ClassificationStatus string

// Classification status constants.
const (
	StatusClassified   ClassificationStatus = "CLASSIFIED"
	StatusUnclassified ClassificationStatus = "UNCLASSIFIED"
	StatusRejected     ClassificationStatus = "REJECTED"
)

// ClassificationResult is the immutable outcome of classifying one
// transaction description. CategoryID is an opaque foreign key resolved by
// an external category catalog.
type ClassificationResult struct {
	ClassifiedAt  time.Time
	TransactionID string
	CategoryID    string
	Notes         string
	Status        ClassificationStatus
	Candidate     CleanedCandidate
	Merchant      *MerchantEntry
	Confidence    float64
}
