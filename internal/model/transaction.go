package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Transaction represents a single bank statement line from any source.
type Transaction struct {
	Date           time.Time
	ID             string
	RawDescription string // Bank-generated description, case- and whitespace-irregular
	AccountID      string
	Hash           string
	Amount         float64
}

// GenerateHash creates a unique hash for duplicate detection.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.RawDescription,
		t.AccountID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
