package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/common"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/model"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/testutil"
)

func sampleTransaction(id string) model.Transaction {
	return model.Transaction{
		ID:             id,
		Date:           time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		RawDescription: "PIX ENVIADO CACAU SHOW BR",
		Amount:         -42.50,
		AccountID:      "acc-1",
	}
}

func TestSQLiteStorage_SaveAndGetTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	txn := sampleTransaction("txn-1")
	if err := db.SaveTransactions(ctx, []model.Transaction{txn}); err != nil {
		t.Fatalf("SaveTransactions() error: %v", err)
	}

	got, err := db.GetTransactionByID(ctx, "txn-1")
	if err != nil {
		t.Fatalf("GetTransactionByID() error: %v", err)
	}

	if got.RawDescription != txn.RawDescription {
		t.Errorf("RawDescription = %q, want %q", got.RawDescription, txn.RawDescription)
	}
	if got.Amount != txn.Amount {
		t.Errorf("Amount = %v, want %v", got.Amount, txn.Amount)
	}
	if got.AccountID != txn.AccountID {
		t.Errorf("AccountID = %q, want %q", got.AccountID, txn.AccountID)
	}
	if got.Hash == "" {
		t.Error("Hash was not filled in on save")
	}
}

func TestSQLiteStorage_GetTransactionByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)

	_, err := db.GetTransactionByID(context.Background(), "missing")
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("GetTransactionByID() error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStorage_TransactionDeduplication(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	txn := sampleTransaction("txn-1")
	for i := 0; i < 3; i++ {
		if err := db.SaveTransactions(ctx, []model.Transaction{txn}); err != nil {
			t.Fatalf("SaveTransactions() attempt %d error: %v", i, err)
		}
	}

	pending, err := db.GetTransactionsToClassify(ctx, 0)
	if err != nil {
		t.Fatalf("GetTransactionsToClassify() error: %v", err)
	}
	if len(pending) != 1 {
		t.Errorf("got %d transactions, want 1 after deduplication", len(pending))
	}
}

func TestSQLiteStorage_GetTransactionsToClassify(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	older := sampleTransaction("txn-older")
	older.Date = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := sampleTransaction("txn-newer")
	newer.Date = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	newer.RawDescription = "COMPRA CARTAO DEBITO UBER"

	if err := db.SaveTransactions(ctx, []model.Transaction{newer, older}); err != nil {
		t.Fatalf("SaveTransactions() error: %v", err)
	}

	pending, err := db.GetTransactionsToClassify(ctx, 0)
	if err != nil {
		t.Fatalf("GetTransactionsToClassify() error: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("got %d pending transactions, want 2", len(pending))
	}
	if pending[0].ID != "txn-older" {
		t.Errorf("first pending = %q, want oldest first", pending[0].ID)
	}

	// Classifying one removes it from the pending set.
	err = db.SaveClassification(ctx, &model.ClassificationResult{
		TransactionID: "txn-older",
		Status:        model.StatusClassified,
		CategoryID:    "alimentacao",
		Confidence:    0.9,
	})
	if err != nil {
		t.Fatalf("SaveClassification() error: %v", err)
	}

	pending, err = db.GetTransactionsToClassify(ctx, 0)
	if err != nil {
		t.Fatalf("GetTransactionsToClassify() error: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "txn-newer" {
		t.Errorf("pending after classification = %v, want only txn-newer", pending)
	}
}

func TestSQLiteStorage_GetTransactionsToClassify_Limit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	var batch []model.Transaction
	for _, id := range []string{"a", "b", "c"} {
		txn := sampleTransaction("txn-" + id)
		txn.RawDescription = "LOJA " + id
		batch = append(batch, txn)
	}
	if err := db.SaveTransactions(ctx, batch); err != nil {
		t.Fatalf("SaveTransactions() error: %v", err)
	}

	pending, err := db.GetTransactionsToClassify(ctx, 2)
	if err != nil {
		t.Fatalf("GetTransactionsToClassify() error: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("got %d transactions, want limit of 2", len(pending))
	}
}

func TestSQLiteStorage_SaveTransactions_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	if err := db.SaveTransactions(ctx, nil); err == nil {
		t.Error("nil slice accepted")
	}
	if err := db.SaveTransactions(ctx, []model.Transaction{}); err == nil {
		t.Error("empty slice accepted")
	}
	if err := db.SaveTransactions(ctx, []model.Transaction{{ID: "no-date"}}); err == nil {
		t.Error("invalid transaction accepted")
	}
}
