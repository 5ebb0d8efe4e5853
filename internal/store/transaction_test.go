package store

import (
	"context"
	"errors"
	"os"
	"testing"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/internal/errs"
	"github.com/GregMSThompson/expense-backend/internal/models"
)

func emulatorClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	client, err := firestore.NewClient(context.Background(), "test-project")
	if err != nil {
		t.Fatalf("firestore client error: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestTransactionCreateWithEmulator(t *testing.T) {
	client := emulatorClient(t)
	ctx := context.Background()

	store := NewTransactionStore(client)
	uid := "create-user"

	tx := &models.Transaction{
		UserID:         uid,
		Amount:         -42,
		Bank:           "HDFC",
		Category:       "Food",
		Date:           "2025-01-10",
		IdempotencyKey: "sms-42",
	}
	if err := store.Create(ctx, uid, tx); err != nil {
		t.Fatalf("create error: %v", err)
	}
	if tx.TransactionID == "" {
		t.Fatal("transaction id not assigned")
	}

	// A second record under the same key must hit the uniqueness constraint.
	dup := &models.Transaction{UserID: uid, Amount: -42, IdempotencyKey: "sms-42"}
	err := store.Create(ctx, uid, dup)
	var exists *errs.AlreadyExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("duplicate create error = %v", err)
	}

	got, err := store.GetByIdempotencyKey(ctx, uid, "sms-42")
	if err != nil {
		t.Fatalf("lookup error: %v", err)
	}
	if got == nil || got.TransactionID != tx.TransactionID {
		t.Fatalf("lookup = %+v, want winner %s", got, tx.TransactionID)
	}

	missing, err := store.GetByIdempotencyKey(ctx, uid, "never-seen")
	if err != nil {
		t.Fatalf("lookup error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown key, got %+v", missing)
	}
}

func TestTransactionCreateWithoutKeyWithEmulator(t *testing.T) {
	client := emulatorClient(t)
	ctx := context.Background()

	store := NewTransactionStore(client)
	uid := "no-key-user"

	first := &models.Transaction{UserID: uid, Amount: -10, Date: "2025-01-10"}
	second := &models.Transaction{UserID: uid, Amount: -10, Date: "2025-01-10"}
	if err := store.Create(ctx, uid, first); err != nil {
		t.Fatalf("create error: %v", err)
	}
	if err := store.Create(ctx, uid, second); err != nil {
		t.Fatalf("create error: %v", err)
	}
	if first.TransactionID == second.TransactionID {
		t.Fatal("keyless submissions must get distinct ids")
	}
}

func TestTransactionListWithEmulator(t *testing.T) {
	client := emulatorClient(t)
	ctx := context.Background()

	store := NewTransactionStore(client)
	uid := "list-user"

	for _, tx := range []*models.Transaction{
		{UserID: uid, Amount: -3, Date: "2025-01-10"},
		{UserID: uid, Amount: -12, Date: "2025-01-15"},
		{UserID: uid, Amount: 100, Date: "2025-02-01"},
	} {
		if err := store.Create(ctx, uid, tx); err != nil {
			t.Fatalf("seed transaction error: %v", err)
		}
	}

	all, err := store.List(ctx, uid, dto.DateRange{})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 results, got %d", len(all))
	}

	january, err := store.List(ctx, uid, dto.DateRange{Start: "2025-01-01", End: "2025-01-31"})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(january) != 2 {
		t.Fatalf("expected 2 results, got %d", len(january))
	}
	for _, tx := range january {
		if tx.Date > "2025-01-31" {
			t.Fatalf("out-of-range transaction: %+v", tx)
		}
	}

	// Half-open ranges are treated as no filter.
	open, err := store.List(ctx, uid, dto.DateRange{Start: "2025-01-01"})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(open) != 3 {
		t.Fatalf("expected 3 results, got %d", len(open))
	}
}
