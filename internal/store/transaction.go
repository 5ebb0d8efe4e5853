package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/internal/errs"
	"github.com/GregMSThompson/expense-backend/internal/models"
)

type transactionStore struct {
	client *firestore.Client
}

func NewTransactionStore(client *firestore.Client) *transactionStore {
	return &transactionStore{client: client}
}

func (s *transactionStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("transactions")
}

// idempotentDocID derives the document id from the client token. Keying the
// document by the token is what makes (user, token) unique at the storage
// level: two racing first submissions contend on one Create and only one
// can win.
func idempotentDocID(key string) string {
	sum := sha256.Sum256([]byte(key))
	return "idem-" + hex.EncodeToString(sum[:])
}

// Create assigns the transaction id and persists the record. With an
// idempotency key the id is derived from the key and creation fails with
// AlreadyExists if a record for that key is present; without one the id is
// random and every call lands.
func (s *transactionStore) Create(ctx context.Context, uid string, tx *models.Transaction) error {
	if tx.IdempotencyKey != "" {
		tx.TransactionID = idempotentDocID(tx.IdempotencyKey)
	} else {
		tx.TransactionID = uuid.NewString()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}

	_, err := s.collection(uid).Doc(tx.TransactionID).Create(ctx, tx)
	if status.Code(err) == codes.AlreadyExists {
		// Uniqueness-constraint violation: a concurrent submission with the
		// same key won the race.
		return errs.NewAlreadyExistsError("transaction already recorded")
	}
	return err
}

// GetByIdempotencyKey returns nil without error when no transaction carries
// the key.
func (s *transactionStore) GetByIdempotencyKey(ctx context.Context, uid, key string) (*models.Transaction, error) {
	doc, err := s.collection(uid).Doc(idempotentDocID(key)).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var tx models.Transaction
	if err := doc.DataTo(&tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (s *transactionStore) List(ctx context.Context, uid string, dr dto.DateRange) ([]*models.Transaction, error) {
	q := s.collection(uid).Query
	if dr.Bounded() {
		q = q.Where("date", ">=", dr.Start).Where("date", "<=", dr.End)
	}

	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	txs := make([]*models.Transaction, 0, len(docs))
	for _, d := range docs {
		var tx models.Transaction
		if err := d.DataTo(&tx); err != nil {
			return nil, err
		}
		txs = append(txs, &tx)
	}
	return txs, nil
}
