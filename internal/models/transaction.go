package models

import (
	"time"
)

// Transaction is immutable once written. Amount sign encodes direction:
// positive is income, negative (or zero) is expense.
type Transaction struct {
	TransactionID  string    `firestore:"transactionId" json:"transactionId"`
	UserID         string    `firestore:"userId" json:"userId"`
	Amount         float64   `firestore:"amount" json:"amount"`
	Bank           string    `firestore:"bank" json:"bank,omitempty"`
	Account        string    `firestore:"account" json:"account,omitempty"`
	Receiver       string    `firestore:"receiver" json:"receiver,omitempty"`
	Category       string    `firestore:"category" json:"category"`
	Date           string    `firestore:"date" json:"date"` // YYYY-MM-DD
	IdempotencyKey string    `firestore:"idempotencyKey" json:"idempotencyKey,omitempty"`
	CreatedAt      time.Time `firestore:"createdAt" json:"createdAt"`
}
