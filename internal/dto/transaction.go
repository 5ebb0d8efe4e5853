package dto

import (
	"github.com/GregMSThompson/expense-backend/internal/models"
)

type TransactionRequest struct {
	Amount         float64 `json:"amount"`
	Bank           string  `json:"bank"`
	Account        string  `json:"account"`
	Receiver       string  `json:"receiver"`
	Category       string  `json:"category"`
	Date           string  `json:"date"`
	IdempotencyKey string  `json:"idempotencyKey"`
}

type TransactionResponse struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message"`
	Expense    *models.Transaction `json:"expense"`
	NewBalance float64             `json:"newBalance"`
}

type ListTransactionsResponse struct {
	Success  bool                  `json:"success"`
	Expenses []*models.Transaction `json:"expenses"`
}

// DateRange filters listings when both bounds are supplied, inclusive on
// both ends. A half-open range is treated as no filter.
type DateRange struct {
	Start string
	End   string
}

func (r DateRange) Bounded() bool {
	return r.Start != "" && r.End != ""
}

type SummaryResponse struct {
	Success       bool    `json:"success"`
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpense  float64 `json:"totalExpense"`
	TodaysExpense float64 `json:"todaysExpense"`
}
