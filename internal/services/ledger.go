package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/internal/errs"
	"github.com/GregMSThompson/expense-backend/internal/models"
	"github.com/GregMSThompson/expense-backend/pkg/logger"
)

type transactionLSStore interface {
	Create(ctx context.Context, uid string, tx *models.Transaction) error
	GetByIdempotencyKey(ctx context.Context, uid, key string) (*models.Transaction, error)
	List(ctx context.Context, uid string, dr dto.DateRange) ([]*models.Transaction, error)
}

type userLSStore interface {
	GetUser(ctx context.Context, uid string) (*models.User, error)
	IncrementBalance(ctx context.Context, uid string, delta float64) (float64, error)
	SetBalance(ctx context.Context, uid string, balance float64) error
}

type ledgerService struct {
	txs      transactionLSStore
	users    userLSStore
	clockNow func() time.Time
}

func NewLedgerService(txs transactionLSStore, users userLSStore) *ledgerService {
	return &ledgerService{
		txs:      txs,
		users:    users,
		clockNow: time.Now,
	}
}

func (s *ledgerService) today() string {
	return s.clockNow().Format("2006-01-02")
}

// RecordTransaction applies a submission exactly once per (user, key) pair.
// A retried submission returns the stored transaction and the current
// balance with no re-application.
func (s *ledgerService) RecordTransaction(ctx context.Context, uid string, req dto.TransactionRequest) (dto.TransactionResponse, error) {
	log := logger.FromContext(ctx)

	key := strings.TrimSpace(req.IdempotencyKey)
	if key != "" {
		existing, err := s.txs.GetByIdempotencyKey(ctx, uid, key)
		if err != nil {
			return dto.TransactionResponse{}, errs.NewDatabaseError("idempotency lookup", err.Error())
		}
		if existing != nil {
			return s.alreadyRecorded(ctx, uid, existing)
		}
	}

	tx := &models.Transaction{
		UserID:         uid,
		Amount:         req.Amount,
		Bank:           req.Bank,
		Account:        req.Account,
		Receiver:       req.Receiver,
		Category:       req.Category,
		Date:           req.Date,
		IdempotencyKey: key,
		CreatedAt:      s.clockNow(),
	}
	if strings.TrimSpace(tx.Date) == "" {
		tx.Date = s.today()
	}
	if strings.TrimSpace(tx.Category) == "" {
		tx.Category = "Other"
	}

	if err := s.txs.Create(ctx, uid, tx); err != nil {
		var conflict *errs.AlreadyExistsError
		if key != "" && errors.As(err, &conflict) {
			// Lost the race against a concurrent submission with the same
			// key: return the winning record, do not touch the balance.
			winner, err := s.txs.GetByIdempotencyKey(ctx, uid, key)
			if err != nil || winner == nil {
				return dto.TransactionResponse{}, errs.NewDatabaseError("idempotency conflict recheck", "conflicting transaction not readable")
			}
			return s.alreadyRecorded(ctx, uid, winner)
		}
		return dto.TransactionResponse{}, errs.NewDatabaseError("create transaction", err.Error())
	}

	// Create-then-increment: if the increment fails the transaction record
	// stays intact for later reconciliation via the balance override.
	newBalance, err := s.users.IncrementBalance(ctx, uid, req.Amount)
	if err != nil {
		log.Error("balance increment failed after create", "transaction_id", tx.TransactionID, "error", err)
		return dto.TransactionResponse{}, errs.NewDatabaseError("increment balance", err.Error())
	}

	log.Info("transaction recorded", "transaction_id", tx.TransactionID, "amount", req.Amount)
	return dto.TransactionResponse{
		Success:    true,
		Message:    "Expense saved and balance updated",
		Expense:    tx,
		NewBalance: newBalance,
	}, nil
}

func (s *ledgerService) alreadyRecorded(ctx context.Context, uid string, tx *models.Transaction) (dto.TransactionResponse, error) {
	balance, err := s.currentBalance(ctx, uid)
	if err != nil {
		return dto.TransactionResponse{}, err
	}

	log := logger.FromContext(ctx)
	log.Info("transaction already recorded", "transaction_id", tx.TransactionID)
	return dto.TransactionResponse{
		Success:    true,
		Message:    "Already recorded",
		Expense:    tx,
		NewBalance: balance,
	}, nil
}

func (s *ledgerService) ListTransactions(ctx context.Context, uid string, dr dto.DateRange) (dto.ListTransactionsResponse, error) {
	txs, err := s.txs.List(ctx, uid, dr)
	if err != nil {
		return dto.ListTransactionsResponse{}, errs.NewDatabaseError("list transactions", err.Error())
	}
	if txs == nil {
		txs = []*models.Transaction{}
	}
	return dto.ListTransactionsResponse{Success: true, Expenses: txs}, nil
}

// Summarize recomputes the aggregates from the filtered history on every
// call; it is independent of the incrementally maintained balance. Amounts
// above zero count as income, everything else (zero included) as expense.
func (s *ledgerService) Summarize(ctx context.Context, uid string, dr dto.DateRange) (dto.SummaryResponse, error) {
	txs, err := s.txs.List(ctx, uid, dr)
	if err != nil {
		return dto.SummaryResponse{}, errs.NewDatabaseError("summarize transactions", err.Error())
	}

	result := dto.SummaryResponse{Success: true}
	today := s.today()

	for _, tx := range txs {
		if tx.Amount > 0 {
			result.TotalIncome += tx.Amount
			continue
		}
		abs := -tx.Amount
		result.TotalExpense += abs
		if tx.Date == today {
			result.TodaysExpense += abs
		}
	}

	return result, nil
}

func (s *ledgerService) GetBalance(ctx context.Context, uid string) (dto.BalanceResponse, error) {
	balance, err := s.currentBalance(ctx, uid)
	if err != nil {
		return dto.BalanceResponse{}, err
	}
	return dto.BalanceResponse{Success: true, Balance: balance}, nil
}

// SetBalance is the one operation allowed to break the
// balance-equals-sum-of-amounts invariant: it replaces the balance with no
// compensating transaction record. Accepts a JSON number or a numeric
// string.
func (s *ledgerService) SetBalance(ctx context.Context, uid string, value any) (dto.SetBalanceResponse, error) {
	var balance float64
	switch v := value.(type) {
	case float64:
		balance = v
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return dto.SetBalanceResponse{}, errs.NewValidationError("Missing or invalid 'balance' field")
		}
		balance = parsed
	default:
		return dto.SetBalanceResponse{}, errs.NewValidationError("Missing or invalid 'balance' field")
	}

	if err := s.users.SetBalance(ctx, uid, balance); err != nil {
		return dto.SetBalanceResponse{}, errs.NewDatabaseError("set balance", err.Error())
	}

	log := logger.FromContext(ctx)
	log.Warn("balance overridden", "balance", balance)
	return dto.SetBalanceResponse{Success: true, Message: "Balance updated", Balance: balance}, nil
}

func (s *ledgerService) currentBalance(ctx context.Context, uid string) (float64, error) {
	user, err := s.users.GetUser(ctx, uid)
	if err != nil {
		return 0, errs.NewDatabaseError("get balance", err.Error())
	}
	return user.BankBalance, nil
}
