package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/internal/middleware"
	"github.com/GregMSThompson/expense-backend/internal/response"
)

type LedgerService interface {
	RecordTransaction(ctx context.Context, uid string, req dto.TransactionRequest) (dto.TransactionResponse, error)
	ListTransactions(ctx context.Context, uid string, dr dto.DateRange) (dto.ListTransactionsResponse, error)
	Summarize(ctx context.Context, uid string, dr dto.DateRange) (dto.SummaryResponse, error)
	GetBalance(ctx context.Context, uid string) (dto.BalanceResponse, error)
	SetBalance(ctx context.Context, uid string, value any) (dto.SetBalanceResponse, error)
}

type transactionHandlers struct {
	ResponseHandler response.ResponseHandler
	LedgerSvc       LedgerService
	Middleware      *middleware.Middleware
}

func NewTransactionHandlers(deps *Deps) *transactionHandlers {
	return &transactionHandlers{
		ResponseHandler: deps.ResponseHandler,
		LedgerSvc:       deps.LedgerSvc,
		Middleware:      deps.Middleware,
	}
}

// TransactionRoutes are all balance-reading or balance-mutating, so the
// whole group sits behind the session gate.
func (h *transactionHandlers) TransactionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.Middleware.Auth)
	r.Post("/", h.Record)
	r.Get("/", h.List)
	r.Get("/summary", h.Summary)
	r.Get("/balance", h.GetBalance)
	r.Post("/balance", h.SetBalance)
	return r
}

func (h *transactionHandlers) Record(w http.ResponseWriter, r *http.Request) {
	var req dto.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	uid := middleware.UID(r.Context())
	resp, err := h.LedgerSvc.RecordTransaction(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *transactionHandlers) List(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	resp, err := h.LedgerSvc.ListTransactions(r.Context(), uid, dateRangeFromQuery(r))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *transactionHandlers) Summary(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	resp, err := h.LedgerSvc.Summarize(r.Context(), uid, dateRangeFromQuery(r))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *transactionHandlers) GetBalance(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	resp, err := h.LedgerSvc.GetBalance(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *transactionHandlers) SetBalance(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	uid := middleware.UID(r.Context())
	resp, err := h.LedgerSvc.SetBalance(r.Context(), uid, payload["balance"])
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func dateRangeFromQuery(r *http.Request) dto.DateRange {
	return dto.DateRange{
		Start: r.URL.Query().Get("start"),
		End:   r.URL.Query().Get("end"),
	}
}
