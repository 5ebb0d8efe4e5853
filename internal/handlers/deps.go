package handlers

import (
	"log/slog"
	"net/http"

	"github.com/GregMSThompson/expense-backend/internal/middleware"
	"github.com/GregMSThompson/expense-backend/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Middleware      *middleware.Middleware

	UserSvc   UserService
	LedgerSvc LedgerService
	ChatSvc   ChatService

	RelayClient  *http.Client
	RelayBaseURL string
}
