package main

import (
	"log/slog"
	"net"
	"net/http"
	"os"

	"github.com/GregMSThompson/expense-backend/internal/bootstrap"
	"github.com/GregMSThompson/expense-backend/internal/client/analysis"
	"github.com/GregMSThompson/expense-backend/internal/client/openai"
	"github.com/GregMSThompson/expense-backend/internal/config"
	"github.com/GregMSThompson/expense-backend/internal/handlers"
	"github.com/GregMSThompson/expense-backend/internal/middleware"
	"github.com/GregMSThompson/expense-backend/internal/response"
	"github.com/GregMSThompson/expense-backend/internal/router"
	"github.com/GregMSThompson/expense-backend/internal/services"
	"github.com/GregMSThompson/expense-backend/internal/store"
	"github.com/GregMSThompson/expense-backend/internal/token"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	ustore := store.NewUserStore(bs.Firestore)
	tstore := store.NewTransactionStore(bs.Firestore)

	// gateways
	analysisGW := analysisclient.NewAdapter(cfg)
	openaiGW := openaiclient.NewAdapter(cfg)

	// services
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	userv := services.NewUserService(ustore, issuer)
	ledgerv := services.NewLedgerService(tstore, ustore)
	chatv := services.NewChatService(analysisGW, openaiGW)

	// response handler + middleware
	rh := response.New(bs.Log)
	mw := middleware.NewMiddleware(issuer, ustore, rh)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Middleware = mw
	deps.UserSvc = userv
	deps.LedgerSvc = ledgerv
	deps.ChatSvc = chatv
	deps.RelayBaseURL = cfg.RelayBaseURL
	deps.RelayClient = &http.Client{
		Timeout: cfg.ReadTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{Timeout: cfg.ConnectTimeout}).DialContext,
		},
	}

	// router
	r := router.NewRouter(deps)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
