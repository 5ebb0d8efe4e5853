package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/GregMSThompson/expense-backend/internal/errs"
	"github.com/GregMSThompson/expense-backend/internal/models"
	"github.com/GregMSThompson/expense-backend/internal/response"
	"github.com/GregMSThompson/expense-backend/internal/token"
	"github.com/GregMSThompson/expense-backend/pkg/logger"
)

type tokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

type sessionStore interface {
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

type Middleware struct {
	Verifier        tokenVerifier
	Users           sessionStore
	ResponseHandler response.ResponseHandler
}

func NewMiddleware(verifier tokenVerifier, users sessionStore, rh response.ResponseHandler) *Middleware {
	return &Middleware{
		Verifier:        verifier,
		Users:           users,
		ResponseHandler: rh,
	}
}

// context keys
type contextKey string

const (
	UIDKey   contextKey = "uid"
	EmailKey contextKey = "email"
)

// Auth gates every balance-reading or balance-mutating route. It verifies
// the bearer token, resolves it to an existing user, and never mutates state.
func (m *Middleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		header := r.Header.Get("Authorization")
		if header == "" {
			m.ResponseHandler.HandleError(w, r, errs.NewUnauthorizedError("Missing Authorization header"))
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.ResponseHandler.HandleError(w, r, errs.NewUnauthorizedError("Invalid Authorization header"))
			return
		}

		claims, err := m.Verifier.Verify(parts[1])
		if err != nil {
			m.ResponseHandler.HandleError(w, r, errs.NewUnauthorizedError("Invalid or expired token"))
			return
		}

		// A valid token must still name an existing user.
		user, err := m.Users.GetUser(r.Context(), claims.Subject)
		if err != nil || user == nil {
			m.ResponseHandler.HandleError(w, r, errs.NewUnauthorizedError("User not found"))
			return
		}

		_, ctx := logger.With(r.Context(), "uid", user.UID)
		ctx = context.WithValue(ctx, UIDKey, user.UID)
		ctx = context.WithValue(ctx, EmailKey, user.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Helpers to extract identity
func UID(ctx context.Context) string {
	uid, _ := ctx.Value(UIDKey).(string)
	return uid
}

func Email(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}
