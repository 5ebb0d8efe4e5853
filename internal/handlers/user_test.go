package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/internal/errs"
	"github.com/GregMSThompson/expense-backend/internal/models"
	"github.com/GregMSThompson/expense-backend/internal/response"
)

type stubUserService struct {
	signupReq dto.SignupRequest
	signupErr error
	user      *models.User
	token     string
	loginErr  error
}

func (s *stubUserService) Signup(ctx context.Context, req dto.SignupRequest) (*models.User, error) {
	s.signupReq = req
	return s.user, s.signupErr
}

func (s *stubUserService) Login(ctx context.Context, req dto.LoginRequest) (string, *models.User, error) {
	return s.token, s.user, s.loginErr
}

func (s *stubUserService) Me(ctx context.Context, uid string) (*models.User, error) {
	return s.user, nil
}

func newUserFixture(svc *stubUserService) *userHandlers {
	return &userHandlers{
		ResponseHandler: response.New(slog.Default()),
		UserSvc:         svc,
	}
}

func TestSignupWritesUserWithoutHash(t *testing.T) {
	svc := &stubUserService{
		user: &models.User{UID: "u1", Name: "Ann", Email: "ann@example.com", PasswordHash: "secret-hash"},
	}
	h := newUserFixture(svc)

	body := `{"name":"Ann","email":"ann@example.com","password":"pw123456"}`
	rec := httptest.NewRecorder()
	h.Signup(rec, httptest.NewRequest(http.MethodPost, "/api/users/signup", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if svc.signupReq.Email != "ann@example.com" {
		t.Fatalf("request passed to service = %+v", svc.signupReq)
	}

	var resp dto.SignupResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.User.UID != "u1" {
		t.Fatalf("response = %+v", resp)
	}

	// The credential hash must never leave the server.
	if strings.Contains(rec.Body.String(), "secret-hash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
}

func TestSignupDuplicateEmailIsBadRequest(t *testing.T) {
	h := newUserFixture(&stubUserService{signupErr: errs.NewAlreadyExistsError("Email already registered")})

	body := `{"name":"Ann","email":"ann@example.com","password":"pw123456"}`
	rec := httptest.NewRecorder()
	h.Signup(rec, httptest.NewRequest(http.MethodPost, "/api/users/signup", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Email already registered") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestLoginWritesTokenAndUser(t *testing.T) {
	h := newUserFixture(&stubUserService{
		token: "signed-token",
		user:  &models.User{UID: "u1", Email: "ann@example.com"},
	})

	body := `{"email":"ann@example.com","password":"pw123456"}`
	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/users/login", strings.NewReader(body)))

	var resp dto.LoginResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Token != "signed-token" || resp.User.UID != "u1" {
		t.Fatalf("response = %+v", resp)
	}
}

func TestLoginBadCredentialsIsUnauthorized(t *testing.T) {
	h := newUserFixture(&stubUserService{loginErr: errs.NewUnauthorizedError("Invalid credentials")})

	body := `{"email":"ann@example.com","password":"wrong"}`
	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/users/login", strings.NewReader(body)))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid credentials") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestMeWritesResolvedUser(t *testing.T) {
	h := newUserFixture(&stubUserService{
		user: &models.User{UID: "u1", Name: "Ann", Email: "ann@example.com"},
	})

	req := withUID(httptest.NewRequest(http.MethodGet, "/api/users/me", nil), "u1")
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	var got models.User
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.UID != "u1" || got.Email != "ann@example.com" {
		t.Fatalf("response = %+v", got)
	}
}
