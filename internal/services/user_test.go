package services

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/internal/errs"
	"github.com/GregMSThompson/expense-backend/internal/models"
	"github.com/GregMSThompson/expense-backend/pkg/helpers"
)

type stubUserStore struct {
	byEmail    map[string]*models.User
	created    *models.User
	createErr  error
	byEmailErr error
}

func (s *stubUserStore) CreateUser(_ context.Context, user *models.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = user
	return nil
}

func (s *stubUserStore) GetUser(_ context.Context, uid string) (*models.User, error) {
	for _, u := range s.byEmail {
		if u.UID == uid {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (s *stubUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if s.byEmailErr != nil {
		return nil, s.byEmailErr
	}
	return s.byEmail[email], nil
}

type stubIssuer struct {
	token string
	err   error
}

func (s *stubIssuer) Issue(_, _ string) (string, error) { return s.token, s.err }

func TestUserServiceSignup(t *testing.T) {
	store := &stubUserStore{}
	svc := NewUserService(store, &stubIssuer{})
	ctx := helpers.TestCtx()

	user, err := svc.Signup(ctx, dto.SignupRequest{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	if user.UID == "" {
		t.Fatalf("signup did not assign a uid")
	}
	if user.BankBalance != 0 {
		t.Fatalf("new user balance = %v, want 0", user.BankBalance)
	}
	if user.PasswordHash == "hunter22" {
		t.Fatalf("password stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
	if store.created == nil || store.created.UID != user.UID {
		t.Fatalf("store did not receive the new user")
	}
}

func TestUserServiceSignupDuplicateEmail(t *testing.T) {
	store := &stubUserStore{byEmail: map[string]*models.User{
		"jane@example.com": {UID: "u1", Email: "jane@example.com"},
	}}
	svc := NewUserService(store, &stubIssuer{})
	ctx := helpers.TestCtx()

	_, err := svc.Signup(ctx, dto.SignupRequest{Email: "jane@example.com", Password: "x"})
	var exists *errs.AlreadyExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("error = %v, want AlreadyExistsError", err)
	}
	if store.created != nil {
		t.Fatalf("duplicate signup still created a user")
	}
}

func TestUserServiceLogin(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.DefaultCost)
	store := &stubUserStore{byEmail: map[string]*models.User{
		"jane@example.com": {UID: "u1", Email: "jane@example.com", PasswordHash: string(hash)},
	}}
	svc := NewUserService(store, &stubIssuer{token: "signed-token"})
	ctx := helpers.TestCtx()

	tok, user, err := svc.Login(ctx, dto.LoginRequest{Email: "jane@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tok != "signed-token" {
		t.Fatalf("token = %q", tok)
	}
	if user.UID != "u1" {
		t.Fatalf("resolved user = %+v", user)
	}
}

func TestUserServiceLoginBadCredentials(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.DefaultCost)
	store := &stubUserStore{byEmail: map[string]*models.User{
		"jane@example.com": {UID: "u1", Email: "jane@example.com", PasswordHash: string(hash)},
	}}
	svc := NewUserService(store, &stubIssuer{token: "signed-token"})
	ctx := helpers.TestCtx()

	cases := []dto.LoginRequest{
		{Email: "jane@example.com", Password: "wrong"},
		{Email: "nobody@example.com", Password: "hunter22"},
	}
	for _, req := range cases {
		_, _, err := svc.Login(ctx, req)
		var unauth *errs.UnauthorizedError
		if !errors.As(err, &unauth) {
			t.Fatalf("login %v: error = %v, want UnauthorizedError", req.Email, err)
		}
	}
}
