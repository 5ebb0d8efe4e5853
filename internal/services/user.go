package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/internal/errs"
	"github.com/GregMSThompson/expense-backend/internal/models"
	"github.com/GregMSThompson/expense-backend/pkg/logger"
)

type userUSStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, uid string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type tokenIssuer interface {
	Issue(uid, email string) (string, error)
}

type userService struct {
	Store  userUSStore
	Issuer tokenIssuer
}

func NewUserService(store userUSStore, issuer tokenIssuer) *userService {
	return &userService{
		Store:  store,
		Issuer: issuer,
	}
}

func (s *userService) Signup(ctx context.Context, req dto.SignupRequest) (*models.User, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || req.Password == "" {
		return nil, errs.NewValidationError("email and password are required")
	}

	existing, err := s.Store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, errs.NewDatabaseError("signup email lookup", err.Error())
	}
	if existing != nil {
		return nil, errs.NewAlreadyExistsError("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		UID:          uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		BankBalance:  0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.CreateUser(ctx, user); err != nil {
		log.Error("failed to create user in store", "error", err)
		return nil, errs.NewDatabaseError("create user", err.Error())
	}

	log.Info("user created", "email", req.Email)
	return user, nil
}

func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (string, *models.User, error) {
	user, err := s.Store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, errs.NewDatabaseError("login email lookup", err.Error())
	}
	if user == nil {
		return "", nil, errs.NewUnauthorizedError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, errs.NewUnauthorizedError("Invalid credentials")
	}

	tok, err := s.Issuer.Issue(user.UID, user.Email)
	if err != nil {
		return "", nil, err
	}

	log := logger.FromContext(ctx)
	log.Info("user logged in", "uid", user.UID)
	return tok, user, nil
}

func (s *userService) Me(ctx context.Context, uid string) (*models.User, error) {
	user, err := s.Store.GetUser(ctx, uid)
	if err != nil {
		return nil, errs.NewDatabaseError("get user", err.Error())
	}
	return user, nil
}
