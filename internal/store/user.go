package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/expense-backend/internal/models"
)

type userStore struct {
	Client     *firestore.Client
	Collection *firestore.CollectionRef
}

func NewUserStore(client *firestore.Client) *userStore {
	return &userStore{
		Client:     client,
		Collection: client.Collection("users"),
	}
}

func (us *userStore) CreateUser(ctx context.Context, user *models.User) error {
	_, err := us.Collection.Doc(user.UID).Create(ctx, user)
	return err
}

func (us *userStore) GetUser(ctx context.Context, uid string) (*models.User, error) {
	var user models.User

	doc, err := us.Collection.Doc(uid).Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := doc.DataTo(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserByEmail returns nil without error when no user has the email.
func (us *userStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	docs, err := us.Collection.Where("email", "==", email).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}

	var user models.User
	if err := docs[0].DataTo(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// IncrementBalance applies a server-side increment so concurrent
// transactions for the same user never clobber each other, then reads the
// resulting balance back.
func (us *userStore) IncrementBalance(ctx context.Context, uid string, delta float64) (float64, error) {
	doc := us.Collection.Doc(uid)
	_, err := doc.Update(ctx, []firestore.Update{
		{Path: "bankBalance", Value: firestore.Increment(delta)},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return 0, err
	}

	snap, err := doc.Get(ctx)
	if err != nil {
		return 0, err
	}
	var user models.User
	if err := snap.DataTo(&user); err != nil {
		return 0, err
	}
	return user.BankBalance, nil
}

// SetBalance unconditionally replaces the balance, bypassing the
// transaction history. Used only by the explicit override operation.
func (us *userStore) SetBalance(ctx context.Context, uid string, balance float64) error {
	_, err := us.Collection.Doc(uid).Update(ctx, []firestore.Update{
		{Path: "bankBalance", Value: balance},
		{Path: "updatedAt", Value: time.Now()},
	})
	return err
}
