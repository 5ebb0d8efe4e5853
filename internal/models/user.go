package models

import (
	"time"
)

type User struct {
	UID          string    `firestore:"uid" json:"uid"`
	Name         string    `firestore:"name" json:"name"`
	Email        string    `firestore:"email" json:"email"`
	Phone        string    `firestore:"phone" json:"phone,omitempty"`
	PasswordHash string    `firestore:"passwordHash" json:"-"`
	BankBalance  float64   `firestore:"bankBalance" json:"bankBalance"`
	CreatedAt    time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `firestore:"updatedAt" json:"updatedAt"`
}
