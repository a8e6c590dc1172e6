package models

import "time"

// User is the application account. The admin back-office trusts the
// X-User-Id/X-Is-Admin headers only after re-checking is_admin here.
type User struct {
	ID             string    `bson:"id" json:"id"`
	Name           string    `bson:"name" json:"name"`
	Email          string    `bson:"email" json:"email"`
	Phone          string    `bson:"phone,omitempty" json:"phone,omitempty"`
	IsAdmin        bool      `bson:"is_admin" json:"is_admin"`
	HashedPassword string    `bson:"hashed_password" json:"-"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}
