package models

import "time"

type Address struct {
	ID           string    `bson:"id" json:"id"`
	UserID       string    `bson:"user_id" json:"user_id"`
	ContactName  string    `bson:"contact_name" json:"contact_name"`
	Phone        string    `bson:"phone" json:"phone"`
	Province     string    `bson:"province" json:"province"`
	Municipality string    `bson:"municipality" json:"municipality"`
	Neighborhood string    `bson:"neighborhood" json:"neighborhood"`
	Street       string    `bson:"street" json:"street"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
