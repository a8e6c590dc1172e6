package models

import "time"

// ActivityLog is a denormalized record of an admin action. Written best-effort;
// a failed write never fails the request that produced it.
type ActivityLog struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Action    string    `bson:"action" json:"action"`
	Detail    string    `bson:"detail,omitempty" json:"detail,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
