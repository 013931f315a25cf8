package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotifyAll is the TargetUser value for a broadcast addressed to everyone.
const NotifyAll = "all"

// Notification is a write-only broadcast record. Notifications are never
// mutated or deleted; delivery and read receipts are not modeled.
type Notification struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Message    string             `bson:"message" json:"message"`
	TargetUser string             `bson:"target_user" json:"target_user"` // "all" or a user email
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}
