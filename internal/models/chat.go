package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatRole distinguishes the two sides of an assistant conversation.
// Valid values: "user", "assistant".
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is stored in MongoDB, one document per turn. Messages are
// partitioned by session identifier and ordered by timestamp ascending
// within a session; cross-session ordering is undefined.
type ChatMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID string             `bson:"session_id" json:"session_id"`
	UserEmail string             `bson:"user_email,omitempty" json:"user_email,omitempty"`
	Role      ChatRole           `bson:"role" json:"role"`
	Text      string             `bson:"text" json:"text"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}
