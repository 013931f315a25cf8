package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UID       string             `bson:"uid" json:"uid"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`

	Email        string `bson:"email" json:"email"`
	Username     string `bson:"username,omitempty" json:"username,omitempty"`
	PhotoURL     string `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	PasswordHash string `bson:"password_hash" json:"-"` // Don't return hash in JSON

	// IsAdmin flips only through an approved admin request; there is no
	// demotion path.
	IsAdmin bool `bson:"is_admin" json:"is_admin"`
}
