package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminRequestStatus follows none -> pending -> {approved, rejected} and is
// terminal once approved or rejected.
type AdminRequestStatus string

const (
	RequestPending  AdminRequestStatus = "pending"
	RequestApproved AdminRequestStatus = "approved"
	RequestRejected AdminRequestStatus = "rejected"
)

// AdminRequest is a user's petition for the admin capability flag.
// Multiple pending requests per uid are tolerated; the approval path
// reconciles them by acting on whichever record the admin picks.
type AdminRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UID         string             `bson:"uid" json:"uid"`
	Email       string             `bson:"email" json:"email"`
	Status      AdminRequestStatus `bson:"status" json:"status"`
	RequestedAt time.Time          `bson:"requested_at" json:"requested_at"`
}
