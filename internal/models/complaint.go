package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ComplaintStatus is the bounded status field on a complaint.
// Valid values: "Pending", "In Review", "Resolved".
type ComplaintStatus string

const (
	ComplaintPending  ComplaintStatus = "Pending"
	ComplaintInReview ComplaintStatus = "In Review"
	ComplaintResolved ComplaintStatus = "Resolved"
)

// CrimeTypes are the accepted values for Complaint.CrimeType.
var CrimeTypes = []string{"Theft", "Fraud", "Cyber Crime", "Assault"}

// ValidStatus reports whether s is one of the three known statuses.
func ValidStatus(s ComplaintStatus) bool {
	switch s {
	case ComplaintPending, ComplaintInReview, ComplaintResolved:
		return true
	}
	return false
}

// ValidCrimeType reports whether t is an accepted crime type.
func ValidCrimeType(t string) bool {
	for _, v := range CrimeTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Complaint is a single record in the complaint ledger. Status transitions
// are free-form (any status may follow any other); deletion is permitted
// only once the complaint is Resolved.
type Complaint struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`

	CNIC        string          `bson:"cnic" json:"cnic"`
	Phone       string          `bson:"phone" json:"phone"`
	FullName    string          `bson:"full_name" json:"full_name"`
	DOB         string          `bson:"dob" json:"dob"`
	CrimeType   string          `bson:"crime_type" json:"crime_type"`
	Description string          `bson:"description" json:"description"`
	FileURL     string          `bson:"file_url,omitempty" json:"file_url,omitempty"`
	Status      ComplaintStatus `bson:"status" json:"status"`

	// User is the filing user's email, or "Guest" for anonymous filings.
	User string `bson:"user" json:"user"`
}
