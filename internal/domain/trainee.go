package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trainee is the aggregate root for a trainee's training record: identity,
// the running point total and the append-only flag history. Courses,
// training sessions and check-ins reference the trainee by ID and live in
// their own collections.
type Trainee struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SerialNumber string             `bson:"serialNumber" json:"serialNumber"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`

	// Points is a running total. It may go negative; no floor is enforced.
	Points int `bson:"points" json:"points"`

	// Flags is append-only. Entries are never edited or removed.
	Flags []Flag `bson:"flags,omitempty" json:"flags,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Flag is a manually recorded penalty event against a trainee.
// Immutable once created.
type Flag struct {
	ID          primitive.ObjectID `bson:"id" json:"id"`
	Reason      string             `bson:"reason" json:"reason"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
	PointsDelta int                `bson:"pointsDelta" json:"pointsDelta"`
}
