package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultCheckInPoints is the fixed award for a check-in when the caller
// does not override it.
const DefaultCheckInPoints = 10

// CheckIn records a trainee checking in for a point award. Check-ins are
// append-only; they are never edited or deleted.
type CheckIn struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TraineeID primitive.ObjectID `bson:"traineeId" json:"traineeId"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	Points    int                `bson:"points" json:"points"`
}
