package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleStaff   Role = "staff"
	RoleTrainee Role = "trainee"
)

// User represents a login account (either a Staff member managing trainee
// records, or a Trainee viewing their own).
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// --- Trainee-specific ---
	// Links a trainee login to its Trainee record.
	TraineeID *primitive.ObjectID `bson:"traineeId,omitempty" json:"traineeId,omitempty"`
}

// Helper methods (Optional but can be useful)
func (u *User) IsStaff() bool {
	return u.Role == RoleStaff
}

func (u *User) IsTrainee() bool {
	return u.Role == RoleTrainee
}
