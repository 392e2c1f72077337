package repository

import (
	"alcyxob/training-app/internal/domain" // Import our defined domain models
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive" // For using ObjectIDs
)

// Error constants for repository layer (optional but good practice)
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with login accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// TraineeRepository defines the interface for interacting with trainee
// records, including the point/flag ledger updates.
type TraineeRepository interface {
	Create(ctx context.Context, trainee *domain.Trainee) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainee, error)
	List(ctx context.Context) ([]domain.Trainee, error)
	// AdjustPoints adds delta (which may be negative) to the trainee's total.
	AdjustPoints(ctx context.Context, id primitive.ObjectID, delta int) error
	// AppendFlag atomically appends the flag and applies its PointsDelta to
	// the point total.
	AppendFlag(ctx context.Context, id primitive.ObjectID, flag domain.Flag) error
}

// CourseRepository defines the interface for interacting with course
// enrollments.
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Course, error)
	GetByTraineeID(ctx context.Context, traineeID primitive.ObjectID) ([]domain.Course, error)
	Update(ctx context.Context, course *domain.Course) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// Counts returns total and completed enrollment counts for a trainee.
	Counts(ctx context.Context, traineeID primitive.ObjectID) (total, completed int64, err error)
}

// SessionRepository defines the interface for interacting with training
// sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.TrainingSession) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingSession, error)
	GetByTraineeID(ctx context.Context, traineeID primitive.ObjectID) ([]domain.TrainingSession, error)
	Update(ctx context.Context, session *domain.TrainingSession) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Counts(ctx context.Context, traineeID primitive.ObjectID) (total, completed int64, err error)
}

// CheckInRepository defines the interface for the append-only check-in log.
type CheckInRepository interface {
	Create(ctx context.Context, checkIn *domain.CheckIn) (primitive.ObjectID, error)
	GetByTraineeID(ctx context.Context, traineeID primitive.ObjectID) ([]domain.CheckIn, error)
}

// CertificateRepository defines the interface for completion certificate
// metadata.
type CertificateRepository interface {
	Create(ctx context.Context, cert *domain.Certificate) (primitive.ObjectID, error)
	GetByCourseID(ctx context.Context, courseID primitive.ObjectID) (*domain.Certificate, error)
}
