package service

import (
	"alcyxob/training-app/internal/clock"
	"alcyxob/training-app/internal/domain"
	"alcyxob/training-app/internal/repository"
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrReasonRequired = errors.New("flag reason is required")
	ErrInvalidAward   = errors.New("point award must be positive")
)

// Progress holds the recomputed completion counters for a trainee. It is
// derived on demand from the current ledger contents, never cached.
type Progress struct {
	CoursesCompleted  int64 `json:"coursesCompleted"`
	CoursesTotal      int64 `json:"coursesTotal"`
	SessionsCompleted int64 `json:"sessionsCompleted"`
	SessionsTotal     int64 `json:"sessionsTotal"`
}

// --- Service Interface ---

// PointsService is the trainee's point account: completion awards, manual
// flag penalties and check-in awards all flow through it.
type PointsService interface {
	// Award adds a positive delta to the trainee's total.
	Award(ctx context.Context, traineeID primitive.ObjectID, delta int) error
	// Penalize appends a Flag with the configured fixed penalty and
	// subtracts it from the total. Totals may go negative.
	Penalize(ctx context.Context, traineeID primitive.ObjectID, reason string) (*domain.Flag, error)
	// RecordCheckIn appends a CheckIn and awards its points.
	RecordCheckIn(ctx context.Context, traineeID primitive.ObjectID, points int) (*domain.CheckIn, error)
	// Progress recomputes the completion counters from the ledger.
	Progress(ctx context.Context, traineeID primitive.ObjectID) (*Progress, error)
}

// --- Service Implementation ---

// pointsService implements the PointsService interface.
type pointsService struct {
	traineeRepo repository.TraineeRepository
	checkInRepo repository.CheckInRepository
	courseRepo  repository.CourseRepository
	sessionRepo repository.SessionRepository
	flagPenalty int
	clock       clock.Clock
}

// NewPointsService creates a new instance of pointsService. flagPenalty is
// the fixed magnitude subtracted per flag (e.g. 5).
func NewPointsService(
	traineeRepo repository.TraineeRepository,
	checkInRepo repository.CheckInRepository,
	courseRepo repository.CourseRepository,
	sessionRepo repository.SessionRepository,
	flagPenalty int,
	clk clock.Clock,
) PointsService {
	if flagPenalty <= 0 {
		flagPenalty = 5 // Default penalty magnitude
	}
	return &pointsService{
		traineeRepo: traineeRepo,
		checkInRepo: checkInRepo,
		courseRepo:  courseRepo,
		sessionRepo: sessionRepo,
		flagPenalty: flagPenalty,
		clock:       clk,
	}
}

// Award adds delta to the trainee's running total. No upper bound.
func (s *pointsService) Award(ctx context.Context, traineeID primitive.ObjectID, delta int) error {
	if delta <= 0 {
		return ErrInvalidAward
	}
	err := s.traineeRepo.AdjustPoints(ctx, traineeID, delta)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTraineeNotFound
	}
	return err
}

// Penalize records a Flag against the trainee and subtracts the fixed
// penalty. The total is allowed to go negative.
func (s *pointsService) Penalize(ctx context.Context, traineeID primitive.ObjectID, reason string) (*domain.Flag, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	flag := domain.Flag{
		ID:          primitive.NewObjectID(),
		Reason:      reason,
		Timestamp:   s.clock.Now(),
		PointsDelta: -s.flagPenalty,
	}

	err := s.traineeRepo.AppendFlag(ctx, traineeID, flag)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTraineeNotFound
		}
		return nil, err
	}
	return &flag, nil
}

// RecordCheckIn appends a CheckIn entry and awards its points.
func (s *pointsService) RecordCheckIn(ctx context.Context, traineeID primitive.ObjectID, points int) (*domain.CheckIn, error) {
	if points <= 0 {
		return nil, ErrInvalidAward
	}
	if _, err := s.traineeRepo.GetByID(ctx, traineeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTraineeNotFound
		}
		return nil, err
	}

	checkIn := &domain.CheckIn{
		TraineeID: traineeID,
		Timestamp: s.clock.Now(),
		Points:    points,
	}

	checkInID, err := s.checkInRepo.Create(ctx, checkIn)
	if err != nil {
		return nil, err
	}
	checkIn.ID = checkInID

	if err := s.traineeRepo.AdjustPoints(ctx, traineeID, points); err != nil {
		return nil, err
	}
	return checkIn, nil
}

// Progress recomputes the completed/total counters for both collections.
func (s *pointsService) Progress(ctx context.Context, traineeID primitive.ObjectID) (*Progress, error) {
	courseTotal, courseCompleted, err := s.courseRepo.Counts(ctx, traineeID)
	if err != nil {
		return nil, err
	}
	sessionTotal, sessionCompleted, err := s.sessionRepo.Counts(ctx, traineeID)
	if err != nil {
		return nil, err
	}
	return &Progress{
		CoursesCompleted:  courseCompleted,
		CoursesTotal:      courseTotal,
		SessionsCompleted: sessionCompleted,
		SessionsTotal:     sessionTotal,
	}, nil
}
