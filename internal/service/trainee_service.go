package service

import (
	"alcyxob/training-app/internal/domain"
	"alcyxob/training-app/internal/repository"
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrTraineeNotFound = errors.New("trainee not found")
)

// TraineeInput carries the fields for creating a trainee record. Trainee
// creation sits outside the activity ledger itself; this is the entry point
// the ledger's owner uses to bring a trainee into the system.
type TraineeInput struct {
	SerialNumber string
	Name         string
	Email        string
	Phone        string
}

// --- Service Interface ---

// TraineeService is the registry binding trainee identities to their
// activity ledger and point account. List operations return the current
// collection contents; an empty collection is not an error, a missing
// trainee is.
type TraineeService interface {
	CreateTrainee(ctx context.Context, input TraineeInput) (*domain.Trainee, error)
	GetTraineeByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainee, error)
	ListTrainees(ctx context.Context) ([]domain.Trainee, error)
	ListCourses(ctx context.Context, traineeID primitive.ObjectID) ([]domain.Course, error)
	ListSessions(ctx context.Context, traineeID primitive.ObjectID) ([]domain.TrainingSession, error)
	ListCheckIns(ctx context.Context, traineeID primitive.ObjectID) ([]domain.CheckIn, error)
}

// --- Service Implementation ---

// traineeService implements the TraineeService interface.
type traineeService struct {
	traineeRepo repository.TraineeRepository
	courseRepo  repository.CourseRepository
	sessionRepo repository.SessionRepository
	checkInRepo repository.CheckInRepository
}

// NewTraineeService creates a new instance of traineeService.
func NewTraineeService(
	traineeRepo repository.TraineeRepository,
	courseRepo repository.CourseRepository,
	sessionRepo repository.SessionRepository,
	checkInRepo repository.CheckInRepository,
) TraineeService {
	return &traineeService{
		traineeRepo: traineeRepo,
		courseRepo:  courseRepo,
		sessionRepo: sessionRepo,
		checkInRepo: checkInRepo,
	}
}

// CreateTrainee validates and stores a new trainee record with zero points
// and an empty flag history.
func (s *traineeService) CreateTrainee(ctx context.Context, input TraineeInput) (*domain.Trainee, error) {
	errs := domain.ValidationErrors{}
	if strings.TrimSpace(input.Name) == "" {
		errs["name"] = "Name is required"
	}
	if len(errs) > 0 {
		return nil, errs
	}

	trainee := &domain.Trainee{
		SerialNumber: strings.TrimSpace(input.SerialNumber),
		Name:         strings.TrimSpace(input.Name),
		Email:        input.Email,
		Phone:        input.Phone,
		Points:       0,
	}

	traineeID, err := s.traineeRepo.Create(ctx, trainee)
	if err != nil {
		return nil, err
	}
	return s.traineeRepo.GetByID(ctx, traineeID)
}

// GetTraineeByID resolves a trainee identity.
func (s *traineeService) GetTraineeByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainee, error) {
	trainee, err := s.traineeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTraineeNotFound
		}
		return nil, err
	}
	return trainee, nil
}

// ListTrainees returns all trainee records.
func (s *traineeService) ListTrainees(ctx context.Context) ([]domain.Trainee, error) {
	trainees, err := s.traineeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if trainees == nil {
		trainees = []domain.Trainee{}
	}
	return trainees, nil
}

// ListCourses returns the trainee's course enrollments. An empty slice is
// returned for a trainee with no enrollments; an unknown trainee id is
// ErrTraineeNotFound.
func (s *traineeService) ListCourses(ctx context.Context, traineeID primitive.ObjectID) ([]domain.Course, error) {
	if err := s.ensureTrainee(ctx, traineeID); err != nil {
		return nil, err
	}
	courses, err := s.courseRepo.GetByTraineeID(ctx, traineeID)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []domain.Course{}
	}
	return courses, nil
}

// ListSessions returns the trainee's training sessions.
func (s *traineeService) ListSessions(ctx context.Context, traineeID primitive.ObjectID) ([]domain.TrainingSession, error) {
	if err := s.ensureTrainee(ctx, traineeID); err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.GetByTraineeID(ctx, traineeID)
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []domain.TrainingSession{}
	}
	return sessions, nil
}

// ListCheckIns returns the trainee's check-in history.
func (s *traineeService) ListCheckIns(ctx context.Context, traineeID primitive.ObjectID) ([]domain.CheckIn, error) {
	if err := s.ensureTrainee(ctx, traineeID); err != nil {
		return nil, err
	}
	checkIns, err := s.checkInRepo.GetByTraineeID(ctx, traineeID)
	if err != nil {
		return nil, err
	}
	if checkIns == nil {
		checkIns = []domain.CheckIn{}
	}
	return checkIns, nil
}

func (s *traineeService) ensureTrainee(ctx context.Context, traineeID primitive.ObjectID) error {
	_, err := s.traineeRepo.GetByID(ctx, traineeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTraineeNotFound
		}
		return err
	}
	return nil
}
