package service

import (
	"alcyxob/training-app/internal/clock"
	"alcyxob/training-app/internal/domain"
	"alcyxob/training-app/internal/repository"
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrCourseNotFound   = errors.New("course not found")
	ErrSessionNotFound  = errors.New("training session not found")
	ErrNotYetElapsed    = errors.New("record cannot be completed before its end time has elapsed")
	ErrAlreadyCompleted = errors.New("record is already completed")
)

// CourseInput carries the fields of an enrollment intent.
type CourseInput struct {
	Title        string
	Description  string
	StartDate    time.Time
	EndDate      time.Time
	Instructor   string
	Category     domain.Category
	Points       int
	Duration     string
	Requirements string
}

// CourseUpdate carries a partial edit intent. Nil fields keep their stored
// value; the merged result is re-validated before anything is written.
type CourseUpdate struct {
	Title        *string
	Description  *string
	StartDate    *time.Time
	EndDate      *time.Time
	Instructor   *string
	Category     *domain.Category
	Points       *int
	Duration     *string
	Requirements *string
}

// SessionInput carries the fields of a session scheduling intent.
type SessionInput struct {
	Title       string
	Description string
	Date        time.Time
	StartTime   string
	EndTime     string
	Location    string
	Instructor  string
	Points      int
}

// SessionUpdate carries a partial edit intent for a training session.
type SessionUpdate struct {
	Title       *string
	Description *string
	Date        *time.Time
	StartTime   *string
	EndTime     *string
	Location    *string
	Instructor  *string
	Points      *int
}

// --- Service Interface ---

// LedgerService is the activity ledger: it owns the per-trainee course and
// session collections and enforces their invariants. Mutations either fully
// apply or leave no trace; validation failures come back as
// domain.ValidationErrors.
type LedgerService interface {
	AddCourse(ctx context.Context, traineeID primitive.ObjectID, input CourseInput) (*domain.Course, error)
	UpdateCourse(ctx context.Context, courseID primitive.ObjectID, update CourseUpdate) (*domain.Course, error)
	DeleteCourse(ctx context.Context, courseID primitive.ObjectID) error
	MarkCourseComplete(ctx context.Context, courseID primitive.ObjectID) (*domain.Course, error)

	AddTrainingSession(ctx context.Context, traineeID primitive.ObjectID, input SessionInput) (*domain.TrainingSession, error)
	UpdateTrainingSession(ctx context.Context, sessionID primitive.ObjectID, update SessionUpdate) (*domain.TrainingSession, error)
	DeleteTrainingSession(ctx context.Context, sessionID primitive.ObjectID) error
	MarkSessionComplete(ctx context.Context, sessionID primitive.ObjectID) (*domain.TrainingSession, error)
}

// --- Service Implementation ---

// ledgerService implements the LedgerService interface.
type ledgerService struct {
	courseRepo  repository.CourseRepository
	sessionRepo repository.SessionRepository
	traineeRepo repository.TraineeRepository
	points      PointsService
	clock       clock.Clock
}

// NewLedgerService creates a new instance of ledgerService.
func NewLedgerService(
	courseRepo repository.CourseRepository,
	sessionRepo repository.SessionRepository,
	traineeRepo repository.TraineeRepository,
	points PointsService,
	clk clock.Clock,
) LedgerService {
	return &ledgerService{
		courseRepo:  courseRepo,
		sessionRepo: sessionRepo,
		traineeRepo: traineeRepo,
		points:      points,
		clock:       clk,
	}
}

// === Courses ===

// AddCourse validates an enrollment intent and stores the new course with
// status "enrolled". On validation failure nothing is written.
func (s *ledgerService) AddCourse(ctx context.Context, traineeID primitive.ObjectID, input CourseInput) (*domain.Course, error) {
	if traineeID == primitive.NilObjectID {
		return nil, ErrTraineeNotFound
	}
	if _, err := s.traineeRepo.GetByID(ctx, traineeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTraineeNotFound
		}
		return nil, err
	}

	course := &domain.Course{
		TraineeID:    traineeID,
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Instructor:   input.Instructor,
		Category:     input.Category,
		Points:       input.Points,
		Duration:     input.Duration,
		Requirements: input.Requirements,
		Status:       domain.CourseEnrolled,
	}
	if course.Category == "" {
		course.Category = domain.CategoryGeneral
	}

	if errs := validateCourse(course); len(errs) > 0 {
		return nil, errs
	}

	courseID, err := s.courseRepo.Create(ctx, course)
	if err != nil {
		return nil, err
	}
	return s.courseRepo.GetByID(ctx, courseID) // Fetch again to get all fields
}

// UpdateCourse merges the edit into the stored record, re-validates the
// result and persists it. Completion state cannot be edited this way.
func (s *ledgerService) UpdateCourse(ctx context.Context, courseID primitive.ObjectID, update CourseUpdate) (*domain.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	if update.Title != nil {
		course.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		course.Description = *update.Description
	}
	if update.StartDate != nil {
		course.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		course.EndDate = *update.EndDate
	}
	if update.Instructor != nil {
		course.Instructor = *update.Instructor
	}
	if update.Category != nil {
		course.Category = *update.Category
	}
	if update.Points != nil {
		course.Points = *update.Points
	}
	if update.Duration != nil {
		course.Duration = *update.Duration
	}
	if update.Requirements != nil {
		course.Requirements = *update.Requirements
	}

	if errs := validateCourse(course); len(errs) > 0 {
		return nil, errs
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

// DeleteCourse removes the enrollment. Deleting an id that does not exist
// is a no-op, mirroring the permissive delete flow of the UI.
func (s *ledgerService) DeleteCourse(ctx context.Context, courseID primitive.ObjectID) error {
	err := s.courseRepo.Delete(ctx, courseID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}

// MarkCourseComplete performs the one-way completion transition. It is
// allowed only once the course interval has fully elapsed (lifecycle Past);
// on success the course's points are awarded to the trainee.
func (s *ledgerService) MarkCourseComplete(ctx context.Context, courseID primitive.ObjectID) (*domain.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	if course.Status == domain.CourseCompleted {
		return nil, ErrAlreadyCompleted
	}
	now := s.clock.Now()
	if course.Lifecycle(now) != domain.LifecyclePast {
		return nil, ErrNotYetElapsed
	}

	completedAt := now
	course.Status = domain.CourseCompleted
	course.CompletedAt = &completedAt

	if err := s.courseRepo.Update(ctx, course); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	if err := s.points.Award(ctx, course.TraineeID, course.Points); err != nil {
		return nil, err
	}
	return course, nil
}

// === Training Sessions ===

// AddTrainingSession validates a scheduling intent and stores the new
// session with status "scheduled".
func (s *ledgerService) AddTrainingSession(ctx context.Context, traineeID primitive.ObjectID, input SessionInput) (*domain.TrainingSession, error) {
	if traineeID == primitive.NilObjectID {
		return nil, ErrTraineeNotFound
	}
	if _, err := s.traineeRepo.GetByID(ctx, traineeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTraineeNotFound
		}
		return nil, err
	}

	session := &domain.TrainingSession{
		TraineeID:   traineeID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Date:        input.Date,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Location:    input.Location,
		Instructor:  input.Instructor,
		Points:      input.Points,
		Status:      domain.SessionScheduled,
	}

	if errs := validateSession(session); len(errs) > 0 {
		return nil, errs
	}

	sessionID, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return nil, err
	}
	return s.sessionRepo.GetByID(ctx, sessionID)
}

// UpdateTrainingSession merges the edit into the stored session and
// re-validates the combined date/time interval before persisting.
func (s *ledgerService) UpdateTrainingSession(ctx context.Context, sessionID primitive.ObjectID, update SessionUpdate) (*domain.TrainingSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if update.Title != nil {
		session.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		session.Description = *update.Description
	}
	if update.Date != nil {
		session.Date = *update.Date
	}
	if update.StartTime != nil {
		session.StartTime = *update.StartTime
	}
	if update.EndTime != nil {
		session.EndTime = *update.EndTime
	}
	if update.Location != nil {
		session.Location = *update.Location
	}
	if update.Instructor != nil {
		session.Instructor = *update.Instructor
	}
	if update.Points != nil {
		session.Points = *update.Points
	}

	if errs := validateSession(session); len(errs) > 0 {
		return nil, errs
	}

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// DeleteTrainingSession removes the session; missing ids are a no-op.
func (s *ledgerService) DeleteTrainingSession(ctx context.Context, sessionID primitive.ObjectID) error {
	err := s.sessionRepo.Delete(ctx, sessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}

// MarkSessionComplete performs the one-way completion transition for a
// training session, gated on the session's end time having elapsed.
func (s *ledgerService) MarkSessionComplete(ctx context.Context, sessionID primitive.ObjectID) (*domain.TrainingSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if session.Status == domain.SessionCompleted {
		return nil, ErrAlreadyCompleted
	}
	now := s.clock.Now()
	if session.Lifecycle(now) != domain.LifecyclePast {
		return nil, ErrNotYetElapsed
	}

	completedAt := now
	session.Status = domain.SessionCompleted
	session.CompletedAt = &completedAt

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	// Zero-point sessions complete without touching the account.
	if session.Points > 0 {
		if err := s.points.Award(ctx, session.TraineeID, session.Points); err != nil {
			return nil, err
		}
	}
	return session, nil
}

// --- Validation ---

func validateCourse(course *domain.Course) domain.ValidationErrors {
	errs := domain.ValidationErrors{}

	if course.Title == "" {
		errs["title"] = "Title is required"
	}
	if course.StartDate.IsZero() {
		errs["startDate"] = "Start date is required"
	}
	if course.EndDate.IsZero() {
		errs["endDate"] = "End date is required"
	} else if !course.StartDate.IsZero() && !course.EndDate.After(course.StartDate) {
		errs["endDate"] = "End date must be after start date"
	}
	if course.Points < domain.MinCoursePoints || course.Points > domain.MaxCoursePoints {
		errs["points"] = "Points must be between 1 and 50"
	}
	if !course.Category.IsValid() {
		errs["category"] = "Unknown category"
	}

	return errs
}

func validateSession(session *domain.TrainingSession) domain.ValidationErrors {
	errs := domain.ValidationErrors{}

	if session.Title == "" {
		errs["title"] = "Title is required"
	}
	if session.Date.IsZero() {
		errs["date"] = "Date is required"
	}

	var start, end time.Time
	startOK, endOK := false, false

	if session.StartTime == "" {
		errs["startTime"] = "Start time is required"
	} else if t, err := domain.CombineDateTime(session.Date, session.StartTime); err != nil {
		errs["startTime"] = "Start time must be in HH:MM format"
	} else {
		start, startOK = t, true
	}

	if session.EndTime == "" {
		errs["endTime"] = "End time is required"
	} else if t, err := domain.CombineDateTime(session.Date, session.EndTime); err != nil {
		errs["endTime"] = "End time must be in HH:MM format"
	} else {
		end, endOK = t, true
	}

	if startOK && endOK && !end.After(start) {
		errs["endTime"] = "End time must be after start time"
	}

	if session.Points < 0 {
		errs["points"] = "Points must not be negative"
	}

	return errs
}
