package service

import (
	"alcyxob/training-app/internal/clock"
	"alcyxob/training-app/internal/domain"
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type pointsFixture struct {
	points    PointsService
	trainees  *fakeTraineeRepo
	courses   *fakeCourseRepo
	sessions  *fakeSessionRepo
	checkIns  *fakeCheckInRepo
	clock     *clock.Fixed
	traineeID primitive.ObjectID
}

func newPointsFixture(t *testing.T, flagPenalty int) *pointsFixture {
	t.Helper()

	trainees := newFakeTraineeRepo()
	courses := newFakeCourseRepo()
	sessions := newFakeSessionRepo()
	checkIns := newFakeCheckInRepo()
	clk := clock.NewFixed(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	traineeID, err := trainees.Create(context.Background(), &domain.Trainee{Name: "Ivan Petrov"})
	if err != nil {
		t.Fatalf("seeding trainee: %v", err)
	}

	return &pointsFixture{
		points:    NewPointsService(trainees, checkIns, courses, sessions, flagPenalty, clk),
		trainees:  trainees,
		courses:   courses,
		sessions:  sessions,
		checkIns:  checkIns,
		clock:     clk,
		traineeID: traineeID,
	}
}

func TestAward(t *testing.T) {
	f := newPointsFixture(t, 5)

	if err := f.points.Award(context.Background(), f.traineeID, 7); err != nil {
		t.Fatalf("Award: %v", err)
	}
	trainee, _ := f.trainees.GetByID(context.Background(), f.traineeID)
	if trainee.Points != 7 {
		t.Errorf("points = %d, want 7", trainee.Points)
	}

	if err := f.points.Award(context.Background(), f.traineeID, 0); !errors.Is(err, ErrInvalidAward) {
		t.Errorf("zero award error = %v, want ErrInvalidAward", err)
	}
	if err := f.points.Award(context.Background(), f.traineeID, -3); !errors.Is(err, ErrInvalidAward) {
		t.Errorf("negative award error = %v, want ErrInvalidAward", err)
	}
	if err := f.points.Award(context.Background(), primitive.NewObjectID(), 5); !errors.Is(err, ErrTraineeNotFound) {
		t.Errorf("unknown trainee error = %v, want ErrTraineeNotFound", err)
	}
}

func TestPenalize(t *testing.T) {
	f := newPointsFixture(t, 5)

	flag, err := f.points.Penalize(context.Background(), f.traineeID, "  missed session  ")
	if err != nil {
		t.Fatalf("Penalize: %v", err)
	}
	if flag.Reason != "missed session" {
		t.Errorf("flag reason = %q, want trimmed reason", flag.Reason)
	}
	if flag.PointsDelta != -5 {
		t.Errorf("flag delta = %d, want -5", flag.PointsDelta)
	}
	if !flag.Timestamp.Equal(f.clock.Now()) {
		t.Errorf("flag timestamp = %v, want clock instant", flag.Timestamp)
	}

	trainee, _ := f.trainees.GetByID(context.Background(), f.traineeID)
	if trainee.Points != -5 {
		t.Errorf("points after flag = %d, want -5 (totals may go negative)", trainee.Points)
	}
	if len(trainee.Flags) != 1 {
		t.Fatalf("flag history length = %d, want 1", len(trainee.Flags))
	}
}

func TestPenalizeAppendOnlyHistory(t *testing.T) {
	f := newPointsFixture(t, 5)

	for i := 0; i < 3; i++ {
		if _, err := f.points.Penalize(context.Background(), f.traineeID, "late"); err != nil {
			t.Fatalf("Penalize #%d: %v", i+1, err)
		}
		f.clock.Advance(time.Hour)
	}

	trainee, _ := f.trainees.GetByID(context.Background(), f.traineeID)
	if len(trainee.Flags) != 3 {
		t.Errorf("flag history length = %d, want 3", len(trainee.Flags))
	}
	if trainee.Points != -15 {
		t.Errorf("points = %d, want -15", trainee.Points)
	}
}

func TestPenalizeConfiguredMagnitude(t *testing.T) {
	f := newPointsFixture(t, 8)

	flag, err := f.points.Penalize(context.Background(), f.traineeID, "late")
	if err != nil {
		t.Fatalf("Penalize: %v", err)
	}
	if flag.PointsDelta != -8 {
		t.Errorf("flag delta = %d, want -8", flag.PointsDelta)
	}
}

func TestPenalizeRequiresReason(t *testing.T) {
	f := newPointsFixture(t, 5)

	if _, err := f.points.Penalize(context.Background(), f.traineeID, "   "); !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("blank reason error = %v, want ErrReasonRequired", err)
	}
	trainee, _ := f.trainees.GetByID(context.Background(), f.traineeID)
	if len(trainee.Flags) != 0 || trainee.Points != 0 {
		t.Error("rejected flag still mutated the account")
	}
}

func TestRecordCheckIn(t *testing.T) {
	f := newPointsFixture(t, 5)

	checkIn, err := f.points.RecordCheckIn(context.Background(), f.traineeID, 10)
	if err != nil {
		t.Fatalf("RecordCheckIn: %v", err)
	}
	if checkIn.Points != 10 {
		t.Errorf("check-in points = %d, want 10", checkIn.Points)
	}
	if checkIn.ID == primitive.NilObjectID {
		t.Error("check-in has no ID")
	}

	trainee, _ := f.trainees.GetByID(context.Background(), f.traineeID)
	if trainee.Points != 10 {
		t.Errorf("points after check-in = %d, want 10", trainee.Points)
	}

	history, _ := f.checkIns.GetByTraineeID(context.Background(), f.traineeID)
	if len(history) != 1 {
		t.Errorf("check-in history length = %d, want 1", len(history))
	}

	if _, err := f.points.RecordCheckIn(context.Background(), f.traineeID, 0); !errors.Is(err, ErrInvalidAward) {
		t.Errorf("zero-point check-in error = %v, want ErrInvalidAward", err)
	}
	if _, err := f.points.RecordCheckIn(context.Background(), primitive.NewObjectID(), 10); !errors.Is(err, ErrTraineeNotFound) {
		t.Errorf("unknown trainee error = %v, want ErrTraineeNotFound", err)
	}
}

func TestProgress(t *testing.T) {
	f := newPointsFixture(t, 5)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		course := &domain.Course{TraineeID: f.traineeID, Status: domain.CourseEnrolled}
		if i == 0 {
			course.Status = domain.CourseCompleted
		}
		if _, err := f.courses.Create(ctx, course); err != nil {
			t.Fatalf("seeding course: %v", err)
		}
	}
	for i := 0; i < 2; i++ {
		session := &domain.TrainingSession{TraineeID: f.traineeID, Status: domain.SessionCompleted}
		if _, err := f.sessions.Create(ctx, session); err != nil {
			t.Fatalf("seeding session: %v", err)
		}
	}

	progress, err := f.points.Progress(ctx, f.traineeID)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if progress.CoursesTotal != 3 || progress.CoursesCompleted != 1 {
		t.Errorf("courses = %d/%d, want 1/3", progress.CoursesCompleted, progress.CoursesTotal)
	}
	if progress.SessionsTotal != 2 || progress.SessionsCompleted != 2 {
		t.Errorf("sessions = %d/%d, want 2/2", progress.SessionsCompleted, progress.SessionsTotal)
	}
}
