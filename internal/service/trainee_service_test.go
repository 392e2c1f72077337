package service

import (
	"alcyxob/training-app/internal/domain"
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTraineeService() (TraineeService, *fakeTraineeRepo, *fakeCourseRepo) {
	trainees := newFakeTraineeRepo()
	courses := newFakeCourseRepo()
	sessions := newFakeSessionRepo()
	checkIns := newFakeCheckInRepo()
	return NewTraineeService(trainees, courses, sessions, checkIns), trainees, courses
}

func TestCreateTrainee(t *testing.T) {
	svc, _, _ := newTraineeService()

	trainee, err := svc.CreateTrainee(context.Background(), TraineeInput{
		SerialNumber: " SN-001 ",
		Name:         "  Ivan Petrov ",
		Email:        "ivan@example.com",
	})
	if err != nil {
		t.Fatalf("CreateTrainee: %v", err)
	}
	if trainee.Name != "Ivan Petrov" {
		t.Errorf("name = %q, want trimmed name", trainee.Name)
	}
	if trainee.SerialNumber != "SN-001" {
		t.Errorf("serial = %q, want trimmed serial", trainee.SerialNumber)
	}
	if trainee.Points != 0 {
		t.Errorf("new trainee points = %d, want 0", trainee.Points)
	}
	if len(trainee.Flags) != 0 {
		t.Errorf("new trainee flags = %d, want 0", len(trainee.Flags))
	}
}

func TestCreateTraineeRequiresName(t *testing.T) {
	svc, _, _ := newTraineeService()

	_, err := svc.CreateTrainee(context.Background(), TraineeInput{Name: "   "})
	var errs domain.ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("CreateTrainee error = %v, want ValidationErrors", err)
	}
	if errs["name"] != "Name is required" {
		t.Errorf("errs[name] = %q", errs["name"])
	}
}

func TestGetTraineeByID(t *testing.T) {
	svc, trainees, _ := newTraineeService()

	id, _ := trainees.Create(context.Background(), &domain.Trainee{Name: "Ivan"})
	got, err := svc.GetTraineeByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetTraineeByID: %v", err)
	}
	if got.Name != "Ivan" {
		t.Errorf("name = %q", got.Name)
	}

	if _, err := svc.GetTraineeByID(context.Background(), primitive.NewObjectID()); !errors.Is(err, ErrTraineeNotFound) {
		t.Fatalf("unknown id error = %v, want ErrTraineeNotFound", err)
	}
}

func TestListTraineesNeverNil(t *testing.T) {
	svc, _, _ := newTraineeService()

	trainees, err := svc.ListTrainees(context.Background())
	if err != nil {
		t.Fatalf("ListTrainees: %v", err)
	}
	if trainees == nil {
		t.Fatal("ListTrainees returned nil, want empty slice")
	}
}

func TestListCoursesDistinguishesEmptyFromMissing(t *testing.T) {
	svc, trainees, courses := newTraineeService()
	ctx := context.Background()

	id, _ := trainees.Create(ctx, &domain.Trainee{Name: "Ivan"})

	// Known trainee with no enrollments: empty list, not an error.
	got, err := svc.ListCourses(ctx, id)
	if err != nil {
		t.Fatalf("ListCourses: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("ListCourses = %v, want empty slice", got)
	}

	// Unknown trainee: not found, regardless of the course collection.
	if _, err := svc.ListCourses(ctx, primitive.NewObjectID()); !errors.Is(err, ErrTraineeNotFound) {
		t.Fatalf("unknown trainee error = %v, want ErrTraineeNotFound", err)
	}

	if _, err := courses.Create(ctx, &domain.Course{TraineeID: id, Title: "Networking"}); err != nil {
		t.Fatalf("seeding course: %v", err)
	}
	got, err = svc.ListCourses(ctx, id)
	if err != nil {
		t.Fatalf("ListCourses: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("ListCourses length = %d, want 1", len(got))
	}
}

func TestListSessionsAndCheckInsForUnknownTrainee(t *testing.T) {
	svc, _, _ := newTraineeService()
	ctx := context.Background()

	if _, err := svc.ListSessions(ctx, primitive.NewObjectID()); !errors.Is(err, ErrTraineeNotFound) {
		t.Errorf("ListSessions error = %v, want ErrTraineeNotFound", err)
	}
	if _, err := svc.ListCheckIns(ctx, primitive.NewObjectID()); !errors.Is(err, ErrTraineeNotFound) {
		t.Errorf("ListCheckIns error = %v, want ErrTraineeNotFound", err)
	}
}
