package service

import (
	"alcyxob/training-app/internal/domain"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeFileStorage struct {
	uploadErr   error
	downloadErr error
	lastKey     string
}

func (s *fakeFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.lastKey = objectKey
	return "https://storage.example.com/upload/" + objectKey, nil
}

func (s *fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	if s.downloadErr != nil {
		return "", s.downloadErr
	}
	return "https://storage.example.com/download/" + objectKey, nil
}

func (s *fakeFileStorage) DeleteObject(_ context.Context, _ string) error { return nil }

type certificateFixture struct {
	svc       CertificateService
	courses   *fakeCourseRepo
	certs     *fakeCertificateRepo
	storage   *fakeFileStorage
	traineeID primitive.ObjectID
}

func newCertificateFixture(t *testing.T) *certificateFixture {
	t.Helper()
	return &certificateFixture{
		courses:   newFakeCourseRepo(),
		certs:     newFakeCertificateRepo(),
		storage:   &fakeFileStorage{},
		traineeID: primitive.NewObjectID(),
	}
}

func (f *certificateFixture) service() CertificateService {
	if f.svc == nil {
		f.svc = NewCertificateService(f.courses, f.certs, f.storage)
	}
	return f.svc
}

func (f *certificateFixture) seedCourse(t *testing.T, status domain.CourseStatus) primitive.ObjectID {
	t.Helper()
	id, err := f.courses.Create(context.Background(), &domain.Course{
		TraineeID: f.traineeID,
		Title:     "Networking",
		Status:    status,
	})
	if err != nil {
		t.Fatalf("seeding course: %v", err)
	}
	return id
}

func TestRequestUploadURL(t *testing.T) {
	f := newCertificateFixture(t)
	courseID := f.seedCourse(t, domain.CourseCompleted)

	resp, err := f.service().RequestUploadURL(context.Background(), courseID, "application/pdf")
	if err != nil {
		t.Fatalf("RequestUploadURL: %v", err)
	}
	if resp.UploadURL == "" {
		t.Error("empty upload URL")
	}
	wantPrefix := "certificates/" + f.traineeID.Hex() + "/" + courseID.Hex() + "/"
	if !strings.HasPrefix(resp.ObjectKey, wantPrefix) {
		t.Errorf("object key = %q, want prefix %q", resp.ObjectKey, wantPrefix)
	}
	if !strings.HasSuffix(resp.ObjectKey, ".pdf") {
		t.Errorf("object key = %q, want .pdf suffix", resp.ObjectKey)
	}
}

func TestRequestUploadURLRequiresCompletedCourse(t *testing.T) {
	f := newCertificateFixture(t)
	courseID := f.seedCourse(t, domain.CourseEnrolled)

	if _, err := f.service().RequestUploadURL(context.Background(), courseID, "application/pdf"); !errors.Is(err, ErrCourseNotCompleted) {
		t.Fatalf("error = %v, want ErrCourseNotCompleted", err)
	}
	if _, err := f.service().RequestUploadURL(context.Background(), primitive.NewObjectID(), "application/pdf"); !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("unknown course error = %v, want ErrCourseNotFound", err)
	}
}

func TestConfirmUploadAndDownload(t *testing.T) {
	f := newCertificateFixture(t)
	courseID := f.seedCourse(t, domain.CourseCompleted)
	ctx := context.Background()

	cert, err := f.service().ConfirmUpload(ctx, courseID, "certificates/abc/def/xyz.pdf", "cert.pdf", 1024, "application/pdf")
	if err != nil {
		t.Fatalf("ConfirmUpload: %v", err)
	}
	if cert.ID == primitive.NilObjectID {
		t.Error("certificate has no ID")
	}
	if cert.TraineeID != f.traineeID {
		t.Error("certificate not bound to the course's trainee")
	}

	url, err := f.service().GetDownloadURL(ctx, courseID)
	if err != nil {
		t.Fatalf("GetDownloadURL: %v", err)
	}
	if !strings.Contains(url, "certificates/abc/def/xyz.pdf") {
		t.Errorf("download URL = %q, want it to reference the stored key", url)
	}
}

func TestRequestUploadURLRejectsSecondCertificate(t *testing.T) {
	f := newCertificateFixture(t)
	courseID := f.seedCourse(t, domain.CourseCompleted)
	ctx := context.Background()

	if _, err := f.service().ConfirmUpload(ctx, courseID, "certificates/a/b/c.pdf", "cert.pdf", 1, "application/pdf"); err != nil {
		t.Fatalf("ConfirmUpload: %v", err)
	}
	if _, err := f.service().RequestUploadURL(ctx, courseID, "application/pdf"); !errors.Is(err, ErrCertificateExists) {
		t.Fatalf("error = %v, want ErrCertificateExists", err)
	}
}

func TestGetDownloadURLWithoutCertificate(t *testing.T) {
	f := newCertificateFixture(t)
	courseID := f.seedCourse(t, domain.CourseCompleted)

	if _, err := f.service().GetDownloadURL(context.Background(), courseID); !errors.Is(err, ErrCertificateNotFound) {
		t.Fatalf("error = %v, want ErrCertificateNotFound", err)
	}
}
