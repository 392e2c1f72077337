package service

import (
	"alcyxob/training-app/internal/domain"
	"alcyxob/training-app/internal/repository"
	"alcyxob/training-app/internal/storage"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrCourseNotCompleted  = errors.New("certificates can only be attached to completed courses")
	ErrCertificateNotFound = errors.New("no certificate uploaded for this course")
	ErrCertificateExists   = errors.New("a certificate was already uploaded for this course")
	ErrUploadURLError      = errors.New("failed to generate upload URL")
	ErrDownloadURLError    = errors.New("failed to generate download URL")
)

// CertificateUploadResponse carries the presigned URL and the object key
// the caller must report back on confirm.
type CertificateUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// --- Service Interface ---

// CertificateService manages completion certificates: direct-to-storage
// uploads via presigned URLs with metadata kept alongside the course.
// Only Completed courses accept certificates.
type CertificateService interface {
	RequestUploadURL(ctx context.Context, courseID primitive.ObjectID, contentType string) (*CertificateUploadResponse, error)
	ConfirmUpload(ctx context.Context, courseID primitive.ObjectID, objectKey, fileName string, fileSize int64, contentType string) (*domain.Certificate, error)
	GetDownloadURL(ctx context.Context, courseID primitive.ObjectID) (string, error)
}

// --- Service Implementation ---

// certificateService implements the CertificateService interface.
type certificateService struct {
	courseRepo      repository.CourseRepository
	certificateRepo repository.CertificateRepository
	fileStorage     storage.FileStorage
}

// NewCertificateService creates a new instance of certificateService.
func NewCertificateService(
	courseRepo repository.CourseRepository,
	certificateRepo repository.CertificateRepository,
	fileStorage storage.FileStorage,
) CertificateService {
	return &certificateService{
		courseRepo:      courseRepo,
		certificateRepo: certificateRepo,
		fileStorage:     fileStorage,
	}
}

// RequestUploadURL generates a presigned PUT URL for uploading a completion
// certificate for a completed course.
func (s *certificateService) RequestUploadURL(ctx context.Context, courseID primitive.ObjectID, contentType string) (*CertificateUploadResponse, error) {
	if courseID == primitive.NilObjectID {
		return nil, errors.New("course ID is required")
	}
	if contentType == "" {
		return nil, errors.New("content type is required")
	}

	course, err := s.completedCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	// One certificate per course
	if _, err := s.certificateRepo.GetByCourseID(ctx, courseID); err == nil {
		return nil, ErrCertificateExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	uniqueID := uuid.NewString()
	fileExtension := ""
	parts := strings.Split(contentType, "/")
	if len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("certificates", course.TraineeID.Hex(), courseID.Hex(), fmt.Sprintf("%s.%s", uniqueID, fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}

	return &CertificateUploadResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	}, nil
}

// ConfirmUpload records the certificate metadata after the client has
// uploaded the object with the presigned URL.
func (s *certificateService) ConfirmUpload(ctx context.Context, courseID primitive.ObjectID, objectKey, fileName string, fileSize int64, contentType string) (*domain.Certificate, error) {
	if courseID == primitive.NilObjectID || objectKey == "" {
		return nil, errors.New("course ID and object key are required")
	}

	course, err := s.completedCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	cert := &domain.Certificate{
		CourseID:    courseID,
		TraineeID:   course.TraineeID,
		S3ObjectKey: objectKey,
		FileName:    fileName,
		ContentType: contentType,
		Size:        fileSize,
		// ID, UploadedAt set by repository
	}

	certID, err := s.certificateRepo.Create(ctx, cert)
	if err != nil {
		return nil, err
	}
	cert.ID = certID
	return cert, nil
}

// GetDownloadURL generates a temporary URL for viewing the certificate.
func (s *certificateService) GetDownloadURL(ctx context.Context, courseID primitive.ObjectID) (string, error) {
	cert, err := s.certificateRepo.GetByCourseID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrCertificateNotFound
		}
		return "", err
	}

	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, cert.S3ObjectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", ErrDownloadURLError
	}
	return downloadURL, nil
}

func (s *certificateService) completedCourse(ctx context.Context, courseID primitive.ObjectID) (*domain.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	if course.Status != domain.CourseCompleted {
		return nil, ErrCourseNotCompleted
	}
	return course, nil
}
