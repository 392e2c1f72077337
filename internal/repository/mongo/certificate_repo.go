package mongo

import (
	"alcyxob/training-app/internal/domain"
	"alcyxob/training-app/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const certificateCollectionName = "certificates"

// mongoCertificateRepository implements repository.CertificateRepository
type mongoCertificateRepository struct {
	collection *mongo.Collection
}

// NewMongoCertificateRepository creates a new Certificate repository backed by MongoDB.
func NewMongoCertificateRepository(db *mongo.Database) repository.CertificateRepository {
	return &mongoCertificateRepository{
		collection: db.Collection(certificateCollectionName),
	}
}

// Create inserts certificate metadata after the object has been uploaded.
func (r *mongoCertificateRepository) Create(ctx context.Context, cert *domain.Certificate) (primitive.ObjectID, error) {
	if cert.CourseID == primitive.NilObjectID || cert.S3ObjectKey == "" {
		return primitive.NilObjectID, errors.New("course ID and object key are required")
	}

	cert.ID = primitive.NewObjectID()
	cert.UploadedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, cert)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByCourseID retrieves the certificate metadata for a course.
// One certificate per course.
func (r *mongoCertificateRepository) GetByCourseID(ctx context.Context, courseID primitive.ObjectID) (*domain.Certificate, error) {
	var cert domain.Certificate
	filter := bson.M{"courseId": courseID}

	err := r.collection.FindOne(ctx, filter).Decode(&cert)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &cert, nil
}

// EnsureCertificateIndexes creates necessary indexes for the certificates collection.
func EnsureCertificateIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "courseId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
