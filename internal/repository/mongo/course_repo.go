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

const courseCollectionName = "courses"

// mongoCourseRepository implements repository.CourseRepository
type mongoCourseRepository struct {
	collection *mongo.Collection
}

// NewMongoCourseRepository creates a new Course repository backed by MongoDB.
func NewMongoCourseRepository(db *mongo.Database) repository.CourseRepository {
	return &mongoCourseRepository{
		collection: db.Collection(courseCollectionName),
	}
}

// Create inserts a new course enrollment.
func (r *mongoCourseRepository) Create(ctx context.Context, course *domain.Course) (primitive.ObjectID, error) {
	if course.Title == "" || course.TraineeID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("course title and trainee ID are required")
	}

	course.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, course)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByID retrieves a course by its ID.
func (r *mongoCourseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Course, error) {
	var course domain.Course
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&course)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

// GetByTraineeID retrieves all course enrollments for a trainee,
// newest start date first.
func (r *mongoCourseRepository) GetByTraineeID(ctx context.Context, traineeID primitive.ObjectID) ([]domain.Course, error) {
	var courses []domain.Course
	filter := bson.M{"traineeId": traineeID}

	findOptions := options.Find().SetSort(bson.D{{Key: "startDate", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &courses); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// Update modifies an existing course enrollment.
// The TraineeID is never changed and UpdatedAt is refreshed.
func (r *mongoCourseRepository) Update(ctx context.Context, course *domain.Course) error {
	if course.ID == primitive.NilObjectID {
		return errors.New("course ID is required for update")
	}

	filter := bson.M{"_id": course.ID}
	update := bson.M{
		"$set": bson.M{
			"title":        course.Title,
			"description":  course.Description,
			"startDate":    course.StartDate,
			"endDate":      course.EndDate,
			"instructor":   course.Instructor,
			"category":     course.Category,
			"points":       course.Points,
			"duration":     course.Duration,
			"requirements": course.Requirements,
			"status":       course.Status,
			"completedAt":  course.CompletedAt,
			"updatedAt":    time.Now().UTC(),
			// Note: We specifically DO NOT set traineeId here
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a course enrollment. Missing ids surface as ErrNotFound;
// the service layer decides whether that matters.
func (r *mongoCourseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Counts returns the total and completed enrollment counts for a trainee.
func (r *mongoCourseRepository) Counts(ctx context.Context, traineeID primitive.ObjectID) (int64, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{"traineeId": traineeID})
	if err != nil {
		return 0, 0, err
	}
	completed, err := r.collection.CountDocuments(ctx, bson.M{
		"traineeId": traineeID,
		"status":    domain.CourseCompleted,
	})
	if err != nil {
		return 0, 0, err
	}
	return total, completed, nil
}

// EnsureCourseIndexes creates necessary indexes for the courses collection.
func EnsureCourseIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Index for listing a trainee's enrollments
			Keys:    bson.D{{Key: "traineeId", Value: 1}, {Key: "startDate", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "traineeId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
