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

const traineeCollectionName = "trainees"

// mongoTraineeRepository implements repository.TraineeRepository
type mongoTraineeRepository struct {
	collection *mongo.Collection
}

// NewMongoTraineeRepository creates a new Trainee repository backed by MongoDB.
func NewMongoTraineeRepository(db *mongo.Database) repository.TraineeRepository {
	return &mongoTraineeRepository{
		collection: db.Collection(traineeCollectionName),
	}
}

// Create inserts a new trainee record.
func (r *mongoTraineeRepository) Create(ctx context.Context, trainee *domain.Trainee) (primitive.ObjectID, error) {
	if trainee.Name == "" {
		return primitive.NilObjectID, errors.New("trainee name is required")
	}

	trainee.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	trainee.CreatedAt = now
	trainee.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, trainee)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByID retrieves a trainee by its ID.
func (r *mongoTraineeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainee, error) {
	var trainee domain.Trainee
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&trainee)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &trainee, nil
}

// List retrieves all trainee records, newest first.
func (r *mongoTraineeRepository) List(ctx context.Context) ([]domain.Trainee, error) {
	var trainees []domain.Trainee

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &trainees); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return trainees, nil
}

// AdjustPoints applies delta to the trainee's running point total.
// The total may go negative; no floor is enforced.
func (r *mongoTraineeRepository) AdjustPoints(ctx context.Context, id primitive.ObjectID, delta int) error {
	filter := bson.M{"_id": id}
	update := bson.M{
		"$inc": bson.M{"points": delta},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
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

// AppendFlag pushes the flag onto the trainee's flag history and applies
// its PointsDelta to the point total in a single update.
func (r *mongoTraineeRepository) AppendFlag(ctx context.Context, id primitive.ObjectID, flag domain.Flag) error {
	if flag.Reason == "" {
		return errors.New("flag reason is required")
	}

	filter := bson.M{"_id": id}
	update := bson.M{
		"$push": bson.M{"flags": flag},
		"$inc":  bson.M{"points": flag.PointsDelta},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
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

// EnsureTraineeIndexes creates necessary indexes for the trainees collection.
func EnsureTraineeIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "serialNumber", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
