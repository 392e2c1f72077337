package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Certificate holds the metadata for a completion certificate uploaded to
// object storage for a completed course.
type Certificate struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CourseID    primitive.ObjectID `bson:"courseId" json:"courseId"`
	TraineeID   primitive.ObjectID `bson:"traineeId" json:"traineeId"`
	S3ObjectKey string             `bson:"s3ObjectKey" json:"-"`
	FileName    string             `bson:"fileName" json:"fileName"`
	ContentType string             `bson:"contentType" json:"contentType"`
	Size        int64              `bson:"size" json:"size"`
	UploadedAt  time.Time          `bson:"uploadedAt" json:"uploadedAt"`
}
