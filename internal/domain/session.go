package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionStatus is the stored status of a training session.
type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
)

// TimeOfDayLayout is the wire format for session start/end times ("09:00").
const TimeOfDayLayout = "15:04"

// TrainingSession represents a single scheduled training session for a
// trainee. The session interval is Date combined with StartTime/EndTime;
// the combined end must be strictly after the combined start.
type TrainingSession struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TraineeID   primitive.ObjectID `bson:"traineeId" json:"traineeId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Date        time.Time          `bson:"date" json:"date"`
	StartTime   string             `bson:"startTime" json:"startTime"`
	EndTime     string             `bson:"endTime" json:"endTime"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	Instructor  string             `bson:"instructor,omitempty" json:"instructor,omitempty"`
	Points      int                `bson:"points" json:"points"`

	// Status is "completed" iff CompletedAt is set. Completion is one-way.
	Status      SessionStatus `bson:"status" json:"status"`
	CompletedAt *time.Time    `bson:"completedAt,omitempty" json:"completedAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CombineDateTime merges a calendar date with a "15:04" time-of-day string
// into a single instant in the date's location.
func CombineDateTime(date time.Time, timeOfDay string) (time.Time, error) {
	tod, err := time.Parse(TimeOfDayLayout, timeOfDay)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time of day %q: %w", timeOfDay, err)
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		tod.Hour(), tod.Minute(), 0, 0,
		date.Location(),
	), nil
}

// Interval returns the session's combined start and end instants.
func (s *TrainingSession) Interval() (start, end time.Time, err error) {
	start, err = CombineDateTime(s.Date, s.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = CombineDateTime(s.Date, s.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// Lifecycle derives the session's temporal status at the given instant.
// Sessions with an unparseable interval (which validation prevents from
// being stored) are labelled Past.
func (s *TrainingSession) Lifecycle(now time.Time) LifecycleStatus {
	start, end, err := s.Interval()
	if err != nil {
		return LifecyclePast
	}
	return DeriveStatus(now, start, end, s.Status == SessionCompleted)
}
