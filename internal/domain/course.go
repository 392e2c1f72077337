package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourseStatus is the stored (persisted) status of a course enrollment.
// The temporal labels Upcoming/Ongoing/Past are never stored; see status.go.
type CourseStatus string

const (
	CourseEnrolled  CourseStatus = "enrolled"
	CourseCompleted CourseStatus = "completed"
)

// Category classifies a course. The set is closed; there is no dynamic
// extension.
type Category string

const (
	CategoryGeneral         Category = "General"
	CategoryProgramming     Category = "Programming"
	CategoryDesign          Category = "Design"
	CategoryMarketing       Category = "Marketing"
	CategoryManagement      Category = "Management"
	CategoryTechnicalSkills Category = "Technical Skills"
	CategorySoftSkills      Category = "Soft Skills"
	CategoryLanguage        Category = "Language"
	CategoryCertification   Category = "Certification"
)

// Categories returns the closed set of course categories, in display order.
func Categories() []Category {
	return []Category{
		CategoryGeneral,
		CategoryProgramming,
		CategoryDesign,
		CategoryMarketing,
		CategoryManagement,
		CategoryTechnicalSkills,
		CategorySoftSkills,
		CategoryLanguage,
		CategoryCertification,
	}
}

// IsValid reports whether c is a member of the closed category set.
func (c Category) IsValid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Bounds for course completion points.
const (
	MinCoursePoints = 1
	MaxCoursePoints = 50
)

// Course represents a trainee's enrollment in a course. The interval
// [StartDate, EndDate] drives the derived lifecycle status; EndDate is
// always strictly after StartDate.
type Course struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TraineeID    primitive.ObjectID `bson:"traineeId" json:"traineeId"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	StartDate    time.Time          `bson:"startDate" json:"startDate"`
	EndDate      time.Time          `bson:"endDate" json:"endDate"`
	Instructor   string             `bson:"instructor,omitempty" json:"instructor,omitempty"`
	Category     Category           `bson:"category" json:"category"`
	Points       int                `bson:"points" json:"points"`
	Duration     string             `bson:"duration,omitempty" json:"duration,omitempty"`
	Requirements string             `bson:"requirements,omitempty" json:"requirements,omitempty"`

	// Status is "completed" iff CompletedAt is set. Completion is one-way.
	Status      CourseStatus `bson:"status" json:"status"`
	CompletedAt *time.Time   `bson:"completedAt,omitempty" json:"completedAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Lifecycle derives the course's temporal status at the given instant.
func (c *Course) Lifecycle(now time.Time) LifecycleStatus {
	return DeriveStatus(now, c.StartDate, c.EndDate, c.Status == CourseCompleted)
}
