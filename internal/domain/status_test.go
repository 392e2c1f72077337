package domain

import (
	"testing"
	"time"
)

func TestDeriveStatus(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		now       time.Time
		completed bool
		want      LifecycleStatus
	}{
		{"before start", start.Add(-24 * time.Hour), false, LifecycleUpcoming},
		{"at start", start, false, LifecycleOngoing},
		{"inside interval", start.Add(5 * 24 * time.Hour), false, LifecycleOngoing},
		{"at end", end, false, LifecycleOngoing},
		{"after end", end.Add(time.Second), false, LifecyclePast},
		{"completed overrides upcoming", start.Add(-24 * time.Hour), true, LifecycleCompleted},
		{"completed overrides past", end.Add(48 * time.Hour), true, LifecycleCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(tt.now, start, end, tt.completed)
			if got != tt.want {
				t.Errorf("DeriveStatus(%v) = %q, want %q", tt.now, got, tt.want)
			}
		})
	}
}

func TestDeriveStatusIsPure(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	now := start.Add(time.Hour)

	first := DeriveStatus(now, start, end, false)
	for i := 0; i < 10; i++ {
		if got := DeriveStatus(now, start, end, false); got != first {
			t.Fatalf("DeriveStatus changed between calls: %q then %q", first, got)
		}
	}
}

func TestDaysUntilStart(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		want  int
	}{
		{"exactly three days", now.Add(3 * 24 * time.Hour), 3},
		{"partial day truncates", now.Add(3*24*time.Hour + 23*time.Hour), 3},
		{"under one day", now.Add(6 * time.Hour), 0},
		{"start in the past", now.Add(-48 * time.Hour), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntilStart(now, tt.start); got != tt.want {
				t.Errorf("DaysUntilStart = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	if got := DaysRemaining(now, now.Add(10*24*time.Hour)); got != 10 {
		t.Errorf("DaysRemaining = %d, want 10", got)
	}
	if got := DaysRemaining(now, now.Add(-time.Hour)); got != 0 {
		t.Errorf("DaysRemaining for elapsed interval = %d, want 0", got)
	}
}

func TestDurationHours(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want float64
	}{
		{"whole hours", base.Add(2 * time.Hour), 2.0},
		{"half hour", base.Add(90 * time.Minute), 1.5},
		{"rounds to tenth", base.Add(time.Hour + 16*time.Minute), 1.3},
		{"rounds down", base.Add(time.Hour + 2*time.Minute), 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DurationHours(base, tt.end); got != tt.want {
				t.Errorf("DurationHours = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCourseLifecycle(t *testing.T) {
	course := &Course{
		StartDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
		Status:    CourseEnrolled,
	}

	now := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	if got := course.Lifecycle(now); got != LifecycleOngoing {
		t.Errorf("Lifecycle mid-interval = %q, want %q", got, LifecycleOngoing)
	}

	course.Status = CourseCompleted
	if got := course.Lifecycle(now); got != LifecycleCompleted {
		t.Errorf("Lifecycle after completion = %q, want %q", got, LifecycleCompleted)
	}
}

func TestSessionLifecycle(t *testing.T) {
	session := &TrainingSession{
		Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "11:00",
		Status:    SessionScheduled,
	}

	tests := []struct {
		name string
		now  time.Time
		want LifecycleStatus
	}{
		{"morning before", time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), LifecycleUpcoming},
		{"during", time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC), LifecycleOngoing},
		{"after", time.Date(2025, 3, 10, 11, 0, 1, 0, time.UTC), LifecyclePast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := session.Lifecycle(tt.now); got != tt.want {
				t.Errorf("Lifecycle(%v) = %q, want %q", tt.now, got, tt.want)
			}
		})
	}
}

func TestSessionLifecycleUnparseableInterval(t *testing.T) {
	session := &TrainingSession{
		Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "morning",
		EndTime:   "11:00",
		Status:    SessionScheduled,
	}

	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if got := session.Lifecycle(now); got != LifecyclePast {
		t.Errorf("Lifecycle with bad times = %q, want %q", got, LifecyclePast)
	}
}

func TestCombineDateTime(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	got, err := CombineDateTime(date, "14:30")
	if err != nil {
		t.Fatalf("CombineDateTime returned error: %v", err)
	}
	want := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CombineDateTime = %v, want %v", got, want)
	}

	if _, err := CombineDateTime(date, "2pm"); err == nil {
		t.Error("CombineDateTime accepted an unparseable time of day")
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{
		"title":  "Title is required",
		"points": "Points must be between 1 and 50",
	}

	got := errs.Error()
	want := "validation failed: points: Points must be between 1 and 50; title: Title is required"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestCategories(t *testing.T) {
	cats := Categories()
	if len(cats) == 0 {
		t.Fatal("Categories returned an empty list")
	}
	for _, c := range cats {
		if !c.IsValid() {
			t.Errorf("listed category %q reports invalid", c)
		}
	}
	if Category("juggling").IsValid() {
		t.Error("unknown category reports valid")
	}
}
