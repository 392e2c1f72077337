package api

import (
	"alcyxob/training-app/internal/clock"
	"alcyxob/training-app/internal/domain"
	"alcyxob/training-app/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// dateLayout is the wire format for course/session calendar dates.
const dateLayout = "2006-01-02"

// LedgerHandler exposes the activity ledger intents: enrollment,
// scheduling, edits, deletes and the completion transition.
type LedgerHandler struct {
	ledgerService service.LedgerService
	clock         clock.Clock
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService service.LedgerService, clk clock.Clock) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService, clock: clk}
}

// --- DTOs for API (Data Transfer Objects) ---

// CreateCourseRequest defines the expected JSON for an enrollment intent.
// Dates use the "2006-01-02" layout. Binding tags are advisory; the
// authoritative checks live in the ledger service.
type CreateCourseRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Instructor   string `json:"instructor"`
	Category     string `json:"category"`
	Points       int    `json:"points"`
	Duration     string `json:"duration"`
	Requirements string `json:"requirements"`
}

// UpdateCourseRequest defines a partial edit; absent fields keep their
// stored value.
type UpdateCourseRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	StartDate    *string `json:"startDate"`
	EndDate      *string `json:"endDate"`
	Instructor   *string `json:"instructor"`
	Category     *string `json:"category"`
	Points       *int    `json:"points"`
	Duration     *string `json:"duration"`
	Requirements *string `json:"requirements"`
}

// CreateSessionRequest defines the expected JSON for a scheduling intent.
type CreateSessionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Location    string `json:"location"`
	Instructor  string `json:"instructor"`
	Points      int    `json:"points"`
}

// UpdateSessionRequest defines a partial session edit.
type UpdateSessionRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	Location    *string `json:"location"`
	Instructor  *string `json:"instructor"`
	Points      *int    `json:"points"`
}

// CourseResponse is the DTO for returning a course with its derived
// display state. LifecycleStatus, DaysUntilStart and DaysRemaining are
// recomputed from the clock on every read.
type CourseResponse struct {
	ID              string     `json:"id"`
	TraineeID       string     `json:"traineeId"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	StartDate       string     `json:"startDate"`
	EndDate         string     `json:"endDate"`
	Instructor      string     `json:"instructor,omitempty"`
	Category        string     `json:"category"`
	Points          int        `json:"points"`
	Duration        string     `json:"duration,omitempty"`
	Requirements    string     `json:"requirements,omitempty"`
	Status          string     `json:"status"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	LifecycleStatus string     `json:"lifecycleStatus"`
	DaysUntilStart  *int       `json:"daysUntilStart,omitempty"`
	DaysRemaining   *int       `json:"daysRemaining,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// SessionResponse is the DTO for returning a training session with its
// derived display state.
type SessionResponse struct {
	ID              string     `json:"id"`
	TraineeID       string     `json:"traineeId"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Date            string     `json:"date"`
	StartTime       string     `json:"startTime"`
	EndTime         string     `json:"endTime"`
	Location        string     `json:"location,omitempty"`
	Instructor      string     `json:"instructor,omitempty"`
	Points          int        `json:"points"`
	Status          string     `json:"status"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	LifecycleStatus string     `json:"lifecycleStatus"`
	DurationHours   float64    `json:"durationHours"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// MapCourseToResponse converts a domain.Course to CourseResponse, deriving
// the temporal display fields at the given instant.
func MapCourseToResponse(course *domain.Course, now time.Time) CourseResponse {
	if course == nil {
		return CourseResponse{}
	}
	resp := CourseResponse{
		ID:              course.ID.Hex(),
		TraineeID:       course.TraineeID.Hex(),
		Title:           course.Title,
		Description:     course.Description,
		StartDate:       course.StartDate.Format(dateLayout),
		EndDate:         course.EndDate.Format(dateLayout),
		Instructor:      course.Instructor,
		Category:        string(course.Category),
		Points:          course.Points,
		Duration:        course.Duration,
		Requirements:    course.Requirements,
		Status:          string(course.Status),
		CompletedAt:     course.CompletedAt,
		LifecycleStatus: string(course.Lifecycle(now)),
		CreatedAt:       course.CreatedAt,
		UpdatedAt:       course.UpdatedAt,
	}
	switch course.Lifecycle(now) {
	case domain.LifecycleUpcoming:
		days := domain.DaysUntilStart(now, course.StartDate)
		resp.DaysUntilStart = &days
	case domain.LifecycleOngoing:
		days := domain.DaysRemaining(now, course.EndDate)
		resp.DaysRemaining = &days
	}
	return resp
}

// MapCoursesToResponse converts a slice of domain.Course to response DTOs.
func MapCoursesToResponse(courses []domain.Course, now time.Time) []CourseResponse {
	responses := make([]CourseResponse, len(courses))
	for i, course := range courses {
		responses[i] = MapCourseToResponse(&course, now)
	}
	return responses
}

// MapSessionToResponse converts a domain.TrainingSession to SessionResponse.
func MapSessionToResponse(session *domain.TrainingSession, now time.Time) SessionResponse {
	if session == nil {
		return SessionResponse{}
	}
	resp := SessionResponse{
		ID:              session.ID.Hex(),
		TraineeID:       session.TraineeID.Hex(),
		Title:           session.Title,
		Description:     session.Description,
		Date:            session.Date.Format(dateLayout),
		StartTime:       session.StartTime,
		EndTime:         session.EndTime,
		Location:        session.Location,
		Instructor:      session.Instructor,
		Points:          session.Points,
		Status:          string(session.Status),
		CompletedAt:     session.CompletedAt,
		LifecycleStatus: string(session.Lifecycle(now)),
		CreatedAt:       session.CreatedAt,
		UpdatedAt:       session.UpdatedAt,
	}
	if start, end, err := session.Interval(); err == nil {
		resp.DurationHours = domain.DurationHours(start, end)
	}
	return resp
}

// MapSessionsToResponse converts a slice of sessions to response DTOs.
func MapSessionsToResponse(sessions []domain.TrainingSession, now time.Time) []SessionResponse {
	responses := make([]SessionResponse, len(sessions))
	for i, session := range sessions {
		responses[i] = MapSessionToResponse(&session, now)
	}
	return responses
}

// parseDate maps an optional "2006-01-02" string to a time.Time; empty
// strings produce the zero time so the service reports the missing field.
func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// --- Handler Methods ---

// CreateCourse handles POST /trainees/:id/courses.
func (h *LedgerHandler) CreateCourse(c *gin.Context) {
	traineeID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainee ID format.")
		return
	}

	var req CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	startDate, startOK := parseDate(req.StartDate)
	endDate, endOK := parseDate(req.EndDate)
	if !startOK || !endOK {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"startDate": "Dates must use the YYYY-MM-DD format"}})
		return
	}

	course, err := h.ledgerService.AddCourse(c.Request.Context(), traineeID, service.CourseInput{
		Title:        req.Title,
		Description:  req.Description,
		StartDate:    startDate,
		EndDate:      endDate,
		Instructor:   req.Instructor,
		Category:     domain.Category(req.Category),
		Points:       req.Points,
		Duration:     req.Duration,
		Requirements: req.Requirements,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapCourseToResponse(course, h.clock.Now()))
}

// UpdateCourse handles PUT /courses/:id.
func (h *LedgerHandler) UpdateCourse(c *gin.Context) {
	courseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid course ID format.")
		return
	}

	var req UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	update := service.CourseUpdate{
		Title:        req.Title,
		Description:  req.Description,
		Instructor:   req.Instructor,
		Points:       req.Points,
		Duration:     req.Duration,
		Requirements: req.Requirements,
	}
	if req.Category != nil {
		category := domain.Category(*req.Category)
		update.Category = &category
	}
	if req.StartDate != nil {
		startDate, ok := parseDate(*req.StartDate)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"startDate": "Dates must use the YYYY-MM-DD format"}})
			return
		}
		update.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, ok := parseDate(*req.EndDate)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"endDate": "Dates must use the YYYY-MM-DD format"}})
			return
		}
		update.EndDate = &endDate
	}

	course, err := h.ledgerService.UpdateCourse(c.Request.Context(), courseID, update)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapCourseToResponse(course, h.clock.Now()))
}

// DeleteCourse handles DELETE /courses/:id. Deleting a missing id is a
// no-op and still returns 204.
func (h *LedgerHandler) DeleteCourse(c *gin.Context) {
	courseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid course ID format.")
		return
	}

	if err := h.ledgerService.DeleteCourse(c.Request.Context(), courseID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CompleteCourse handles POST /courses/:id/complete.
func (h *LedgerHandler) CompleteCourse(c *gin.Context) {
	courseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid course ID format.")
		return
	}

	course, err := h.ledgerService.MarkCourseComplete(c.Request.Context(), courseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapCourseToResponse(course, h.clock.Now()))
}

// CreateSession handles POST /trainees/:id/sessions.
func (h *LedgerHandler) CreateSession(c *gin.Context) {
	traineeID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainee ID format.")
		return
	}

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	date, ok := parseDate(req.Date)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"date": "Dates must use the YYYY-MM-DD format"}})
		return
	}

	session, err := h.ledgerService.AddTrainingSession(c.Request.Context(), traineeID, service.SessionInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		Instructor:  req.Instructor,
		Points:      req.Points,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapSessionToResponse(session, h.clock.Now()))
}

// UpdateSession handles PUT /sessions/:id.
func (h *LedgerHandler) UpdateSession(c *gin.Context) {
	sessionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format.")
		return
	}

	var req UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	update := service.SessionUpdate{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		Instructor:  req.Instructor,
		Points:      req.Points,
	}
	if req.Date != nil {
		date, ok := parseDate(*req.Date)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"date": "Dates must use the YYYY-MM-DD format"}})
			return
		}
		update.Date = &date
	}

	session, err := h.ledgerService.UpdateTrainingSession(c.Request.Context(), sessionID, update)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapSessionToResponse(session, h.clock.Now()))
}

// DeleteSession handles DELETE /sessions/:id.
func (h *LedgerHandler) DeleteSession(c *gin.Context) {
	sessionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format.")
		return
	}

	if err := h.ledgerService.DeleteTrainingSession(c.Request.Context(), sessionID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CompleteSession handles POST /sessions/:id/complete.
func (h *LedgerHandler) CompleteSession(c *gin.Context) {
	sessionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format.")
		return
	}

	session, err := h.ledgerService.MarkSessionComplete(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapSessionToResponse(session, h.clock.Now()))
}

// ListCategories handles GET /categories: the closed category set consumed
// by the enrollment form.
func (h *LedgerHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": domain.Categories()})
}
