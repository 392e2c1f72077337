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

// TraineeHandler exposes the trainee registry and point account: profile
// reads, ledger listings, flagging and check-ins.
type TraineeHandler struct {
	traineeService service.TraineeService
	pointsService  service.PointsService
	clock          clock.Clock
	checkInAward   int
}

// NewTraineeHandler creates a new TraineeHandler. checkInAward is the
// default points per check-in when the intent does not specify one.
func NewTraineeHandler(traineeService service.TraineeService, pointsService service.PointsService, clk clock.Clock, checkInAward int) *TraineeHandler {
	if checkInAward <= 0 {
		checkInAward = domain.DefaultCheckInPoints
	}
	return &TraineeHandler{
		traineeService: traineeService,
		pointsService:  pointsService,
		clock:          clk,
		checkInAward:   checkInAward,
	}
}

// --- DTOs for API (Data Transfer Objects) ---

// CreateTraineeRequest defines the expected JSON for creating a trainee.
type CreateTraineeRequest struct {
	SerialNumber string `json:"serialNumber"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
}

// FlagRequest defines the expected JSON for flagging a trainee.
type FlagRequest struct {
	Reason string `json:"reason"`
}

// CheckInRequest defines the expected JSON for a check-in. Points defaults
// to the configured check-in award when omitted.
type CheckInRequest struct {
	Points int `json:"points"`
}

// FlagResponse is the DTO for a single flag entry.
type FlagResponse struct {
	ID          string    `json:"id"`
	Reason      string    `json:"reason"`
	Timestamp   time.Time `json:"timestamp"`
	PointsDelta int       `json:"pointsDelta"`
}

// CheckInResponse is the DTO for a single check-in entry.
type CheckInResponse struct {
	ID        string    `json:"id"`
	TraineeID string    `json:"traineeId"`
	Timestamp time.Time `json:"timestamp"`
	Points    int       `json:"points"`
}

// TraineeResponse is the DTO for a trainee profile. Progress counters are
// recomputed from the ledger on every request.
type TraineeResponse struct {
	ID           string            `json:"id"`
	SerialNumber string            `json:"serialNumber,omitempty"`
	Name         string            `json:"name"`
	Email        string            `json:"email,omitempty"`
	Phone        string            `json:"phone,omitempty"`
	Points       int               `json:"points"`
	Flags        []FlagResponse    `json:"flags"`
	Progress     *service.Progress `json:"progress,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

func mapFlagToResponse(flag *domain.Flag) FlagResponse {
	return FlagResponse{
		ID:          flag.ID.Hex(),
		Reason:      flag.Reason,
		Timestamp:   flag.Timestamp,
		PointsDelta: flag.PointsDelta,
	}
}

func mapCheckInToResponse(checkIn *domain.CheckIn) CheckInResponse {
	return CheckInResponse{
		ID:        checkIn.ID.Hex(),
		TraineeID: checkIn.TraineeID.Hex(),
		Timestamp: checkIn.Timestamp,
		Points:    checkIn.Points,
	}
}

// MapTraineeToResponse converts a domain.Trainee to TraineeResponse.
func MapTraineeToResponse(trainee *domain.Trainee, progress *service.Progress) TraineeResponse {
	if trainee == nil {
		return TraineeResponse{}
	}
	flags := make([]FlagResponse, len(trainee.Flags))
	for i, flag := range trainee.Flags {
		flags[i] = mapFlagToResponse(&flag)
	}
	return TraineeResponse{
		ID:           trainee.ID.Hex(),
		SerialNumber: trainee.SerialNumber,
		Name:         trainee.Name,
		Email:        trainee.Email,
		Phone:        trainee.Phone,
		Points:       trainee.Points,
		Flags:        flags,
		Progress:     progress,
		CreatedAt:    trainee.CreatedAt,
		UpdatedAt:    trainee.UpdatedAt,
	}
}

// --- Handler Methods ---

// CreateTrainee handles POST /trainees.
func (h *TraineeHandler) CreateTrainee(c *gin.Context) {
	var req CreateTraineeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainee, err := h.traineeService.CreateTrainee(c.Request.Context(), service.TraineeInput{
		SerialNumber: req.SerialNumber,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapTraineeToResponse(trainee, nil))
}

// ListTrainees handles GET /trainees.
func (h *TraineeHandler) ListTrainees(c *gin.Context) {
	trainees, err := h.traineeService.ListTrainees(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]TraineeResponse, len(trainees))
	for i, trainee := range trainees {
		responses[i] = MapTraineeToResponse(&trainee, nil)
	}
	c.JSON(http.StatusOK, responses)
}

// GetTrainee handles GET /trainees/:id, returning the profile with the
// current point total, flag history and recomputed progress counters.
func (h *TraineeHandler) GetTrainee(c *gin.Context) {
	traineeID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainee ID format.")
		return
	}

	trainee, err := h.traineeService.GetTraineeByID(c.Request.Context(), traineeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	progress, err := h.pointsService.Progress(c.Request.Context(), traineeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapTraineeToResponse(trainee, progress))
}

// ListCourses handles GET /trainees/:id/courses.
func (h *TraineeHandler) ListCourses(c *gin.Context) {
	traineeID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainee ID format.")
		return
	}

	courses, err := h.traineeService.ListCourses(c.Request.Context(), traineeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapCoursesToResponse(courses, h.clock.Now()))
}

// ListSessions handles GET /trainees/:id/sessions.
func (h *TraineeHandler) ListSessions(c *gin.Context) {
	traineeID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainee ID format.")
		return
	}

	sessions, err := h.traineeService.ListSessions(c.Request.Context(), traineeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapSessionsToResponse(sessions, h.clock.Now()))
}

// ListCheckIns handles GET /trainees/:id/checkins.
func (h *TraineeHandler) ListCheckIns(c *gin.Context) {
	traineeID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainee ID format.")
		return
	}

	checkIns, err := h.traineeService.ListCheckIns(c.Request.Context(), traineeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]CheckInResponse, len(checkIns))
	for i, checkIn := range checkIns {
		responses[i] = mapCheckInToResponse(&checkIn)
	}
	c.JSON(http.StatusOK, responses)
}

// FlagTrainee handles POST /trainees/:id/flags.
func (h *TraineeHandler) FlagTrainee(c *gin.Context) {
	traineeID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainee ID format.")
		return
	}

	var req FlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	flag, err := h.pointsService.Penalize(c.Request.Context(), traineeID, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, mapFlagToResponse(flag))
}

// CheckIn handles POST /trainees/:id/checkins.
func (h *TraineeHandler) CheckIn(c *gin.Context) {
	traineeID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainee ID format.")
		return
	}

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	if req.Points == 0 {
		req.Points = h.checkInAward
	}

	checkIn, err := h.pointsService.RecordCheckIn(c.Request.Context(), traineeID, req.Points)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, mapCheckInToResponse(checkIn))
}
