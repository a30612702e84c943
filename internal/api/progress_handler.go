package api

import (
	"net/http"
	"time"

	"gymwell/gym-app/internal/domain"
	"gymwell/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	progressService service.ProgressService
}

func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

type CreateProgressRequest struct {
	RoutineID   string  `json:"routineId" binding:"required"`
	ExerciseID  *flexID `json:"exerciseId"`
	Repetitions *int    `json:"repetitions"`
	Duration    *int    `json:"duration"`
	EffortLevel string  `json:"effortLevel"`
	Comments    string  `json:"comments"`
}

type ProgressResponse struct {
	ID          string             `json:"id"`
	RoutineID   string             `json:"routineId"`
	UserID      int64              `json:"userId"`
	ExerciseID  int64              `json:"exerciseId"`
	Date        time.Time          `json:"date"`
	Repetitions int                `json:"repetitions"`
	Duration    int                `json:"duration"`
	EffortLevel domain.EffortLevel `json:"effortLevel"`
	Comments    string             `json:"comments"`
	Exercise    *ExerciseResponse  `json:"exercise,omitempty"`
}

func MapProgressToResponse(l *domain.ProgressLog) ProgressResponse {
	if l == nil {
		return ProgressResponse{}
	}
	resp := ProgressResponse{
		ID:          l.ID.Hex(),
		RoutineID:   l.RoutineID.Hex(),
		UserID:      l.UserID,
		ExerciseID:  l.ExerciseID,
		Date:        l.Date,
		Repetitions: l.Repetitions,
		Duration:    l.Duration,
		EffortLevel: l.EffortLevel,
		Comments:    l.Comments,
	}
	if l.Exercise != nil {
		ex := MapExerciseToResponse(l.Exercise)
		resp.Exercise = &ex
	}
	return resp
}

func MapProgressLogsToResponse(logs []domain.ProgressLog) []ProgressResponse {
	responses := make([]ProgressResponse, len(logs))
	for i := range logs {
		responses[i] = MapProgressToResponse(&logs[i])
	}
	return responses
}

// ListProgress returns progress logs, newest first. Members only see their own.
func (h *ProgressHandler) ListProgress(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	query := service.ProgressQuery{RoutineID: c.Query("routineId")}
	if caller.Role.IsStaff() {
		userID, err := queryInt64(c, "userId")
		if err != nil {
			respondError(c, err)
			return
		}
		query.UserID = userID
	}

	logs, err := h.progressService.List(c.Request.Context(), caller, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProgressLogsToResponse(logs))
}

// CreateProgress godoc
// @Summary Log progress against one of the caller's routines
// @Tags Progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param log body CreateProgressRequest true "Progress log"
// @Success 201 {object} ProgressResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Routine owned by someone else"
// @Failure 404 {object} ErrorResponse
// @Router /progress [post]
func (h *ProgressHandler) CreateProgress(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var req CreateProgressRequest
	if !bindJSON(c, &req) {
		return
	}

	log, err := h.progressService.Create(c.Request.Context(), caller, service.ProgressInput{
		RoutineID:   req.RoutineID,
		ExerciseID:  req.ExerciseID.Int64Ptr(),
		Repetitions: req.Repetitions,
		Duration:    req.Duration,
		EffortLevel: req.EffortLevel,
		Comments:    req.Comments,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapProgressToResponse(log))
}
