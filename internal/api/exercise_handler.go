package api

import (
	"net/http"
	"strconv"
	"time"

	"gymwell/gym-app/internal/domain"
	"gymwell/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs for API (Data Transfer Objects) ---

// CreateExerciseRequest defines the expected JSON for creating an exercise.
type CreateExerciseRequest struct {
	ID          *flexID  `json:"id"` // Optional; next free id when omitted
	Name        string   `json:"name" binding:"required"`
	Type        string   `json:"type" binding:"required"`
	Description string   `json:"description"`
	Duration    *int     `json:"duration" binding:"omitempty,min=0"` // minutes
	Difficulty  *int     `json:"difficulty" binding:"required"`
	Videos      []string `json:"videos"`
}

// UpdateExerciseRequest carries a partial update. Unknown fields are ignored.
type UpdateExerciseRequest struct {
	Name        *string   `json:"name"`
	Type        *string   `json:"type"`
	Description *string   `json:"description"`
	Duration    *int      `json:"duration" binding:"omitempty,min=0"`
	Difficulty  *int      `json:"difficulty"`
	Videos      *[]string `json:"videos"`
}

type VideoUploadRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Type        domain.ExerciseType `json:"type"`
	Description string              `json:"description"`
	Duration    *int                `json:"duration,omitempty"`
	Difficulty  int                 `json:"difficulty"`
	Videos      []string            `json:"videos"`
	CreatedBy   int64               `json:"createdBy"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

type VideoUploadResponse struct {
	UploadURL string    `json:"uploadUrl"`
	VideoURL  string    `json:"videoUrl"`
	ObjectKey string    `json:"objectKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	videos := ex.Videos
	if videos == nil {
		videos = []string{}
	}
	return ExerciseResponse{
		ID:          ex.ID,
		Name:        ex.Name,
		Type:        ex.Type,
		Description: ex.Description,
		Duration:    ex.Duration,
		Difficulty:  ex.Difficulty,
		Videos:      videos,
		CreatedBy:   ex.CreatedBy,
		CreatedAt:   ex.CreatedAt,
		UpdatedAt:   ex.UpdatedAt,
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to a slice of ExerciseResponse DTO.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	return responses
}

// --- Handler Methods ---

// ListExercises godoc
// @Summary List the exercise catalog
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param type query string false "cardio, strength or mobility"
// @Param difficulty query int false "1, 2 or 3"
// @Success 200 {array} ExerciseResponse
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	filter := domain.ExerciseFilter{Type: domain.ExerciseType(c.Query("type"))}
	// A non-numeric difficulty is ignored rather than rejected.
	if d, err := strconv.Atoi(c.Query("difficulty")); err == nil {
		filter.Difficulty = &d
	}

	exercises, err := h.exerciseService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// CreateExercise godoc
// @Summary Create a new exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exercise body CreateExerciseRequest true "Exercise details"
// @Success 201 {object} ExerciseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Id already taken"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var req CreateExerciseRequest
	if !bindJSON(c, &req) {
		return
	}

	exercise, err := h.exerciseService.Create(c.Request.Context(), caller, service.ExerciseInput{
		ID:          req.ID.Int64Ptr(),
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Duration:    req.Duration,
		Difficulty:  req.Difficulty,
		Videos:      req.Videos,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// UpdateExercise godoc
// @Summary Partially update an exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exercise ID"
// @Success 200 {object} ExerciseResponse
// @Failure 404 {object} ErrorResponse
// @Router /exercises/{id} [put]
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	id, err := pathInt64(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req UpdateExerciseRequest
	if !bindJSON(c, &req) {
		return
	}

	update := domain.ExerciseUpdate{
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
		Difficulty:  req.Difficulty,
		Videos:      req.Videos,
	}
	if req.Type != nil {
		t := domain.ExerciseType(*req.Type)
		update.Type = &t
	}

	exercise, err := h.exerciseService.Update(c.Request.Context(), id, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// DeleteExercise removes an exercise and answers 204.
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	id, err := pathInt64(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.exerciseService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RequestVideoUpload godoc
// @Summary Get a presigned URL to upload an exercise video
// @Description The client PUTs the file to uploadUrl with the same Content-Type, then adds videoUrl to the exercise.
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exercise ID"
// @Param upload body VideoUploadRequest true "File details"
// @Success 200 {object} VideoUploadResponse
// @Router /exercises/{id}/video-upload [post]
func (h *ExerciseHandler) RequestVideoUpload(c *gin.Context) {
	id, err := pathInt64(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req VideoUploadRequest
	if !bindJSON(c, &req) {
		return
	}

	upload, err := h.exerciseService.RequestVideoUpload(c.Request.Context(), id, req.FileName, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, VideoUploadResponse{
		UploadURL: upload.UploadURL,
		VideoURL:  upload.VideoURL,
		ObjectKey: upload.ObjectKey,
		ExpiresAt: upload.ExpiresAt,
	})
}
