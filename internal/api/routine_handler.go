package api

import (
	"net/http"
	"time"

	"gymwell/gym-app/internal/domain"
	"gymwell/gym-app/internal/metrics"
	"gymwell/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

type RoutineHandler struct {
	routineService service.RoutineService
	metrics        *metrics.Manager
}

func NewRoutineHandler(routineService service.RoutineService, m *metrics.Manager) *RoutineHandler {
	return &RoutineHandler{routineService: routineService, metrics: m}
}

// --- DTOs ---

type RoutineItemRequest struct {
	ExerciseID *flexID `json:"exerciseId"`
	Order      *int    `json:"order"`
	Sets       *int    `json:"sets"`
	Reps       *int    `json:"reps"`
	Duration   *int    `json:"duration"`
	Rest       *int    `json:"rest"`
}

type CreateRoutineRequest struct {
	Name         string               `json:"name" binding:"required"`
	Description  string               `json:"description"`
	Exercises    []RoutineItemRequest `json:"exercises"`
	IsPredefined bool                 `json:"isPredefined"`
}

type RoutineItemResponse struct {
	ExerciseID int64             `json:"exerciseId"`
	Order      int               `json:"order"`
	Sets       int               `json:"sets"`
	Reps       int               `json:"reps"`
	Duration   int               `json:"duration"`
	Rest       int               `json:"rest"`
	Exercise   *ExerciseResponse `json:"exercise,omitempty"`
}

type RoutineResponse struct {
	ID           string                `json:"id"`
	UserID       int64                 `json:"userId"`
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	Exercises    []RoutineItemResponse `json:"exercises"`
	IsPredefined bool                  `json:"isPredefined"`
	AdoptedFrom  string                `json:"adoptedFrom,omitempty"`
	CreatedBy    int64                 `json:"createdBy"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

func MapRoutineToResponse(r *domain.Routine) RoutineResponse {
	if r == nil {
		return RoutineResponse{}
	}
	items := make([]RoutineItemResponse, len(r.Items))
	for i, it := range r.Items {
		items[i] = RoutineItemResponse{
			ExerciseID: it.ExerciseID,
			Order:      it.Order,
			Sets:       it.Sets,
			Reps:       it.Reps,
			Duration:   it.Duration,
			Rest:       it.Rest,
		}
		if it.Exercise != nil {
			ex := MapExerciseToResponse(it.Exercise)
			items[i].Exercise = &ex
		}
	}

	resp := RoutineResponse{
		ID:           r.ID.Hex(),
		UserID:       r.UserID,
		Name:         r.Name,
		Description:  r.Description,
		Exercises:    items,
		IsPredefined: r.IsPredefined,
		CreatedBy:    r.CreatedBy,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.AdoptedFrom != nil {
		resp.AdoptedFrom = r.AdoptedFrom.Hex()
	}
	return resp
}

func MapRoutinesToResponse(routines []domain.Routine) []RoutineResponse {
	responses := make([]RoutineResponse, len(routines))
	for i := range routines {
		responses[i] = MapRoutineToResponse(&routines[i])
	}
	return responses
}

// --- Handlers ---

// ListRoutines godoc
// @Summary List routines
// @Description Students and collaborators only ever see their own routines.
// @Tags Routines
// @Produce json
// @Security BearerAuth
// @Param userId query int false "Owner (staff only)"
// @Param predefined query string false "\"true\" for predefined routines only"
// @Success 200 {array} RoutineResponse
// @Router /routines [get]
func (h *RoutineHandler) ListRoutines(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	var filter domain.RoutineFilter
	if caller.Role.IsStaff() {
		userID, err := queryInt64(c, "userId")
		if err != nil {
			respondError(c, err)
			return
		}
		filter.UserID = userID
	}
	if raw, present := c.GetQuery("predefined"); present {
		predefined := raw == "true"
		filter.Predefined = &predefined
	}

	routines, err := h.routineService.List(c.Request.Context(), caller, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapRoutinesToResponse(routines))
}

// CreateRoutine godoc
// @Summary Create a routine
// @Tags Routines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param routine body CreateRoutineRequest true "Routine"
// @Success 201 {object} RoutineResponse
// @Failure 400 {object} ErrorResponse
// @Router /routines [post]
func (h *RoutineHandler) CreateRoutine(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var req CreateRoutineRequest
	if !bindJSON(c, &req) {
		return
	}

	items := make([]service.RoutineItemInput, len(req.Exercises))
	for i, it := range req.Exercises {
		items[i] = service.RoutineItemInput{
			ExerciseID: it.ExerciseID.Int64Ptr(),
			Order:      it.Order,
			Sets:       it.Sets,
			Reps:       it.Reps,
			Duration:   it.Duration,
			Rest:       it.Rest,
		}
	}

	routine, err := h.routineService.Create(c.Request.Context(), caller, service.RoutineInput{
		Name:         req.Name,
		Description:  req.Description,
		IsPredefined: req.IsPredefined,
		Items:        items,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapRoutineToResponse(routine))
}

// AdoptRoutine copies a predefined routine for the caller. 201 when a copy is
// created, 200 when the caller had already adopted it.
func (h *RoutineHandler) AdoptRoutine(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	routine, created, err := h.routineService.Adopt(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	label := "false"
	if created {
		status = http.StatusCreated
		label = "true"
	}
	if h.metrics != nil {
		h.metrics.CounterAdoptions.WithLabelValues(label).Inc()
	}
	c.JSON(status, MapRoutineToResponse(routine))
}
