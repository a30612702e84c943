package api

import (
	"net/http"
	"time"

	"gymwell/gym-app/internal/apperror"
	"gymwell/gym-app/internal/domain"
	"gymwell/gym-app/internal/metrics"
	"gymwell/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// AdminHandler serves trainer assignment management.
type AdminHandler struct {
	adminService service.AdminService
	metrics      *metrics.Manager
}

func NewAdminHandler(adminService service.AdminService, m *metrics.Manager) *AdminHandler {
	return &AdminHandler{adminService: adminService, metrics: m}
}

type AssignTrainerRequest struct {
	UserID       *flexID `json:"userId" binding:"required"`
	InstructorID *flexID `json:"instructorId" binding:"required"`
}

type AssignmentResponse struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"userId"`
	InstructorID int64  `json:"instructorId"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate,omitempty"`
	Active       bool   `json:"active"`
}

func MapAssignmentToResponse(a *domain.Assignment) AssignmentResponse {
	resp := AssignmentResponse{
		ID:           a.ID,
		UserID:       a.UserID,
		InstructorID: a.InstructorID,
		StartDate:    formatDate(a.StartDate),
		Active:       a.Active(),
	}
	if a.EndDate != nil {
		resp.EndDate = formatDate(*a.EndDate)
	}
	return resp
}

func MapAssignmentsToResponse(assignments []domain.Assignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, len(assignments))
	for i := range assignments {
		responses[i] = MapAssignmentToResponse(&assignments[i])
	}
	return responses
}

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// AssignTrainer godoc
// @Summary Assign a trainer to a user
// @Description Ends the user's current assignment and opens a new one starting today.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignment body AssignTrainerRequest true "User and trainer"
// @Success 201 {object} AssignmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Concurrent reassignment"
// @Router /admin/assign [post]
func (h *AdminHandler) AssignTrainer(c *gin.Context) {
	var req AssignTrainerRequest
	if !bindJSON(c, &req) {
		return
	}

	assignment, err := h.adminService.AssignTrainer(c.Request.Context(), int64(*req.UserID), int64(*req.InstructorID))
	if err != nil {
		respondError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.CounterReassignment.Inc()
	}
	c.JSON(http.StatusCreated, MapAssignmentToResponse(assignment))
}

// ListAssignments returns a user's full assignment history.
func (h *AdminHandler) ListAssignments(c *gin.Context) {
	userID, err := queryInt64(c, "userId")
	if err != nil {
		respondError(c, err)
		return
	}
	if userID == nil {
		respondError(c, apperror.Validation("userId is required"))
		return
	}

	assignments, err := h.adminService.ListAssignments(c.Request.Context(), *userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapAssignmentsToResponse(assignments))
}

// ListTrainees returns the active assignments of a trainer.
func (h *AdminHandler) ListTrainees(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	instructorID, err := queryInt64(c, "instructorId")
	if err != nil {
		respondError(c, err)
		return
	}

	assignments, err := h.adminService.ListTrainees(c.Request.Context(), caller, instructorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapAssignmentsToResponse(assignments))
}
