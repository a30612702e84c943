package api

import (
	"net/http"
	"time"

	"gymwell/gym-app/internal/domain"
	"gymwell/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

type RecommendationHandler struct {
	recService service.RecommendationService
}

func NewRecommendationHandler(recService service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recService: recService}
}

type CreateRecommendationRequest struct {
	UserID  *flexID `json:"userId" binding:"required"`
	Content string  `json:"content" binding:"required"`
}

type RecommendationResponse struct {
	ID        string    `json:"id"`
	TrainerID int64     `json:"trainerId"`
	UserID    int64     `json:"userId"`
	Date      time.Time `json:"date"`
	Content   string    `json:"content"`
}

func MapRecommendationToResponse(r *domain.Recommendation) RecommendationResponse {
	if r == nil {
		return RecommendationResponse{}
	}
	return RecommendationResponse{
		ID:        r.ID.Hex(),
		TrainerID: r.TrainerID,
		UserID:    r.UserID,
		Date:      r.Date,
		Content:   r.Content,
	}
}

func (h *RecommendationHandler) ListRecommendations(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	var filter domain.RecommendationFilter
	trainerID, err := queryInt64(c, "trainerId")
	if err != nil {
		respondError(c, err)
		return
	}
	filter.TrainerID = trainerID
	if caller.Role.IsStaff() {
		if filter.UserID, err = queryInt64(c, "userId"); err != nil {
			respondError(c, err)
			return
		}
	}

	recs, err := h.recService.List(c.Request.Context(), caller, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	responses := make([]RecommendationResponse, len(recs))
	for i := range recs {
		responses[i] = MapRecommendationToResponse(&recs[i])
	}
	c.JSON(http.StatusOK, responses)
}

func (h *RecommendationHandler) CreateRecommendation(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var req CreateRecommendationRequest
	if !bindJSON(c, &req) {
		return
	}

	rec, err := h.recService.Create(c.Request.Context(), caller, service.RecommendationInput{
		UserID:  req.UserID.Int64Ptr(),
		Content: req.Content,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapRecommendationToResponse(rec))
}
