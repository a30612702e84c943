package api

import (
	"net/http"

	"gymwell/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService service.StatsService
}

func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// UserStats serves GET /stats/users/:userId. Rows are returned as stored,
// ordered by month.
func (h *StatsHandler) UserStats(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	userID, err := pathInt64(c, "userId")
	if err != nil {
		respondError(c, err)
		return
	}

	stats, err := h.statsService.UserStats(c.Request.Context(), caller, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) InstructorStats(c *gin.Context) {
	instructorID, err := pathInt64(c, "instructorId")
	if err != nil {
		respondError(c, err)
		return
	}

	stats, err := h.statsService.InstructorStats(c.Request.Context(), instructorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
