package api

import (
	"errors"
	"net/http"
	"time"

	"gymwell/gym-app/internal/apperror"
	"gymwell/gym-app/internal/domain"
	"gymwell/gym-app/internal/metrics"
	"gymwell/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the auth service dependency.
type AuthHandler struct {
	authService service.AuthService
	metrics     *metrics.Manager
}

func NewAuthHandler(authService service.AuthService, m *metrics.Manager) *AuthHandler {
	return &AuthHandler{authService: authService, metrics: m}
}

// --- DTOs ---

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID       int64       `json:"id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

func MapIdentityToResponse(identity *domain.Identity) UserResponse {
	if identity == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:       identity.ID,
		Username: identity.Username,
		Role:     identity.Role,
	}
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and issues a session token valid for the configured lifetime.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if h.metrics != nil && errors.Is(err, apperror.ErrUnauthorized) {
			h.metrics.CounterLogins.WithLabelValues("failure").Inc()
		}
		respondError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.CounterLogins.WithLabelValues("success").Inc()
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      MapIdentityToResponse(result.Identity),
	})
}

// Me returns the identity behind the session token.
func (h *AuthHandler) Me(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	identity, err := h.authService.Me(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapIdentityToResponse(identity))
}
