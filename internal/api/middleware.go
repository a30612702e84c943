package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gymwell/gym-app/internal/domain"
	"gymwell/gym-app/internal/metrics"
	"gymwell/gym-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Constants for context keys
const (
	ContextCallerKey    = "caller"
	ContextRequestIDKey = "requestID"
	RequestIDHeader     = "X-Request-ID"
)

// AuthMiddleware authenticates the bearer token. A missing token is 401; a
// token that fails verification is 403.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortWithError(c, http.StatusUnauthorized, "authorization token is missing")
			return
		}

		caller, err := authService.Authenticate(token)
		if err != nil {
			respondError(c, err)
			return
		}

		c.Set(ContextCallerKey, caller)
		c.Next()
	}
}

// bearerToken extracts the token from "Bearer <token>".
func bearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RoleMiddleware creates middleware to check if user has the required role(s).
// Must run AFTER AuthMiddleware.
func RoleMiddleware(allowedRoles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerFromContext(c)
		if !ok {
			abortWithError(c, http.StatusInternalServerError, "caller not found in context")
			return
		}

		for _, allowedRole := range allowedRoles {
			if caller.Role == allowedRole {
				c.Next()
				return
			}
		}
		abortWithError(c, http.StatusForbidden, "role '"+string(caller.Role)+"' is not allowed to access this resource")
	}
}

func callerFromContext(c *gin.Context) (domain.Caller, bool) {
	raw, exists := c.Get(ContextCallerKey)
	if !exists {
		return domain.Caller{}, false
	}
	caller, ok := raw.(domain.Caller)
	return caller, ok
}

// mustCaller returns the authenticated caller or aborts with 500.
func mustCaller(c *gin.Context) (domain.Caller, bool) {
	caller, ok := callerFromContext(c)
	if !ok {
		abortWithError(c, http.StatusInternalServerError, "caller not found in context")
	}
	return caller, ok
}

// Recovery turns a panic into a logged 500 with the usual error body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		respondError(c, fmt.Errorf("panic recovered: %v", recovered))
	})
}

func routeNotFound(c *gin.Context) {
	abortWithError(c, http.StatusNotFound, "route not found")
}

func methodNotAllowed(c *gin.Context) {
	abortWithError(c, http.StatusMethodNotAllowed, "method not allowed")
}

// RequestLogger tags every request with an id and writes an access log line.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		entry := log.WithFields(log.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
		})
		if caller, ok := callerFromContext(c); ok {
			entry = entry.WithField("user_id", caller.ID)
		}

		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("request completed")
		case status >= http.StatusBadRequest:
			entry.Warn("request completed")
		default:
			entry.Info("request completed")
		}
	}
}

// RequestMetrics records count, duration and in-flight requests per route.
func RequestMetrics(m *metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		m.GaugeRequests.Inc()
		defer func(begin time.Time) {
			m.GaugeRequests.Dec()
			m.HistRequestDuration.WithLabelValues(route).Observe(time.Since(begin).Seconds())
			m.CounterRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		}(time.Now())

		c.Next()
	}
}
