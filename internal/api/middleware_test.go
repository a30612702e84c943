package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestMetrics(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/exercises", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.CounterRequests.WithLabelValues("GET", "/api/health", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.CounterRequests.WithLabelValues("GET", "/api/exercises", "401")))
	assert.Equal(t, 0.0, testutil.ToFloat64(s.metrics.GaugeRequests))
}

func TestLoginAndAdoptionCounters(t *testing.T) {
	s := newTestServer(t)

	s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"username": "ana", "password": testPassword})
	s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"username": "ana", "password": "bad"})
	s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"username": "ghost", "password": "bad"})

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.CounterLogins.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(s.metrics.CounterLogins.WithLabelValues("failure")))

	rec := s.do(t, http.MethodPost, "/api/admin/assign", s.token(t, adminUser), gin.H{"userId": 10, "instructorId": 20})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.CounterReassignment))
}

func TestRequestIDIsEchoed(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/health", "", nil)
	first := rec.Header().Get(RequestIDHeader)
	rec = s.do(t, http.MethodGet, "/api/health", "", nil)
	assert.NotEqual(t, first, rec.Header().Get(RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := newRequest(http.MethodOptions, "/api/exercises")
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := s.serve(req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestPanicIsAnsweredWithJSONError(t *testing.T) {
	s := newTestServer(t)
	s.router.GET("/api/boom", func(c *gin.Context) {
		panic("nil map write")
	})

	rec := s.do(t, http.MethodGet, "/api/boom", "", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, `{"message":"internal server error"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	// The server keeps serving afterwards.
	rec = s.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownRoutesAnswerJSON(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/nope", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, "route not found", decode[ErrorResponse](t, rec).Message)

	rec = s.do(t, http.MethodPatch, "/api/exercises", "", nil)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "method not allowed", decode[ErrorResponse](t, rec).Message)
}
