package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"gymwell/gym-app/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func newCountingStore() *countingStore {
	return &countingStore{counts: make(map[string]int64)}
}

func (s *countingStore) Hit(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if s.err != nil {
		return 0, 0, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[key]++
	return s.counts[key], window, nil
}

func TestLoginRateLimit(t *testing.T) {
	store := newCountingStore()
	m := metrics.NewTestManager()
	limiter := NewRateLimiter(store, m)

	s := newTestServer(t, func(opts *RouterOptions) {
		opts.LoginLimiter = limiter.Limit("login", 2, time.Minute)
	})

	body := gin.H{"username": "ana", "password": "wrong"}
	for i := 0; i < 2; i++ {
		rec := s.do(t, http.MethodPost, "/api/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec := s.do(t, http.MethodPost, "/api/auth/login", "", body)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterRateLimited))

	// Other routes are not limited.
	rec = s.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitStoreFailureLetsRequestsThrough(t *testing.T) {
	store := newCountingStore()
	store.err = errors.New("connection refused")
	limiter := NewRateLimiter(store, nil)

	s := newTestServer(t, func(opts *RouterOptions) {
		opts.LoginLimiter = limiter.Limit("login", 1, time.Minute)
	})

	for i := 0; i < 3; i++ {
		rec := s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"username": "ana", "password": testPassword})
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
