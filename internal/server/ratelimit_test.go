package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginRateLimiter_PerIP(t *testing.T) {
	limiter := NewLoginRateLimiter(3, nil)
	h := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = ip + ":1000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, send("198.51.100.1"))
	}
	assert.Equal(t, http.StatusTooManyRequests, send("198.51.100.1"))
	assert.Equal(t, http.StatusOK, send("198.51.100.2"), "other clients keep their own budget")
}

func TestNewLoginRateLimiter_DefaultsNonPositive(t *testing.T) {
	limiter := NewLoginRateLimiter(0, nil)
	assert.Equal(t, DefaultLoginPerMinute, limiter.burst)
}
