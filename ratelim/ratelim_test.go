package ratelim

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestLimitAllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter()
	defer rl.Close()
	handler := rl.Limit(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < rl.burst; i++ {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("POST", "/users/login", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		handler(w, r, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestLimitRejectsBeyondBurst(t *testing.T) {
	rl := NewRateLimiter()
	defer rl.Close()
	handler := rl.Limit(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < rl.burst; i++ {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("POST", "/users/login", nil)
		r.RemoteAddr = "10.0.0.2:1234"
		handler(w, r, nil)
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/users/login", nil)
	r.RemoteAddr = "10.0.0.2:1234"
	handler(w, r, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestLimitTracksClientsSeparately(t *testing.T) {
	rl := NewRateLimiter()
	defer rl.Close()
	handler := rl.Limit(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < rl.burst; i++ {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("POST", "/users/login", nil)
		r.RemoteAddr = "10.0.0.3:1234"
		handler(w, r, nil)
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/users/login", nil)
	r.RemoteAddr = "10.0.0.4:1234"
	handler(w, r, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCloseStopsSweepAndKeepsLimiting(t *testing.T) {
	rl := NewRateLimiter()
	rl.Close()

	handler := rl.Limit(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/users/login", nil)
	r.RemoteAddr = "10.0.0.5:1234"
	handler(w, r, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
