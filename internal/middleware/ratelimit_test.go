package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRateLimitAllowsBurstThenRejects(t *testing.T) {
	mw := RateLimit(1, 3)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var rejected int
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			rejected++
		}
	}

	if rejected == 0 {
		t.Error("no request was rate limited after exhausting the burst")
	}
}

func TestRateLimitTracksIPsSeparately(t *testing.T) {
	mw := RateLimit(1, 1)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	first.RemoteAddr = "192.0.2.1:1234"
	rec1 := httptest.NewRecorder()
	handler.ServeHTTP(rec1, first)

	second := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	second.RemoteAddr = "192.0.2.2:1234"
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, second)

	if rec1.Code != http.StatusOK || rec2.Code != http.StatusOK {
		t.Errorf("distinct IPs within burst should both pass, got %d and %d", rec1.Code, rec2.Code)
	}
}
