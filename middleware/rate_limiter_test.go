package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func limiterStatus(t *testing.T, rl *RateLimiter, method, path string) int {
	t.Helper()

	e := echo.New()
	handler := rl.RateLimit()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "203.0.113.7:1234"
	rec := httptest.NewRecorder()
	if err := handler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec.Code
}

func TestLoginBucketLimitsBruteForce(t *testing.T) {
	rl := NewRateLimiter()

	for i := 0; i < 5; i++ {
		if got := limiterStatus(t, rl, http.MethodPost, "/login"); got != http.StatusOK {
			t.Fatalf("attempt %d: status %d, want 200", i+1, got)
		}
	}
	if got := limiterStatus(t, rl, http.MethodPost, "/login"); got != http.StatusTooManyRequests {
		t.Fatalf("attempt 6: status %d, want 429", got)
	}

	// The strict bucket must not starve ordinary page loads.
	if got := limiterStatus(t, rl, http.MethodGet, "/"); got != http.StatusOK {
		t.Fatalf("page load: status %d, want 200", got)
	}
}
