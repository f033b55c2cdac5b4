package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimitCapsThenRefills(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetRateLimitConfig(100*time.Millisecond, 2)
	defer SetRateLimitConfig(10*time.Second, 20)

	r := gin.New()
	r.POST("/action", RateLimit(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	hit := func() int {
		req := httptest.NewRequest(http.MethodPost, "/action", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if hit() != http.StatusOK || hit() != http.StatusOK {
		t.Fatalf("expected first two requests to pass")
	}
	if code := hit(); code != http.StatusTooManyRequests {
		t.Fatalf("expected third request limited, got %d", code)
	}

	// window elapses, bucket refills
	time.Sleep(120 * time.Millisecond)
	if code := hit(); code != http.StatusOK {
		t.Fatalf("expected request to pass after refill, got %d", code)
	}
}
