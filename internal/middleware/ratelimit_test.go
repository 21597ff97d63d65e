package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mcatania72/CRM-System-NEW/internal/config"
	"github.com/mcatania72/CRM-System-NEW/internal/observability"

	"github.com/gin-gonic/gin"
)

func newLimitedRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(cfg, observability.NewMetrics())
	router := gin.New()
	router.Use(rl.Handler())
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRateLimiterRejectsBeyondBurst(t *testing.T) {
	router := newLimitedRouter(&config.Config{
		RateLimitRPS:   1,
		RateLimitBurst: 2,
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("requests within burst got %v, want 200s", codes[:2])
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("request past burst got %d, want 429", codes[2])
	}
}

func TestRateLimiterTracksClientsSeparately(t *testing.T) {
	router := newLimitedRouter(&config.Config{
		RateLimitRPS:   1,
		RateLimitBurst: 1,
	})

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	router.ServeHTTP(first, req)

	second := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	router.ServeHTTP(second, req)

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Errorf("independent clients got %d and %d, want 200s", first.Code, second.Code)
	}
}

func TestRateLimiterLoopbackExemption(t *testing.T) {
	router := newLimitedRouter(&config.Config{
		RateLimitRPS:      1,
		RateLimitBurst:    1,
		RateLimitExemptLo: true,
	})

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "127.0.0.1:1234"
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("loopback request %d got %d, want 200", i, w.Code)
		}
	}
}
