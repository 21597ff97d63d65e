package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/mcatania72/CRM-System-NEW/internal/config"
	"github.com/mcatania72/CRM-System-NEW/internal/observability"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter throttles requests per client IP with a token bucket.
// Idle entries are evicted so the table does not grow without bound.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientLimiter
	rps      rate.Limit
	burst    int
	exemptLo bool
	metrics  *observability.Metrics
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter builds a limiter from the configured policy.
func NewRateLimiter(cfg *config.Config, metrics *observability.Metrics) *RateLimiter {
	rl := &RateLimiter{
		clients:  make(map[string]*clientLimiter),
		rps:      rate.Limit(cfg.RateLimitRPS),
		burst:    cfg.RateLimitBurst,
		exemptLo: cfg.RateLimitExemptLo,
		metrics:  metrics,
	}
	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) cleanup() {
	for range time.Tick(time.Minute) {
		rl.mu.Lock()
		for ip, c := range rl.clients {
			if time.Since(c.lastSeen) > 3*time.Minute {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.clients[ip] = c
	}
	c.lastSeen = time.Now()
	return c.limiter.Allow()
}

// Handler is the gin middleware enforcing the limit.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if rl.exemptLo {
			if parsed := net.ParseIP(ip); parsed != nil && parsed.IsLoopback() {
				c.Next()
				return
			}
		}

		if !rl.allow(ip) {
			if rl.metrics != nil {
				rl.metrics.IncrRateLimited()
			}
			c.JSON(http.StatusTooManyRequests, gin.H{"message": "too many requests from this IP"})
			c.Abort()
			return
		}

		c.Next()
	}
}
