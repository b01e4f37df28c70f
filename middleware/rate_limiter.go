package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"lovestudio/utils"
)

type rateClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter allows requests per duration for each client IP.
// It guards the export routes, which each start a browser capture.
type RateLimiter struct {
	requests int
	duration time.Duration

	clients map[string]*rateClient
	mu      sync.Mutex
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewRateLimiter creates a limiter and starts its idle-client sweep.
// Close stops the sweep.
func NewRateLimiter(requests int, duration time.Duration) *RateLimiter {
	if requests <= 0 {
		requests = 1
	}

	l := &RateLimiter{
		requests: requests,
		duration: duration,
		clients:  make(map[string]*rateClient),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go l.cleanupLoop(5*time.Minute, 10*time.Minute)
	return l
}

// Handler returns the middleware
func (l *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.IP()

		l.mu.Lock()
		cl, exists := l.clients[ip]
		if !exists {
			limiter := rate.NewLimiter(rate.Every(l.duration/time.Duration(l.requests)), l.requests)
			cl = &rateClient{limiter: limiter}
			l.clients[ip] = cl
		}
		cl.lastSeen = time.Now()
		l.mu.Unlock()

		if !cl.limiter.Allow() {
			utils.Log.Warn("Export rate limit hit for %s on %s", ip, c.Path())
			return utils.NewAppError(fiber.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
		}

		return c.Next()
	}
}

// Close stops the background sweep
func (l *RateLimiter) Close() {
	l.once.Do(func() { close(l.stop) })
}

// cleanupLoop forgets clients idle longer than maxIdle
func (l *RateLimiter) cleanupLoop(interval, maxIdle time.Duration) {
	defer close(l.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.mu.Lock()
			for ip, c := range l.clients {
				if time.Since(c.lastSeen) > maxIdle {
					delete(l.clients, ip)
				}
			}
			l.mu.Unlock()
		case <-l.stop:
			return
		}
	}
}
