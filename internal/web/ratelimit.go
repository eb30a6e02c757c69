package web

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// errRateLimited maps to RATE001.
var errRateLimited = errors.New("rate limit exceeded")

// staleAfter is how long an idle client keeps its limiter.
const staleAfter = 10 * time.Minute

// rateLimiter is a token bucket per client IP.
type rateLimiter struct {
	mu        sync.RWMutex
	clients   map[string]*client
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// newRateLimiter allows perMinute requests per IP, with bursts up to the
// same number. A non-positive perMinute disables limiting.
func newRateLimiter(perMinute int) *rateLimiter {
	limit := rate.Inf
	burst := 1
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
		burst = perMinute
	}
	return &rateLimiter{
		clients:   make(map[string]*client),
		limit:     limit,
		burst:     burst,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// allow reports whether ip may make a request now.
func (rl *rateLimiter) allow(ip string) bool {
	return rl.get(ip).Allow()
}

func (rl *rateLimiter) get(ip string) *rate.Limiter {
	now := rl.now()

	rl.mu.RLock()
	c, ok := rl.clients[ip]
	rl.mu.RUnlock()
	if ok {
		rl.mu.Lock()
		c.lastSeen = now
		rl.mu.Unlock()
		return c.limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Double-check after acquiring the write lock.
	if c, ok := rl.clients[ip]; ok {
		c.lastSeen = now
		return c.limiter
	}

	rl.sweepLocked(now)
	c = &client{limiter: rate.NewLimiter(rl.limit, rl.burst), lastSeen: now}
	rl.clients[ip] = c
	return c.limiter
}

// sweepLocked drops idle clients, at most once per staleAfter.
func (rl *rateLimiter) sweepLocked(now time.Time) {
	if now.Sub(rl.lastSweep) < staleAfter {
		return
	}
	for ip, c := range rl.clients {
		if now.Sub(c.lastSeen) > staleAfter {
			delete(rl.clients, ip)
		}
	}
	rl.lastSweep = now
}

func (rl *rateLimiter) size() int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return len(rl.clients)
}

// middleware rejects requests over the limit with 429. RemoteAddr has
// already been rewritten by TrustedRealIP.
func (rl *rateLimiter) middleware(onError func(http.ResponseWriter, *http.Request, error, int)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.allow(clientIP(r)) {
				retry := 60
				if rl.limit != rate.Inf && rl.limit > 0 {
					retry = int(time.Duration(float64(time.Second)/float64(rl.limit)).Seconds()) + 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				onError(w, r, errRateLimited, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
