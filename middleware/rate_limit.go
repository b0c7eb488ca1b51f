package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"golang.org/x/time/rate"
)

var ErrTooManyRequests = echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests")

type RateLimitConfig struct {
	Skipper middleware.Skipper
	// RequestsPerSecond is the sustained rate per client IP. Zero or less
	// disables the limiter.
	RequestsPerSecond float64
	Burst             int
	// IdleTTL drops limiters for clients that have been quiet this long.
	IdleTTL time.Duration
	Now     func() time.Time
}

const defaultRateLimitIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type visitorStore struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	lastGC   time.Time
}

func (s *visitorStore) get(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastGC) > s.idleTTL {
		for k, v := range s.visitors {
			if now.Sub(v.lastSeen) > s.idleTTL {
				delete(s.visitors, k)
			}
		}

		s.lastGC = now
	}

	v, ok := s.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.limit, s.burst), lastSeen: now}
		s.visitors[key] = v
	}

	v.lastSeen = now

	return v.limiter
}

// RateLimit throttles each client IP with a token bucket and answers 429 with
// a Retry-After hint once the bucket is empty.
func RateLimit(config RateLimitConfig) echo.MiddlewareFunc {
	if config.RequestsPerSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}

	if config.Burst <= 0 {
		config.Burst = int(math.Ceil(config.RequestsPerSecond))
	}

	if config.IdleTTL <= 0 {
		config.IdleTTL = defaultRateLimitIdleTTL
	}

	if config.Now == nil {
		config.Now = time.Now
	}

	store := &visitorStore{
		mu:       sync.Mutex{},
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(config.RequestsPerSecond),
		burst:    config.Burst,
		idleTTL:  config.IdleTTL,
		lastGC:   config.Now(),
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx *echo.Context) error {
			if config.Skipper(ctx) {
				return next(ctx)
			}

			now := config.Now()
			limiter := store.get(ctx.RealIP(), now)

			header := ctx.Response().Header()
			header.Set(HeaderRateLimitLimit, strconv.Itoa(config.Burst))

			reservation := limiter.ReserveN(now, 1)
			if delay := reservation.DelayFrom(now); delay > 0 {
				reservation.CancelAt(now)

				header.Set(HeaderRateLimitRemaining, "0")
				header.Set(HeaderRetryAfter, strconv.Itoa(int(math.Ceil(delay.Seconds()))))

				return ErrTooManyRequests
			}

			remaining := max(int(limiter.TokensAt(now)), 0)
			header.Set(HeaderRateLimitRemaining, strconv.Itoa(remaining))

			return next(ctx)
		}
	}
}
