package middleware

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hyejinmoon/fashion-shop-backend/internal/auth"
	"golang.org/x/time/rate"
)

const (
	// auth / checkout endpoints (strict)
	limitStrict = rate.Limit(2)
	burstStrict = 5

	// everything else
	limitGeneral = rate.Limit(10)
	burstGeneral = 20
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors = make(map[string]*visitor)
	mu       sync.Mutex
)

func init() {
	go cleanupVisitors()
}

// getVisitor retrieves or creates a rate limiter for the given key.
func getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, exists := visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// cleanupVisitors removes stale entries so the map doesn't grow unbounded.
func cleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		mu.Lock()
		for key, v := range visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(visitors, key)
			}
		}
		mu.Unlock()
	}
}

// RateLimit throttles per caller. Authenticated callers get a bucket keyed
// by user id so a shared NAT address doesn't starve everyone behind it;
// anonymous callers fall back to the client IP. The limiter runs ahead of
// the jwt middleware, so it verifies the bearer token itself rather than
// reading Locals.
func RateLimit(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, burst, tier := resolveRateTier(c)

		identity := "ip:" + c.IP()
		if p, err := auth.ParseToken(bearerToken(c), jwtSecret); err == nil {
			identity = fmt.Sprintf("user:%d", p.UserID)
		}

		key := fmt.Sprintf("%s:%s", identity, tier)
		if !getVisitor(key, limit, burst).Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"message": "too many requests"})
		}

		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	const prefix = "Bearer "
	h := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(h, prefix) {
		return h[len(prefix):]
	}
	return ""
}

// resolveRateTier determines which rate limit policy applies to the request.
func resolveRateTier(c *fiber.Ctx) (rate.Limit, int, string) {
	p := c.Path()
	if p == "/api/v1/sign-in" || p == "/api/v1/sign-up" || (p == "/api/v1/orders" && c.Method() == fiber.MethodPost) {
		return limitStrict, burstStrict, "strict"
	}
	return limitGeneral, burstGeneral, "general"
}
