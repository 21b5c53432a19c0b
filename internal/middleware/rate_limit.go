package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	// Limites par minute et par IP
	CartMaxRequests     = 60
	CheckoutMaxRequests = 5

	// durée après laquelle une IP inactive est oubliée
	limiterTTL = 5 * time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter garde un token bucket par IP
type RateLimiter struct {
	ips       map[string]*limiterEntry
	mu        sync.Mutex
	rate      rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
}

// NewRateLimiter crée un limiteur de burst requêtes, rechargé au rythme r
func NewRateLimiter(r rate.Limit, burst int, ttl time.Duration) *RateLimiter {
	return &RateLimiter{
		ips:   make(map[string]*limiterEntry),
		rate:  r,
		burst: burst,
		ttl:   ttl,
	}
}

// PerMinute construit un limiteur de n requêtes par minute (burst n)
func PerMinute(n int) *RateLimiter {
	return NewRateLimiter(rate.Every(time.Minute/time.Duration(n)), n, limiterTTL)
}

// GetLimiter retourne le limiteur de l'IP, créé à la première requête
func (rl *RateLimiter) GetLimiter(ip string) *rate.Limiter {
	return rl.getLimiter(ip, time.Now())
}

func (rl *RateLimiter) getLimiter(ip string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	// nettoyage des IP inactives, au plus une fois par ttl
	if now.Sub(rl.lastSweep) > rl.ttl {
		for k, e := range rl.ips {
			if now.Sub(e.lastSeen) > rl.ttl {
				delete(rl.ips, k)
			}
		}
		rl.lastSweep = now
	}

	entry, exists := rl.ips[ip]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.ips[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// allow consomme un jeton ; sinon retourne l'attente avant le prochain
func (rl *RateLimiter) allow(ip string, now time.Time) (ok bool, remaining int, retryAfter time.Duration) {
	limiter := rl.getLimiter(ip, now)

	r := limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, 0, rl.ttl
	}
	if d := r.DelayFrom(now); d > 0 {
		r.CancelAt(now)
		return false, 0, d
	}

	tokens := limiter.TokensAt(now)
	if tokens < 0 {
		tokens = 0
	}
	return true, int(math.Floor(tokens)), 0
}

// RateLimit limite le nombre de requêtes par IP
func RateLimit(rl *RateLimiter, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, remaining, retry := rl.allow(c.ClientIP(), time.Now())

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.burst))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !ok {
			seconds := int(math.Ceil(retry.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       message,
				"retry_after": seconds,
			})
			return
		}

		c.Next()
	}
}

// CartRateLimit limite les modifications du panier (anti-spam)
func CartRateLimit() gin.HandlerFunc {
	return RateLimit(PerMinute(CartMaxRequests), "Trop de modifications du panier. Ralentissez un peu")
}

// CheckoutRateLimit limite les validations de commande
func CheckoutRateLimit() gin.HandlerFunc {
	return RateLimit(PerMinute(CheckoutMaxRequests), "Trop de tentatives de commande. Réessayez dans 1 minute")
}
