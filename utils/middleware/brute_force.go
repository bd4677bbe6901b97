package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/MominRaza6762/SamraAi/utils/response"
)

// AttemptCache is the key store behind the lockout, implemented by *cache.RedisCache
type AttemptCache interface {
	Exists(ctx context.Context, key string) (bool, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
	Increment(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// BruteForceProtection locks out IPs after repeated failed admin logins.
// A nil *BruteForceProtection allows everything.
type BruteForceProtection struct {
	cache AttemptCache
}

// NewBruteForceProtection creates a new brute force protection instance
func NewBruteForceProtection(cache AttemptCache) *BruteForceProtection {
	return &BruteForceProtection{
		cache: cache,
	}
}

func attemptKey(ip string) string {
	return fmt.Sprintf("samraai:admin_login:attempts:%s", ip)
}

func lockKey(ip string) string {
	return fmt.Sprintf("samraai:admin_login:lock:%s", ip)
}

// CheckLockout middleware rejects requests from locked IPs
func (b *BruteForceProtection) CheckLockout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if b == nil {
			return c.Next()
		}

		ip := c.IP()
		locked, err := b.cache.Exists(c.Context(), lockKey(ip))
		if err != nil {
			// If Redis is down, allow the request
			return c.Next()
		}

		if locked {
			// Get TTL for retry time
			ttl, _ := b.cache.TTL(c.Context(), lockKey(ip))
			retryAfter := int(ttl.Seconds())
			if retryAfter <= 0 {
				retryAfter = 60
			}

			c.Set(fiber.HeaderRetryAfter, fmt.Sprintf("%d", retryAfter))
			return response.TooManyRequests(c, fmt.Sprintf("Too many failed attempts. Try again in %d seconds", retryAfter))
		}

		return c.Next()
	}
}

// RecordFailedAttempt counts a failed login and applies progressive lockouts
func (b *BruteForceProtection) RecordFailedAttempt(ctx context.Context, ip string) error {
	if b == nil {
		return nil
	}

	attempts, err := b.cache.Increment(ctx, attemptKey(ip))
	if err != nil {
		// If Redis is down, just return without blocking
		return nil
	}

	// Attempts are counted over a 15 minute window
	if attempts == 1 {
		_ = b.cache.Expire(ctx, attemptKey(ip), 15*time.Minute)
	}

	var lockDuration time.Duration
	switch {
	case attempts >= 25:
		lockDuration = 24 * time.Hour
	case attempts >= 10:
		lockDuration = time.Hour
	case attempts >= 5:
		lockDuration = 2 * time.Minute
	default:
		return nil
	}

	return b.cache.Set(ctx, lockKey(ip), "locked", lockDuration)
}

// RecordSuccessfulAttempt clears failed attempts and any lock for ip
func (b *BruteForceProtection) RecordSuccessfulAttempt(ctx context.Context, ip string) error {
	if b == nil {
		return nil
	}
	return b.cache.Delete(ctx, attemptKey(ip), lockKey(ip))
}
