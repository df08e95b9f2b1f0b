package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/malamapl09/donaciones-pola-allande/internal/error/code"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/response"
	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/ratelimit"
	"github.com/malamapl09/donaciones-pola-allande/pkg/logger"
)

// RateLimiterConfig binds a limiter to the error answered when it trips
type RateLimiterConfig struct {
	Policy    string
	Limiter   ratelimit.Limiter
	ErrorCode int                       // defaults to ErrTooManyRequests
	KeyFunc   func(*gin.Context) string // defaults to the client IP
}

// policyErrorCodes carries the message of each named policy
var policyErrorCodes = map[string]int{
	ratelimit.PolicyDonation: code.ErrDonationTooManyRequests,
	ratelimit.PolicyLogin:    code.ErrLoginTooManyRequests,
	ratelimit.PolicyGeneral:  code.ErrTooManyRequests,
}

// RateLimiter rejects requests over the limit with 429 and a retryAfter
// hint. Limiter failures let the request through.
func RateLimiter(cfg RateLimiterConfig) gin.HandlerFunc {
	if cfg.ErrorCode == 0 {
		cfg.ErrorCode = code.ErrTooManyRequests
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}

	return func(c *gin.Context) {
		if cfg.Limiter == nil {
			c.Next()
			return
		}

		decision, err := cfg.Limiter.Allow(c.Request.Context(), cfg.KeyFunc(c))
		if err != nil {
			logger.L().Warn("rate limiter unavailable, allowing request",
				zap.String("policy", cfg.Policy),
				zap.Error(err),
			)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			retryAfter := ratelimit.RetryAfterSeconds(decision.RetryAfter)
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			logger.L().Info("rate limit exceeded",
				zap.String("policy", cfg.Policy),
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			response.FailWithData(c, cfg.ErrorCode, gin.H{"retryAfter": retryAfter})
			c.Abort()
			return
		}

		c.Next()
	}
}

// PolicyRateLimiter limits by client IP with the named policy of set
func PolicyRateLimiter(set *ratelimit.Set, policy string) gin.HandlerFunc {
	var limiter ratelimit.Limiter
	if set != nil {
		limiter = set.Get(policy)
	}
	return RateLimiter(RateLimiterConfig{
		Policy:    policy,
		Limiter:   limiter,
		ErrorCode: policyErrorCodes[policy],
	})
}
