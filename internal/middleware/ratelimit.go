package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewSubmitLimiter builds an in-memory limiter from a formatted rate such as "30-M".
func NewSubmitLimiter(formattedRate string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formattedRate)
	if err != nil {
		return nil, fmt.Errorf("invalid submit rate limit %q: %w", formattedRate, err)
	}
	return limiter.New(memory.NewStore(), rate), nil
}

// RateLimitMessage is shown to a client that has hit the submission limit.
const RateLimitMessage = "Too many submissions. Please wait a moment and try again."

// RateLimit creates a Gin middleware for rate limiting requests per client IP.
// A nil limiter disables limiting.
func RateLimit(limiterInstance *limiter.Limiter) gin.HandlerFunc {
	return RateLimitWithHandler(limiterInstance, func(c *gin.Context) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": RateLimitMessage})
	})
}

// RateLimitWithHandler is RateLimit with a custom response once the limit is
// reached. onReached writes the response; the chain is aborted after it returns.
func RateLimitWithHandler(limiterInstance *limiter.Limiter, onReached gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiterInstance == nil {
			c.Next()
			return
		}
		ip := c.ClientIP()

		context, err := limiterInstance.Get(c.Request.Context(), ip)
		if err != nil {
			GetLoggerFromCtx(c.Request.Context()).Error("Failed to get rate limit context", slog.String("ip", ip), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error during rate limit check"})
			return
		}

		if context.Reached {
			GetLoggerFromCtx(c.Request.Context()).Warn("Rate limit exceeded", slog.String("ip", ip), slog.Int64("limit", context.Limit), slog.Int64("remaining_requests", context.Remaining))
			onReached(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
