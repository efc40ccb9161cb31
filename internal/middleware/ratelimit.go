package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"vcross/metadata-service/internal/config"
)

// RateLimiter 限流器
type RateLimiter struct {
	globalLimiter *rate.Limiter
	ipLimiters    sync.Map
	ipRPS         rate.Limit
	ipBurst       int
}

// NewRateLimiter 创建限流器
func NewRateLimiter(cfg *config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		globalLimiter: rate.NewLimiter(rate.Limit(cfg.GlobalRPS), cfg.Burst*2),
		ipRPS:         rate.Limit(cfg.IPRPS),
		ipBurst:       cfg.Burst,
	}
}

// getIPLimiter 获取单IP限流器
func (rl *RateLimiter) getIPLimiter(clientIP string) *rate.Limiter {
	if limiter, ok := rl.ipLimiters.Load(clientIP); ok {
		return limiter.(*rate.Limiter)
	}

	limiter := rate.NewLimiter(rl.ipRPS, rl.ipBurst)
	rl.ipLimiters.Store(clientIP, limiter)
	return limiter
}

// RateLimit 限流中间件(全局 + 单IP)
func RateLimit(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 全局限流
		if !rl.globalLimiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    429,
				"message": "global rate limit exceeded, please try again later",
			})
			c.Abort()
			return
		}

		// IP 限流
		limiter := rl.getIPLimiter(c.ClientIP())
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    429,
				"message": "ip rate limit exceeded, please try again later",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
