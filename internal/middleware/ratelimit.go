package middleware

import (
	"github.com/oxtna/message-board/internal/utils"
	"github.com/oxtna/message-board/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RateLimitMiddleware 按客户端IP限流
// limiter为nil时直接放行（未配置Redis的部署）
func RateLimitMiddleware(limiter *ratelimit.Limiter, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			// Redis不可用时放行，限流是保护措施不是功能依赖
			logger.Warnf("限流器检查失败: %v", err)
			c.Next()
			return
		}

		if !allowed {
			utils.TooManyRequests(c, "请求过于频繁，请稍后再试")
			c.Abort()
			return
		}

		c.Next()
	}
}
