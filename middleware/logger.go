package middleware

import (
	"time"

	"github.com/nguynqun376/MindGuardAI/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 健康检查不刷日志
		if c.Request.URL.Path == "/ping" {
			c.Next()
			return
		}

		start := time.Now()
		requestID := uuid.New().String()
		c.Set("requestID", requestID)

		c.Next()

		fields := []interface{}{
			"requestID", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"clientIP", c.ClientIP(),
			"latency", time.Since(start).String(),
		}
		// 身份中间件已经解析出用户时带上uid
		if uid := c.GetString("uid"); uid != "" {
			fields = append(fields, "uid", uid)
		}
		config.Logger.Infow("request", fields...)
	}
}
