package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader 响应头里回带请求 ID，方便排查
const RequestIDHeader = "X-Request-ID"

// RequestLog 给每个请求分配 uuid 并记录一行诊断日志。
// 只记路径和耗时，不记请求体。
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(RequestIDHeader, reqID)

		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		var userID uint
		if user := CurrentUser(c); user != nil {
			userID = user.ID
		}

		log.Printf("[%s] %s %s status=%d user=%d cost=%s",
			reqID, c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), userID, elapsed)
	}
}
