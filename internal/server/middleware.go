package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nguyentantai21042004/tubescribe/internal/logger"
)

// requestLogger logs one line per request through the application logger.
func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ctx := c.Request.Context()
		switch {
		case status >= 500:
			log.Error(ctx, "%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, status, time.Since(start))
		case status >= 400:
			log.Warn(ctx, "%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, status, time.Since(start))
		default:
			log.Debug(ctx, "%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, status, time.Since(start))
		}
	}
}
