package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

type httpObserver interface {
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
}

// Metrics returns middleware that records request metrics on observer.
func Metrics(observer httpObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if observer == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		observer.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
