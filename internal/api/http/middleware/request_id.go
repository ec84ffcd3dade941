package middleware

import (
	"log"
	"strings"
	"time"

	"github.com/atelier-studio/portfolio-backend/internal/requestid"
	"github.com/gin-gonic/gin"
)

// RequestIDMiddleware ensures every request has a stable request ID.
// - Reads X-Request-Id header if present
// - Otherwise generates a new one
// - Stores it in both Gin context and standard context as "request_id"
// - Echoes it back in response header X-Request-Id
// - Logs request details (method, path, status, latency)
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(requestid.Header))
		if rid == "" || len(rid) > 128 {
			rid = requestid.New()
		}

		c.Set("request_id", rid)
		c.Request = c.Request.WithContext(requestid.With(c.Request.Context(), rid))
		c.Writer.Header().Set(requestid.Header, rid)

		start := time.Now()
		c.Next()

		log.Printf(
			"[req] id=%s method=%s path=%s status=%d latency=%s",
			rid,
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}
