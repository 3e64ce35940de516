package api

import (
	"net/http"

	"github.com/JustJay7/ecourts-case-lookup/internal/cache"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestID tags each request with an id, reusing one supplied by the client.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Header(requestIDHeader, requestID)
		c.Set(requestIDKey, requestID)

		c.Next()
	}
}

// GetRequestID returns the id assigned by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// CORS opens the JSON API to browser clients on other origins and answers
// preflight requests.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Expose-Headers", requestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Throttle allows limit requests per client IP per counter window within
// scope. reject writes the response for turned-away requests. A nil counter
// or non-positive limit disables throttling.
func Throttle(counter cache.Counter, limit int, scope string, reject gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if counter == nil || limit <= 0 {
			c.Next()
			return
		}

		if counter.Hit(cache.ClientKey(scope, c.ClientIP())) > limit {
			counter.Reject()
			reject(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

func rejectHTML(c *gin.Context) {
	c.HTML(http.StatusTooManyRequests, "error.html", gin.H{
		"message": "Too many requests. Please try again later.",
	})
}

func rejectText(c *gin.Context) {
	c.String(http.StatusTooManyRequests, "Too many requests")
}

func rejectJSON(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"success": false,
		"error":   "Rate limit exceeded. Please try again later.",
	})
}
