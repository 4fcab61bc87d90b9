package mw

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Throttle caps request throughput with a single shared token bucket. The
// kiosk UI on the same device is the only caller, so there is no per-client
// bookkeeping; the bucket absorbs a stuck finger hammering a touch control.
func Throttle(limit rate.Limit, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(limit, burst)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}
