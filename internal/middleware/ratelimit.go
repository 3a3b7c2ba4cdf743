package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type visitor struct {
	count    int
	lastSeen time.Time
}

var (
	visitors = make(map[string]*visitor)
	mu       sync.Mutex
)

func init() {
	go func() {
		for {
			time.Sleep(time.Minute)
			mu.Lock()
			for key, v := range visitors {
				if time.Since(v.lastSeen) > 2*time.Minute {
					delete(visitors, key)
				}
			}
			mu.Unlock()
		}
	}()
}

// RateLimit limits requests per IP per route. Buckets are keyed on path as
// well as IP so a burst of trade submissions cannot exhaust the login allowance.
func RateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP() + "|" + c.FullPath()

		mu.Lock()
		v, exists := visitors[key]
		if !exists || time.Since(v.lastSeen) > window {
			visitors[key] = &visitor{count: 1, lastSeen: time.Now()}
			mu.Unlock()
			c.Next()
			return
		}

		v.count++
		v.lastSeen = time.Now()
		if v.count > maxRequests {
			mu.Unlock()
			c.String(http.StatusTooManyRequests, "Too many requests. Please try again later.")
			c.Abort()
			return
		}
		mu.Unlock()
		c.Next()
	}
}
