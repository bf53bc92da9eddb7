package middleware

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

type ConnectionTracker interface {
	Track() gin.HandlerFunc
	Active() int64
}

type connectionTracker struct {
	active atomic.Int64
}

// Track counts requests currently inside the handler chain.
func (t *connectionTracker) Track() gin.HandlerFunc {
	return func(c *gin.Context) {
		t.active.Add(1)
		defer t.active.Add(-1)
		c.Next()
	}
}

func (t *connectionTracker) Active() int64 {
	return t.active.Load()
}

func NewConnectionTracker() ConnectionTracker {
	return &connectionTracker{}
}

// RequestDeadline bounds the request context so every downstream call made with
// c.Request.Context() is abandoned once the deadline passes.
func RequestDeadline(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
