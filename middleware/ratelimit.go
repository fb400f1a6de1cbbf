package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Room clients poll snapshots and push input samples at tick-ish rates, so
// buckets are per client IP. Quiet clients are swept so one-shot room
// browsers do not accumulate.
const (
	limiterSweepEvery = 5 * time.Minute
	limiterMaxIdle    = 10 * time.Minute
)

type clientBucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

type clientLimiters struct {
	rate    rate.Limit
	burst   int
	buckets sync.Map
}

func newClientLimiters(r rate.Limit, b int) *clientLimiters {
	cl := &clientLimiters{rate: r, burst: b}
	go cl.sweep()
	return cl
}

func (cl *clientLimiters) get(key string) *rate.Limiter {
	v, _ := cl.buckets.LoadOrStore(key, &clientBucket{lim: rate.NewLimiter(cl.rate, cl.burst)})
	bucket := v.(*clientBucket)
	bucket.lastSeen = time.Now()
	return bucket.lim
}

func (cl *clientLimiters) sweep() {
	ticker := time.NewTicker(limiterSweepEvery)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-limiterMaxIdle)
		cl.buckets.Range(func(k, v any) bool {
			if v.(*clientBucket).lastSeen.Before(cutoff) {
				cl.buckets.Delete(k)
			}
			return true
		})
	}
}

// RateLimit limits each client to r requests per second with burst b.
func RateLimit(r rate.Limit, b int) gin.HandlerFunc {
	cl := newClientLimiters(r, b)
	return func(c *gin.Context) {
		if !cl.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
