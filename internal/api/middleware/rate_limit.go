package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"diet-planner/internal/infrastructure/config"
	"diet-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// clientIdleTTL 閒置超過此時間的客戶端限流器會被清除
const clientIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter 依客戶端 IP 分別限流
type RateLimiter struct {
	mu          sync.Mutex
	clients     map[string]*clientLimiter
	limit       rate.Limit
	burst       int
	retryAfter  time.Duration
	lastCleanup time.Time
}

// NewRateLimiter 創建新的限流器，每個客戶端在 window 內最多 requests 次，允許 burst 次突發
func NewRateLimiter(requests int, window time.Duration, burst int) *RateLimiter {
	if burst <= 0 {
		burst = requests
	}
	interval := window / time.Duration(requests)
	return &RateLimiter{
		clients:     make(map[string]*clientLimiter),
		limit:       rate.Every(interval),
		burst:       burst,
		retryAfter:  interval,
		lastCleanup: time.Now(),
	}
}

// Allow 檢查客戶端是否允許請求
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastCleanup) > clientIdleTTL {
		for k, cl := range rl.clients {
			if now.Sub(cl.lastSeen) > clientIdleTTL {
				delete(rl.clients, k)
			}
		}
		rl.lastCleanup = now
	}

	cl, ok := rl.clients[client]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[client] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// Clients 目前追蹤的客戶端數
func (rl *RateLimiter) Clients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// RateLimit 限流中間件，設定停用時不限流
func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Requests <= 0 || cfg.Window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	limiter := NewRateLimiter(cfg.Requests, cfg.Window, cfg.Burst)
	retryAfter := strconv.Itoa(int(math.Ceil(limiter.retryAfter.Seconds())))

	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			common.LogInfo("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			c.Header("Retry-After", retryAfter)
			common.RespondError(c, common.ErrTooManyRequests)
			return
		}

		c.Next()
	}
}
