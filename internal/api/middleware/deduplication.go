package middleware

import (
	"bytes"
	"io"
	"net/http"
	"sync"
	"time"

	"diet-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// dedupCleanupFactor 指紋保留超過 window 的倍數後清除
const dedupCleanupFactor = 10

// deduplicator 記錄近期 POST 請求的指紋
type deduplicator struct {
	mu          sync.Mutex
	window      time.Duration
	requests    map[string]time.Time
	lastCleanup time.Time
	now         func() time.Time
}

func newDeduplicator(window time.Duration) *deduplicator {
	return &deduplicator{
		window:      window,
		requests:    make(map[string]time.Time),
		lastCleanup: time.Now(),
		now:         time.Now,
	}
}

// seen 回傳指紋是否在 window 內出現過，並記錄本次請求
func (d *deduplicator) seen(fingerprint string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	d.cleanup(now)

	if last, ok := d.requests[fingerprint]; ok && now.Sub(last) <= d.window {
		return true
	}
	d.requests[fingerprint] = now
	return false
}

func (d *deduplicator) cleanup(now time.Time) {
	ttl := dedupCleanupFactor * d.window
	if now.Sub(d.lastCleanup) < ttl {
		return
	}
	for k, t := range d.requests {
		if now.Sub(t) > ttl {
			delete(d.requests, k)
		}
	}
	d.lastCleanup = now
}

// Deduplication 請求去重中間件
// 同一客戶端在 window 內重送相同的 POST 請求時回傳 429，window 不大於 0 時停用
func Deduplication(window time.Duration) gin.HandlerFunc {
	if window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	d := newDeduplicator(window)

	return func(c *gin.Context) {
		// 只處理 POST 請求
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		// 計算請求體哈希
		bodyHash := ""
		if c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				common.LogWarn("Failed to read request body", zap.Error(err))
				c.Next()
				return
			}
			bodyHash = common.HashString(string(body))

			// 恢復請求體
			c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
		}

		// 生成請求指紋
		fingerprint := c.ClientIP() + ":" + c.Request.URL.Path + ":" + bodyHash

		if d.seen(fingerprint) {
			common.LogInfo("Duplicate request rejected",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			common.RespondError(c, common.ErrTooManyRequests.WithMessage("Request too frequent"))
			return
		}

		c.Next()
	}
}
