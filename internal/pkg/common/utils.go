package common

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// HashString 計算字符串的 SHA-256 哈希值
func HashString(s string) string {
	hash := sha256.Sum256([]byte(s))
	return hex.EncodeToString(hash[:])
}

// RequestID 取得請求 ID，若無則生成並寫回響應頭
func RequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = c.Writer.Header().Get("X-Request-ID")
	}
	if requestID == "" {
		requestID = GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}
	return requestID
}

// RespondError 寫入錯誤響應
// details 只在 gin debug 模式下輸出
func RespondError(c *gin.Context, err error) {
	ce := AsCustomError(err)
	resp := ErrorResponse{Code: ce.Code, Message: ce.Message}
	if ce.Err != nil && gin.IsDebugging() {
		resp.Details = ce.Err.Error()
	}
	if ce.Status >= 500 {
		LogError("請求處理失敗",
			zap.String("code", ce.Code),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(ce.Status, resp)
}
