package health

import (
	"net/http"
	"runtime"
	"time"

	"diet-planner/internal/core/diet"
	"diet-planner/internal/infrastructure/config"
	"diet-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Uptime    string                 `json:"uptime"`
	Runtime   map[string]interface{} `json:"runtime"`
	Catalog   *CatalogStatus         `json:"catalog,omitempty"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

// CatalogStatus 食物目錄狀態
type CatalogStatus struct {
	Items      int            `json:"items"`
	Categories map[string]int `json:"categories"`
	Regions    []string       `json:"regions"`
}

// Handler 健康檢查處理器
type Handler struct {
	cfg     *config.Config
	svc     *diet.Service
	started time.Time
}

// NewHandler 創建健康檢查處理器
func NewHandler(cfg *config.Config, svc *diet.Service) *Handler {
	return &Handler{cfg: cfg, svc: svc, started: time.Now()}
}

// HealthCheck 健康檢查
func (h *Handler) HealthCheck(c *gin.Context) {
	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.cfg.App.Version,
		Uptime:    time.Since(h.started).Round(time.Second).String(),
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	if h.svc != nil {
		catalog := h.svc.Catalog()
		categories := make(map[string]int)
		for cat, n := range catalog.Categories() {
			categories[string(cat)] = n
		}
		response.Catalog = &CatalogStatus{
			Items:      catalog.Len(),
			Categories: categories,
			Regions:    catalog.Regions(),
		}
		response.Cache = h.svc.CacheStats()
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查，目錄未載入時回傳 503
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.svc == nil || h.svc.Catalog().Len() == 0 {
		common.RespondError(c, common.ErrServiceUnavailable.WithMessage("catalog not loaded"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"items":  h.svc.Catalog().Len(),
	})
}

// LivenessCheck 存活檢查
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
