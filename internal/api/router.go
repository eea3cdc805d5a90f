package api

import (
	"time"

	dietHandler "diet-planner/internal/api/handlers/diet"
	"diet-planner/internal/api/handlers/health"
	"diet-planner/internal/api/middleware"
	"diet-planner/internal/core/diet"
	"diet-planner/internal/infrastructure/config"
	"diet-planner/internal/infrastructure/monitoring"
	"diet-planner/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter 設置路由，metrics 為 nil 時不註冊指標
func SetupRouter(cfg *config.Config, svc *diet.Service, metrics *monitoring.Metrics) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug && gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.MaxBodySize))
	router.Use(middleware.RateLimit(cfg.RateLimit))
	router.Use(middleware.Deduplication(cfg.DedupWindow))
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	if metrics != nil && cfg.Metrics.Enabled {
		router.Use(metrics.Middleware())
		router.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}

	// 健康檢查路由
	healthHandler := health.NewHandler(cfg, svc)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		h := dietHandler.NewHandler(svc)

		foods := api.Group("/foods")
		{
			foods.GET("", h.HandleListFoods)
			foods.GET("/:id", h.HandleGetFood)
		}

		recs := api.Group("/recommendations")
		{
			recs.POST("", h.HandleRecommendations)
			recs.POST("/summary", h.HandleSummary)
			recs.POST("/:meal", h.HandleMealOptions)
		}

		api.POST("/nutrition/estimate", h.HandleEstimate)
		api.POST("/plan", h.HandlePlan)
		api.POST("/report", h.HandleReport)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.MaxBodySize),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Bool("metrics", metrics != nil && cfg.Metrics.Enabled),
	)

	return router
}
