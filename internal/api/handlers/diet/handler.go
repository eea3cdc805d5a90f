package diet

import (
	"errors"
	"net/http"
	"strings"

	dietService "diet-planner/internal/core/diet"
	"diet-planner/internal/core/nutrition"
	"diet-planner/internal/core/recommendation"
	"diet-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PlanRequest 建立餐單
type PlanRequest struct {
	FoodIDs []string         `json:"foodIds"`
	Goals   *nutrition.Goals `json:"goals" binding:"required"`
}

// MealOptionsResponse 單一餐別的推薦
type MealOptionsResponse struct {
	Meal  recommendation.MealCategory `json:"meal"`
	Items []recommendation.FoodItem   `json:"items"`
	Count int                         `json:"count"`
}

// Handler 飲食規劃處理程序
type Handler struct {
	svc *dietService.Service
}

// NewHandler 創建新的處理程序
func NewHandler(svc *dietService.Service) *Handler {
	return &Handler{svc: svc}
}

// bind 解析 JSON 請求體，失敗時寫入錯誤響應
func bind(c *gin.Context, requestID string, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.String("path", c.Request.URL.Path),
		)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			common.RespondError(c, common.ErrPayloadTooLarge.WithErr(err))
		} else {
			common.RespondError(c, common.ErrInvalidRequest.WithErr(err))
		}
		return false
	}
	return true
}

// HandleListFoods 列出食物目錄，可依 category 與 region 篩選
func (h *Handler) HandleListFoods(c *gin.Context) {
	var category recommendation.MealCategory
	if raw := c.Query("category"); raw != "" {
		parsed, ok := recommendation.ParseMealCategory(raw)
		if !ok {
			common.RespondError(c, common.ErrInvalidCategory)
			return
		}
		category = parsed
	}
	region := recommendation.Region(strings.ToLower(strings.TrimSpace(c.Query("region"))))

	items := h.svc.Catalog().Filter(category, region)
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// HandleGetFood 取得單一食物
func (h *Handler) HandleGetFood(c *gin.Context) {
	item, ok := h.svc.Catalog().Get(c.Param("id"))
	if !ok {
		common.RespondError(c, common.ErrNotFound.WithMessage("food not found"))
		return
	}
	c.JSON(http.StatusOK, item)
}

// HandleRecommendations 依使用者資料產生四個餐別的推薦
func (h *Handler) HandleRecommendations(c *gin.Context) {
	requestID := common.RequestID(c)

	var profile recommendation.UserProfile
	if !bind(c, requestID, &profile) {
		return
	}

	result, err := h.svc.Recommend(c.Request.Context(), profile)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.LogRuleTrace(requestID, result.Rules, result.Counts)
	common.LogInfo("推薦完成",
		zap.String("request_id", requestID),
		zap.String("goal", string(profile.Goal)),
		zap.Int("total", result.Recommendations.Total()),
		zap.Bool("cache_hit", result.CacheHit),
	)

	c.JSON(http.StatusOK, result)
}

// HandleMealOptions 單一餐別的推薦
func (h *Handler) HandleMealOptions(c *gin.Context) {
	requestID := common.RequestID(c)

	var profile recommendation.UserProfile
	if !bind(c, requestID, &profile) {
		return
	}

	meal := c.Param("meal")
	items, err := h.svc.MealOptions(c.Request.Context(), profile, meal)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	category, _ := recommendation.ParseMealCategory(meal)
	c.JSON(http.StatusOK, MealOptionsResponse{
		Meal:  category,
		Items: items,
		Count: len(items),
	})
}

// HandleSummary 生效規則的說明
func (h *Handler) HandleSummary(c *gin.Context) {
	requestID := common.RequestID(c)

	var profile recommendation.UserProfile
	if !bind(c, requestID, &profile) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": h.svc.Summary(profile),
		"rules":   recommendation.FiredRules(profile),
	})
}

// HandleEstimate 計算 BMI、熱量與預設營養目標
func (h *Handler) HandleEstimate(c *gin.Context) {
	requestID := common.RequestID(c)

	var b nutrition.Biometrics
	if !bind(c, requestID, &b) {
		return
	}

	c.JSON(http.StatusOK, h.svc.Estimate(b))
}

// HandlePlan 建立餐單並與營養目標比較
func (h *Handler) HandlePlan(c *gin.Context) {
	requestID := common.RequestID(c)

	var req PlanRequest
	if !bind(c, requestID, &req) {
		return
	}

	result, err := h.svc.BuildPlan(req.FoodIDs, *req.Goals)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.LogInfo("餐單建立完成",
		zap.String("request_id", requestID),
		zap.String("plan_id", result.Plan.ID),
		zap.Int("items", result.Plan.ItemCount),
	)
	c.JSON(http.StatusCreated, result)
}

// HandleReport 產生飲食報告
func (h *Handler) HandleReport(c *gin.Context) {
	requestID := common.RequestID(c)

	var req dietService.ReportRequest
	if !bind(c, requestID, &req) {
		return
	}

	report, err := h.svc.Report(c.Request.Context(), req)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.LogInfo("報告產生完成",
		zap.String("request_id", requestID),
		zap.String("report_id", report.ID),
	)
	c.JSON(http.StatusOK, report)
}
