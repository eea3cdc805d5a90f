// Package diet 組合推薦引擎、營養計算、餐單與結果快取
package diet

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"diet-planner/internal/core/cache"
	"diet-planner/internal/core/catalog"
	"diet-planner/internal/core/nutrition"
	"diet-planner/internal/core/plan"
	"diet-planner/internal/core/recommendation"
	"diet-planner/internal/infrastructure/monitoring"
	"diet-planner/internal/pkg/common"

	"go.uber.org/zap"
)

const cacheNamespace = "recommendations"

// Service 飲食規劃服務
type Service struct {
	catalog *catalog.Catalog
	engine  *recommendation.Engine
	cache   cache.Store
	metrics *monitoring.Metrics
}

// NewService 創建服務，cache 與 metrics 可為 nil
func NewService(c *catalog.Catalog, store cache.Store, metrics *monitoring.Metrics) *Service {
	metrics.SetCatalogItems(c.Len())
	return &Service{
		catalog: c,
		engine:  recommendation.NewEngine(c.Items()),
		cache:   store,
		metrics: metrics,
	}
}

// Catalog 食物目錄
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// CacheStats 快取統計，未啟用時回傳 nil
func (s *Service) CacheStats() map[string]interface{} {
	if s.cache == nil {
		return nil
	}
	return s.cache.Stats()
}

// RecommendationResult 推薦結果與規則說明
type RecommendationResult struct {
	Recommendations recommendation.Recommendations `json:"recommendations"`
	Summary         []string                       `json:"summary"`
	Rules           []string                       `json:"rules"`
	Counts          map[string]int                 `json:"counts"`
	CacheHit        bool                           `json:"cacheHit"`
	GeneratedAt     time.Time                      `json:"generatedAt"`
}

// Recommend 產生推薦，相同的使用者資料會命中快取
// 快取失敗不影響結果
func (s *Service) Recommend(ctx context.Context, profile recommendation.UserProfile) (*RecommendationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.ErrRequestTimeout.WithErr(err)
	}

	key := CacheKey(profile)
	if cached, ok := s.lookup(ctx, key); ok {
		cached.CacheHit = true
		s.metrics.RecordRecommendation(string(profile.Goal), true)
		return cached, nil
	}

	recs := s.engine.GetRecommendedFoods(profile)
	rules := recommendation.FiredRules(profile)
	summary := make([]string, 0, len(rules))
	kinds := make([]string, 0, len(rules))
	for _, r := range rules {
		summary = append(summary, r.Description)
		kinds = append(kinds, string(r.Kind))
	}

	result := &RecommendationResult{
		Recommendations: recs,
		Summary:         summary,
		Rules:           kinds,
		Counts:          recs.Counts(),
		GeneratedAt:     time.Now().UTC(),
	}

	s.metrics.RecordRecommendation(string(profile.Goal), false)
	s.metrics.RecordRules(kinds)
	s.store(ctx, key, result)

	return result, nil
}

func (s *Service) lookup(ctx context.Context, key string) (*RecommendationResult, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, cacheNamespace, key)
	if err != nil {
		if errors.Is(err, common.ErrCacheMiss) {
			s.metrics.RecordCache("get", "miss")
		} else {
			s.metrics.RecordCache("get", "error")
			common.LogWarn("讀取快取失敗", zap.Error(err))
		}
		return nil, false
	}

	var result RecommendationResult
	if err := common.ParseJSON(raw, &result); err != nil {
		s.metrics.RecordCache("get", "error")
		common.LogWarn("快取內容無法解析", zap.Error(err))
		return nil, false
	}
	s.metrics.RecordCache("get", "hit")
	return &result, true
}

func (s *Service) store(ctx context.Context, key string, result *RecommendationResult) {
	if s.cache == nil {
		return
	}
	raw, err := common.ToJSON(result)
	if err == nil {
		err = s.cache.Set(ctx, cacheNamespace, key, raw)
	}
	if err != nil {
		s.metrics.RecordCache("set", "error")
		common.LogWarn("寫入快取失敗", zap.Error(err))
		return
	}
	s.metrics.RecordCache("set", "ok")
}

// MealOptions 單一餐別的推薦
func (s *Service) MealOptions(ctx context.Context, profile recommendation.UserProfile, meal string) ([]recommendation.FoodItem, error) {
	category, ok := recommendation.ParseMealCategory(meal)
	if !ok {
		return nil, common.ErrInvalidCategory.WithErr(errors.New("meal must be one of breakfast, lunch, snacks, dinner"))
	}
	result, err := s.Recommend(ctx, profile)
	if err != nil {
		return nil, err
	}
	if items, ok := result.Recommendations[category]; ok {
		return items, nil
	}
	return []recommendation.FoodItem{}, nil
}

// Summary 生效規則說明
func (s *Service) Summary(profile recommendation.UserProfile) []string {
	return s.engine.GetRecommendationSummary(profile)
}

// CacheKey 正規化使用者資料後計算快取鍵
// 地區大小寫、狀況順序與不喜歡食物的大小寫空白不影響結果
// 不喜歡食物的順序會出現在摘要中，因此保留
func CacheKey(profile recommendation.UserProfile) string {
	diseases := make([]string, 0, len(profile.Diseases))
	for _, d := range profile.Diseases {
		diseases = append(diseases, string(d))
	}
	sort.Strings(diseases)

	canonical := struct {
		Location       string   `json:"l"`
		FoodPreference string   `json:"p"`
		Goal           string   `json:"g"`
		Diseases       []string `json:"d"`
		Disliked       []string `json:"x"`
	}{
		Location:       strings.ToLower(profile.Location),
		FoodPreference: string(profile.FoodPreference),
		Goal:           string(profile.Goal),
		Diseases:       diseases,
		Disliked:       recommendation.NormalizeDislikedFoods(profile.DislikedFoods),
	}
	data, _ := json.Marshal(canonical)
	return common.HashString(string(data))
}

// EstimateResult 身體指標與營養目標
type EstimateResult struct {
	BMI       float64                    `json:"bmi"`
	BMIStatus nutrition.BMIStatus        `json:"bmiStatus"`
	Calories  nutrition.CalorieEstimate  `json:"calories"`
	Goals     nutrition.Goals            `json:"goals"`
	Bounds    map[string]nutrition.Bound `json:"bounds"`
}

// Estimate 計算 BMI、熱量建議與預設營養目標
func (s *Service) Estimate(b nutrition.Biometrics) EstimateResult {
	bmi := nutrition.BMI(b.HeightCm, b.WeightKg)
	return EstimateResult{
		BMI:       common.Round1(bmi),
		BMIStatus: nutrition.ClassifyBMI(bmi),
		Calories:  nutrition.EstimateCalories(b),
		Goals:     nutrition.DefaultGoals(b.Gender, b.WeightKg, b.Goal),
		Bounds:    nutrition.GoalBounds,
	}
}

// PlanResult 餐單與目標追蹤
type PlanResult struct {
	Plan    *plan.MealPlan    `json:"plan"`
	Goals   nutrition.Goals   `json:"goals"`
	Tracker nutrition.Tracker `json:"tracker"`
}

// BuildPlan 依選擇的食物建立餐單並與目標比較
// 未選擇任何食物時回傳 ErrEmptyPlan
func (s *Service) BuildPlan(ids []string, goals nutrition.Goals) (*PlanResult, error) {
	if err := goals.Validate(); err != nil {
		return nil, err
	}
	p, err := plan.Build(s.catalog, ids)
	if err == nil {
		err = p.Validate()
	}
	if err != nil {
		s.metrics.RecordMealPlan("error")
		return nil, err
	}
	s.metrics.RecordMealPlan("ok")
	return &PlanResult{
		Plan:    p,
		Goals:   goals,
		Tracker: nutrition.Track(p.Totals, goals),
	}, nil
}

// ReportRequest 報告所需的資料
type ReportRequest struct {
	Profile    recommendation.UserProfile `json:"profile"`
	Biometrics nutrition.Biometrics       `json:"biometrics"`
	Goals      *nutrition.Goals           `json:"goals"`
	FoodIDs    []string                   `json:"foodIds"`
}

// Report 飲食報告
type Report struct {
	ID          string                     `json:"id"`
	GeneratedAt time.Time                  `json:"generatedAt"`
	Profile     recommendation.UserProfile `json:"profile"`
	Biometrics  nutrition.Biometrics       `json:"biometrics"`
	BMI         float64                    `json:"bmi"`
	BMIStatus   nutrition.BMIStatus        `json:"bmiStatus"`
	Calories    nutrition.CalorieEstimate  `json:"calories"`
	Goals       nutrition.Goals            `json:"goals"`
	Rules       []recommendation.FiredRule `json:"rules"`
	Plan        *plan.MealPlan             `json:"plan"`
	Tracker     nutrition.Tracker          `json:"tracker"`
}

// Report 彙整身體指標、營養目標、生效規則與餐單
// 未提供目標時使用預設目標，餐單可為空
func (s *Service) Report(ctx context.Context, req ReportRequest) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.ErrRequestTimeout.WithErr(err)
	}

	estimate := s.Estimate(req.Biometrics)
	goals := estimate.Goals
	if req.Goals != nil {
		goals = *req.Goals
	}

	if err := goals.Validate(); err != nil {
		return nil, err
	}
	p, err := plan.Build(s.catalog, req.FoodIDs)
	if err != nil {
		return nil, err
	}

	rules := recommendation.FiredRules(req.Profile)
	if rules == nil {
		rules = []recommendation.FiredRule{}
	}

	return &Report{
		ID:          common.GenerateUUID(),
		GeneratedAt: time.Now().UTC(),
		Profile:     req.Profile,
		Biometrics:  req.Biometrics,
		BMI:         estimate.BMI,
		BMIStatus:   estimate.BMIStatus,
		Calories:    estimate.Calories,
		Goals:       goals,
		Rules:       rules,
		Plan:        p,
		Tracker:     nutrition.Track(p.Totals, goals),
	}, nil
}
