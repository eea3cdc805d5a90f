// Package recommendation 規則式的食物推薦引擎
//
// 推薦流程固定為：正規化不喜歡的食物 → 地區 → 健康狀況 → 目標 → 偏好 → 不喜歡的食物
// → 依餐別分桶 → 各桶依目標排序。健康篩選一定先於目標與偏好篩選，後者無法放寬前者。
// 引擎只持有唯讀的目錄快照，不做 I/O，可安全地被多個 goroutine 同時使用。
package recommendation

// Engine 推薦引擎
type Engine struct {
	catalog []FoodItem
}

// NewEngine 以目錄快照建立引擎，之後修改傳入的切片不影響引擎
func NewEngine(items []FoodItem) *Engine {
	return &Engine{catalog: clone(items)}
}

// Catalog 回傳目錄副本
func (e *Engine) Catalog() []FoodItem {
	return clone(e.catalog)
}

// GetRecommendedFoods 依使用者資料產生各餐別的推薦
func (e *Engine) GetRecommendedFoods(profile UserProfile) Recommendations {
	disliked := NormalizeDislikedFoods(profile.DislikedFoods)

	items := FilterByRegion(e.catalog, profile.Location)
	items = FilterByHealthConditions(items, profile.Diseases)
	items = FilterByGoal(items, profile.Goal)
	items = FilterByFoodPreference(items, profile.FoodPreference)
	items = FilterByDislikedFoods(items, disliked)

	buckets := SplitByCategory(items)
	for c, bucket := range buckets {
		buckets[c] = RankByGoal(bucket, profile.Goal)
	}
	return buckets
}

// GetAvailableFoodsForMeal 回傳單一餐別的推薦，未知餐別回傳空切片
func (e *Engine) GetAvailableFoodsForMeal(profile UserProfile, category MealCategory) []FoodItem {
	if bucket, ok := e.GetRecommendedFoods(profile)[category]; ok {
		return bucket
	}
	return []FoodItem{}
}

// GetRecommendationSummary 回傳生效規則的說明
func (e *Engine) GetRecommendationSummary(profile UserProfile) []string {
	return BuildSummary(profile)
}
