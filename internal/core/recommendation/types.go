package recommendation

import (
	"encoding/json"
	"strings"
)

// MealCategory 餐別
type MealCategory string

const (
	Breakfast MealCategory = "breakfast"
	Lunch     MealCategory = "lunch"
	Snacks    MealCategory = "snacks"
	Dinner    MealCategory = "dinner"
)

// MealCategories 固定的餐別順序
var MealCategories = []MealCategory{Breakfast, Lunch, Snacks, Dinner}

// Valid 檢查是否為四種餐別之一
func (c MealCategory) Valid() bool {
	switch c {
	case Breakfast, Lunch, Snacks, Dinner:
		return true
	}
	return false
}

// ParseMealCategory 不分大小寫解析餐別
func ParseMealCategory(s string) (MealCategory, bool) {
	c := MealCategory(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}

// Region 地區標籤
type Region string

const (
	Maharashtra Region = "maharashtra"
	Kerala      Region = "kerala"
	Punjab      Region = "punjab"
	Karnataka   Region = "karnataka"
)

// SupportedRegions 有地區篩選的地區
var SupportedRegions = []Region{Maharashtra, Kerala, Punjab, Karnataka}

// ParseRegion 不分大小寫比對支援的地區，不去除前後空白
func ParseRegion(location string) (Region, bool) {
	r := Region(strings.ToLower(location))
	for _, s := range SupportedRegions {
		if r == s {
			return r, true
		}
	}
	return r, false
}

// Condition 健康狀況
type Condition string

const (
	ConditionNone     Condition = "None"
	Diabetes          Condition = "Diabetes"
	HighBloodPressure Condition = "High Blood Pressure"
	HeartDisease      Condition = "Heart Disease"
	KidneyDisease     Condition = "Kidney Disease"
	ThyroidIssues     Condition = "Thyroid Issues"
	PCOS              Condition = "PCOS/PCOD"
	LiverDisease      Condition = "Liver Disease"
)

// Conditions 已知的健康狀況（不含 None）
var Conditions = []Condition{Diabetes, HighBloodPressure, HeartDisease, KidneyDisease, ThyroidIssues, PCOS, LiverDisease}

// Valid 檢查是否為已知狀況或 None
func (c Condition) Valid() bool {
	if c == ConditionNone {
		return true
	}
	_, ok := conditionRules[c]
	return ok
}

// Goal 健身目標
type Goal string

const (
	WeightLoss Goal = "weight_loss"
	WeightGain Goal = "weight_gain"
	Maintain   Goal = "maintain"
	StayFit    Goal = "stay_fit"
)

// Valid 檢查是否為已知目標
func (g Goal) Valid() bool {
	switch g {
	case WeightLoss, WeightGain, Maintain, StayFit:
		return true
	}
	return false
}

// FoodPreference 飲食偏好
type FoodPreference string

const (
	Vegetarian    FoodPreference = "vegetarian"
	NonVegetarian FoodPreference = "non_vegetarian"
	Both          FoodPreference = "both"
)

// Valid 檢查是否為已知偏好
func (p FoodPreference) Valid() bool {
	switch p {
	case Vegetarian, NonVegetarian, Both:
		return true
	}
	return false
}

// SafetyFlags 食物的安全標記，未標記即為 false
type SafetyFlags struct {
	IsHighSugar   bool `json:"isHighSugar,omitempty"`
	IsHighSodium  bool `json:"isHighSodium,omitempty"`
	IsHighFat     bool `json:"isHighFat,omitempty"`
	IsHighProtein bool `json:"isHighProtein,omitempty"`
	IsProcessed   bool `json:"isProcessed,omitempty"`
	IsHighFiber   bool `json:"isHighFiber,omitempty"`
	IsVeg         bool `json:"isVeg,omitempty"`
}

// FoodItem 食物目錄中的一筆資料
type FoodItem struct {
	ID       string       `json:"id" validate:"required"`
	Name     string       `json:"name" validate:"required"`
	Calories float64      `json:"calories" validate:"gt=0"`
	Protein  float64      `json:"protein" validate:"gte=0"`
	Carbs    float64      `json:"carbs" validate:"gte=0"`
	Fat      float64      `json:"fat" validate:"gte=0"`
	Category MealCategory `json:"category" validate:"required,oneof=breakfast lunch snacks dinner"`
	Region   Region       `json:"region,omitempty" validate:"omitempty,region_tag"`
	SafetyFlags
}

// DislikedFoods 逗號分隔的不喜歡食物
// JSON 中非字串的值視為空字串
type DislikedFoods string

// UnmarshalJSON 容忍非字串輸入
func (d *DislikedFoods) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*d = ""
		return nil
	}
	*d = DislikedFoods(s)
	return nil
}

// UserProfile 使用者資料
type UserProfile struct {
	Location       string         `json:"location"`
	FoodPreference FoodPreference `json:"foodPreference"`
	Goal           Goal           `json:"goal"`
	Diseases       []Condition    `json:"diseases"`
	DislikedFoods  DislikedFoods  `json:"dislikedFoods"`
}

// Recommendations 各餐別的推薦結果，四個餐別永遠存在
type Recommendations map[MealCategory][]FoodItem

// Counts 各餐別的數量
func (r Recommendations) Counts() map[string]int {
	out := make(map[string]int, len(r))
	for c, items := range r {
		out[string(c)] = len(items)
	}
	return out
}

// Total 所有餐別的總數
func (r Recommendations) Total() int {
	n := 0
	for _, items := range r {
		n += len(items)
	}
	return n
}
