// Package nutrition 身體指標與每日營養目標的計算
package nutrition

import (
	"fmt"
	"math"
	"strings"

	"diet-planner/internal/core/recommendation"
	"diet-planner/internal/pkg/common"
)

// Gender 性別
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)

// ActivityLevel 活動量
type ActivityLevel string

const (
	Sedentary ActivityLevel = "sedentary"
	Moderate  ActivityLevel = "moderate"
	Active    ActivityLevel = "active"
)

// activityMultipliers 活動量對應的 TDEE 乘數，未知值使用 sedentary
var activityMultipliers = map[ActivityLevel]float64{
	Sedentary: 1.2,
	Moderate:  1.55,
	Active:    1.725,
}

// Biometrics 計算熱量所需的身體資料
type Biometrics struct {
	Age           int                 `json:"age" binding:"required,gt=0,lte=120"`
	Gender        Gender              `json:"gender" binding:"required"`
	HeightCm      float64             `json:"height" binding:"required,gt=0,lte=300"`
	WeightKg      float64             `json:"weight" binding:"required,gt=0,lte=500"`
	ActivityLevel ActivityLevel       `json:"activityLevel"`
	Goal          recommendation.Goal `json:"goal"`
}

// BMIStatus BMI 分級
type BMIStatus string

const (
	Underweight BMIStatus = "Underweight"
	Normal      BMIStatus = "Normal"
	Overweight  BMIStatus = "Overweight"
	Obese       BMIStatus = "Obese"
	Unknown     BMIStatus = "Unknown"
)

// BMI 身高(cm)與體重(kg)計算 BMI，身高或體重非正數時回傳 0
func BMI(heightCm, weightKg float64) float64 {
	if heightCm <= 0 || weightKg <= 0 {
		return 0
	}
	m := heightCm / 100
	return weightKg / (m * m)
}

// ClassifyBMI BMI 分級
func ClassifyBMI(bmi float64) BMIStatus {
	switch {
	case bmi <= 0:
		return Unknown
	case bmi < 18.5:
		return Underweight
	case bmi < 25:
		return Normal
	case bmi < 30:
		return Overweight
	default:
		return Obese
	}
}

// BMR Mifflin-St Jeor 基礎代謝率，男性 +5，其他 -161
func BMR(b Biometrics) float64 {
	bmr := 10*b.WeightKg + 6.25*b.HeightCm - 5*float64(b.Age)
	if normalizeGender(b.Gender) == Male {
		return bmr + 5
	}
	return bmr - 161
}

// ActivityMultiplier 活動量乘數
func ActivityMultiplier(level ActivityLevel) float64 {
	if m, ok := activityMultipliers[ActivityLevel(strings.ToLower(string(level)))]; ok {
		return m
	}
	return activityMultipliers[Sedentary]
}

// CalorieEstimate 依目標調整後的熱量建議
type CalorieEstimate struct {
	BMR          int    `json:"bmr"`
	Maintenance  int    `json:"maintenance"`
	Target       int    `json:"target"`
	Aggressive   int    `json:"aggressive"`
	Conservative int    `json:"conservative"`
	Description  string `json:"description"`
}

type calorieAdjustment struct {
	target, aggressive, conservative int
	description                      string
}

var goalAdjustments = map[recommendation.Goal]calorieAdjustment{
	recommendation.WeightLoss: {-500, -750, -250, "Calorie deficit for gradual, sustainable weight loss"},
	recommendation.WeightGain: {500, 750, 250, "Calorie surplus for healthy weight gain"},
	recommendation.Maintain:   {0, 0, 0, "Maintain current weight with balanced nutrition"},
	recommendation.StayFit:    {100, 200, 0, "Optimize body composition and fitness performance"},
}

var defaultAdjustment = calorieAdjustment{description: "Maintain current weight"}

// EstimateCalories 計算維持熱量與依目標調整的建議
func EstimateCalories(b Biometrics) CalorieEstimate {
	bmr := BMR(b)
	maintenance := int(math.Round(bmr * ActivityMultiplier(b.ActivityLevel)))

	adj, ok := goalAdjustments[b.Goal]
	if !ok {
		adj = defaultAdjustment
	}
	return CalorieEstimate{
		BMR:          int(math.Round(bmr)),
		Maintenance:  maintenance,
		Target:       maintenance + adj.target,
		Aggressive:   maintenance + adj.aggressive,
		Conservative: maintenance + adj.conservative,
		Description:  adj.description,
	}
}

// Goals 每日營養目標
type Goals struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// Bound 目標的允許範圍
type Bound struct {
	Min  int `json:"min"`
	Max  int `json:"max"`
	Step int `json:"step"`
}

// GoalBounds 各營養目標的調整範圍
var GoalBounds = map[string]Bound{
	"calories": {Min: 1000, Max: 4000, Step: 50},
	"protein":  {Min: 50, Max: 300, Step: 5},
	"carbs":    {Min: 50, Max: 500, Step: 10},
	"fat":      {Min: 20, Max: 150, Step: 5},
}

var goalMultipliers = map[recommendation.Goal]float64{
	recommendation.WeightLoss: 0.8,
	recommendation.WeightGain: 1.2,
	recommendation.Maintain:   1.0,
	recommendation.StayFit:    1.1,
}

// DefaultGoals 依性別、體重與目標計算預設營養目標，結果一定通過 Validate
func DefaultGoals(gender Gender, weightKg float64, goal recommendation.Goal) Goals {
	base := 1800.0
	if normalizeGender(gender) == Male {
		base = 2200
	}
	mult, ok := goalMultipliers[goal]
	if !ok {
		mult = 1.0
	}
	calories := math.Round(base * mult)
	return Goals{
		Calories: clampGoal("calories", int(calories)),
		Protein:  clampGoal("protein", int(math.Round(weightKg*1.2))),
		Carbs:    clampGoal("carbs", int(math.Round(calories*0.45/4))),
		Fat:      clampGoal("fat", int(math.Round(calories*0.30/9))),
	}
}

// clampGoal 將計算值限制在 GoalBounds 內
func clampGoal(name string, v int) int {
	b := GoalBounds[name]
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// Validate 檢查目標是否在允許範圍內
func (g Goals) Validate() error {
	values := map[string]int{
		"calories": g.Calories,
		"protein":  g.Protein,
		"carbs":    g.Carbs,
		"fat":      g.Fat,
	}
	for _, name := range []string{"calories", "protein", "carbs", "fat"} {
		b := GoalBounds[name]
		if v := values[name]; v < b.Min || v > b.Max {
			return common.ErrInvalidGoals.WithErr(fmt.Errorf("%s must be between %d and %d, got %d", name, b.Min, b.Max, v))
		}
	}
	return nil
}

func normalizeGender(g Gender) Gender {
	return Gender(strings.ToLower(strings.TrimSpace(string(g))))
}
