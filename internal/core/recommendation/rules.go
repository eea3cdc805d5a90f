package recommendation

// conditionRule 一種健康狀況對應的排除條件與摘要用語
type conditionRule struct {
	unsafe  func(SafetyFlags) bool
	phrases []string
}

const (
	phraseHighSugar   = "excluding high-sugar foods"
	phraseHighSodium  = "excluding high-sodium foods"
	phraseHighFat     = "excluding high-fat foods"
	phraseHighProtein = "limiting high-protein foods"
	phraseProcessed   = "excluding processed foods"
)

// conditionRules 健康篩選與摘要共用同一張表
var conditionRules = map[Condition]conditionRule{
	Diabetes: {
		unsafe:  func(f SafetyFlags) bool { return f.IsHighSugar },
		phrases: []string{phraseHighSugar},
	},
	HighBloodPressure: {
		unsafe:  func(f SafetyFlags) bool { return f.IsHighSodium },
		phrases: []string{phraseHighSodium},
	},
	HeartDisease: {
		unsafe:  func(f SafetyFlags) bool { return f.IsHighFat },
		phrases: []string{phraseHighFat},
	},
	KidneyDisease: {
		unsafe:  func(f SafetyFlags) bool { return f.IsHighProtein },
		phrases: []string{phraseHighProtein},
	},
	ThyroidIssues: {
		unsafe:  func(f SafetyFlags) bool { return f.IsProcessed },
		phrases: []string{phraseProcessed},
	},
	PCOS: {
		unsafe:  func(f SafetyFlags) bool { return f.IsProcessed },
		phrases: []string{phraseProcessed},
	},
	LiverDisease: {
		unsafe:  func(f SafetyFlags) bool { return f.IsHighFat || f.IsProcessed },
		phrases: []string{phraseHighFat, phraseProcessed},
	},
}

// activeConditions 回傳實際會觸發篩選的狀況，保留輸入順序並去重
// 只有 None 或未知狀況時回傳空
func activeConditions(diseases []Condition) []Condition {
	var out []Condition
	seen := make(map[Condition]bool, len(diseases))
	for _, d := range diseases {
		if _, ok := conditionRules[d]; !ok || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

// regionApplies 地區篩選是否生效
func regionApplies(location string) (Region, bool) {
	return ParseRegion(location)
}

// goalFilterApplies 目標篩選是否生效
func goalFilterApplies(goal Goal) bool {
	return goal == WeightLoss
}

// preferenceApplies 偏好篩選是否生效
func preferenceApplies(pref FoodPreference) bool {
	return pref == Vegetarian
}

const weightLossCalorieCap = 400

func fitsWeightLoss(item FoodItem) bool {
	return item.Calories <= weightLossCalorieCap || item.IsHighFiber
}
