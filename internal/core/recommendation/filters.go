package recommendation

import (
	"strings"
)

// NormalizeDislikedFoods 將逗號分隔字串轉為小寫、去空白、去重的 token
func NormalizeDislikedFoods(raw DislikedFoods) []string {
	var tokens []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(string(raw), ",") {
		t := strings.ToLower(strings.TrimSpace(part))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tokens = append(tokens, t)
	}
	return tokens
}

// filter 回傳符合條件的新切片，不修改輸入
func filter(items []FoodItem, keep func(FoodItem) bool) []FoodItem {
	out := make([]FoodItem, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func clone(items []FoodItem) []FoodItem {
	out := make([]FoodItem, len(items))
	copy(out, items)
	return out
}

// FilterByRegion 支援的地區只保留該地區食物，其餘地區不篩選
func FilterByRegion(items []FoodItem, location string) []FoodItem {
	region, ok := regionApplies(location)
	if !ok {
		return clone(items)
	}
	return filter(items, func(item FoodItem) bool {
		return item.Region == region
	})
}

// FilterByHealthConditions 排除任一健康狀況標記為不安全的食物
func FilterByHealthConditions(items []FoodItem, diseases []Condition) []FoodItem {
	active := activeConditions(diseases)
	if len(active) == 0 {
		return clone(items)
	}
	return filter(items, func(item FoodItem) bool {
		for _, c := range active {
			if conditionRules[c].unsafe(item.SafetyFlags) {
				return false
			}
		}
		return true
	})
}

// FilterByGoal 減重目標只保留低熱量或高纖食物
func FilterByGoal(items []FoodItem, goal Goal) []FoodItem {
	if !goalFilterApplies(goal) {
		return clone(items)
	}
	return filter(items, fitsWeightLoss)
}

// FilterByFoodPreference 素食者只保留素食
func FilterByFoodPreference(items []FoodItem, pref FoodPreference) []FoodItem {
	if !preferenceApplies(pref) {
		return clone(items)
	}
	return filter(items, func(item FoodItem) bool {
		return item.IsVeg
	})
}

// FilterByDislikedFoods 名稱包含 token，或 token 包含名稱第一個字時排除
func FilterByDislikedFoods(items []FoodItem, tokens []string) []FoodItem {
	if len(tokens) == 0 {
		return clone(items)
	}
	return filter(items, func(item FoodItem) bool {
		return !isDisliked(item.Name, tokens)
	})
}

func isDisliked(name string, tokens []string) bool {
	lower := strings.ToLower(name)
	first := ""
	if words := strings.Fields(lower); len(words) > 0 {
		first = words[0]
	}
	for _, t := range tokens {
		if strings.Contains(lower, t) {
			return true
		}
		if first != "" && strings.Contains(t, first) {
			return true
		}
	}
	return false
}

// SplitByCategory 依餐別分桶，四個餐別都會有非 nil 的切片
func SplitByCategory(items []FoodItem) Recommendations {
	out := make(Recommendations, len(MealCategories))
	for _, c := range MealCategories {
		out[c] = []FoodItem{}
	}
	for _, item := range items {
		if bucket, ok := out[item.Category]; ok {
			out[item.Category] = append(bucket, item)
		}
	}
	return out
}
