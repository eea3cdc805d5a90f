package recommendation

import "sort"

// RankByGoal 依目標穩定排序，回傳新切片
//   - weight_loss: 高纖優先，再依熱量由低到高
//   - weight_gain: 高蛋白優先，再依熱量由高到低
//   - 其他: 蛋白質/熱量比由高到低
func RankByGoal(items []FoodItem, goal Goal) []FoodItem {
	out := clone(items)
	sort.SliceStable(out, lessFor(goal, out))
	return out
}

func lessFor(goal Goal, items []FoodItem) func(i, j int) bool {
	switch goal {
	case WeightLoss:
		return func(i, j int) bool {
			a, b := items[i], items[j]
			if a.IsHighFiber != b.IsHighFiber {
				return a.IsHighFiber
			}
			return a.Calories < b.Calories
		}
	case WeightGain:
		return func(i, j int) bool {
			a, b := items[i], items[j]
			if a.IsHighProtein != b.IsHighProtein {
				return a.IsHighProtein
			}
			return a.Calories > b.Calories
		}
	default:
		return func(i, j int) bool {
			return proteinDensity(items[i]) > proteinDensity(items[j])
		}
	}
}

// proteinDensity 每大卡的蛋白質克數
func proteinDensity(item FoodItem) float64 {
	if item.Calories <= 0 {
		return 0
	}
	return item.Protein / item.Calories
}
