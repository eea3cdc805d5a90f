// Package plan 依使用者選擇的食物組成一日餐單
package plan

import (
	"fmt"
	"time"

	"diet-planner/internal/core/recommendation"
	"diet-planner/internal/pkg/common"
)

// FoodLookup 依 ID 查詢食物
type FoodLookup interface {
	Get(id string) (recommendation.FoodItem, bool)
}

// Meal 單一餐別的選擇
type Meal struct {
	Category recommendation.MealCategory `json:"category"`
	Items    []recommendation.FoodItem   `json:"items"`
	Totals   common.Macros               `json:"totals"`
}

// MealPlan 一日餐單
type MealPlan struct {
	ID        string        `json:"id"`
	Meals     []Meal        `json:"meals"`
	Totals    common.Macros `json:"totals"`
	ItemCount int           `json:"itemCount"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Build 解析選擇的食物 ID 並依餐別分組
// 重複的 ID 只計一次，未知 ID 回傳 ErrUnknownFood
func Build(lookup FoodLookup, ids []string) (*MealPlan, error) {
	byCategory := make(map[recommendation.MealCategory][]recommendation.FoodItem)
	seen := make(map[string]bool, len(ids))
	count := 0

	for _, id := range ids {
		if seen[id] {
			continue
		}
		item, ok := lookup.Get(id)
		if !ok {
			return nil, common.ErrUnknownFood.WithErr(fmt.Errorf("food %q not found", id))
		}
		seen[id] = true
		byCategory[item.Category] = append(byCategory[item.Category], item)
		count++
	}

	p := &MealPlan{
		ID:        common.GenerateUUID(),
		Meals:     []Meal{},
		ItemCount: count,
		CreatedAt: time.Now().UTC(),
	}
	for _, c := range recommendation.MealCategories {
		items := byCategory[c]
		if len(items) == 0 {
			continue
		}
		meal := Meal{Category: c, Items: items, Totals: Sum(items)}
		p.Meals = append(p.Meals, meal)
		p.Totals = p.Totals.Add(meal.Totals)
	}
	p.Totals = p.Totals.Round()
	return p, nil
}

// Sum 食物的營養素總和
func Sum(items []recommendation.FoodItem) common.Macros {
	var m common.Macros
	for _, item := range items {
		m = m.Add(common.Macros{
			Calories: item.Calories,
			Protein:  item.Protein,
			Carbs:    item.Carbs,
			Fat:      item.Fat,
		})
	}
	return m.Round()
}

// Empty 餐單沒有任何食物
func (p *MealPlan) Empty() bool {
	return p == nil || p.ItemCount == 0
}

// Validate 儲存前檢查餐單不可為空
func (p *MealPlan) Validate() error {
	if p.Empty() {
		return common.ErrEmptyPlan
	}
	return nil
}
