package recommendation

import (
	"strings"
)

// RuleKind 規則類別
type RuleKind string

const (
	RuleRegion     RuleKind = "region"
	RuleHealth     RuleKind = "health"
	RuleGoal       RuleKind = "goal"
	RulePreference RuleKind = "preference"
	RuleDisliked   RuleKind = "disliked"
)

// FiredRule 一條生效的規則
type FiredRule struct {
	Kind        RuleKind `json:"kind"`
	Description string   `json:"description"`
}

// FiredRules 依推薦流程順序列出生效的規則
func FiredRules(profile UserProfile) []FiredRule {
	var rules []FiredRule

	if region, ok := regionApplies(profile.Location); ok {
		rules = append(rules, FiredRule{RuleRegion, "Showing " + capitalize(string(region)) + " regional foods"})
	}

	if phrases := healthPhrases(profile.Diseases); len(phrases) > 0 {
		rules = append(rules, FiredRule{RuleHealth, "Health-aware filtering: " + strings.Join(phrases, ", ")})
	}

	switch profile.Goal {
	case WeightLoss:
		rules = append(rules, FiredRule{RuleGoal, "Prioritizing low-calorie, high-fiber options"})
	case WeightGain:
		rules = append(rules, FiredRule{RuleGoal, "Prioritizing calorie-dense, protein-rich options"})
	}

	if preferenceApplies(profile.FoodPreference) {
		rules = append(rules, FiredRule{RulePreference, "Showing vegetarian options only"})
	}

	if tokens := NormalizeDislikedFoods(profile.DislikedFoods); len(tokens) > 0 {
		rules = append(rules, FiredRule{RuleDisliked, "Excluding: " + strings.Join(tokens, ", ")})
	}

	return rules
}

// BuildSummary 依序列出實際生效的規則說明
func BuildSummary(profile UserProfile) []string {
	rules := FiredRules(profile)
	summary := make([]string, 0, len(rules))
	for _, r := range rules {
		summary = append(summary, r.Description)
	}
	return summary
}

// healthPhrases 依固定的狀況順序收集摘要用語並去重
func healthPhrases(diseases []Condition) []string {
	declared := make(map[Condition]bool)
	for _, c := range activeConditions(diseases) {
		declared[c] = true
	}
	var phrases []string
	seen := make(map[string]bool)
	for _, c := range Conditions {
		if !declared[c] {
			continue
		}
		for _, p := range conditionRules[c].phrases {
			if seen[p] {
				continue
			}
			seen[p] = true
			phrases = append(phrases, p)
		}
	}
	return phrases
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
