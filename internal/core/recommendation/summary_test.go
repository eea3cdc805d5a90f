package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSummary(t *testing.T) {
	tests := []struct {
		name    string
		profile UserProfile
		want    []string
	}{
		{
			name:    "empty profile",
			profile: UserProfile{},
			want:    []string{},
		},
		{
			name: "all rules",
			profile: UserProfile{
				Location:       "KERALA",
				FoodPreference: Vegetarian,
				Goal:           WeightLoss,
				Diseases:       []Condition{HeartDisease, Diabetes},
				DislikedFoods:  "Banana, okra ,banana",
			},
			want: []string{
				"Showing Kerala regional foods",
				"Health-aware filtering: excluding high-sugar foods, excluding high-fat foods",
				"Prioritizing low-calorie, high-fiber options",
				"Showing vegetarian options only",
				"Excluding: banana, okra",
			},
		},
		{
			name:    "weight gain in unsupported region",
			profile: UserProfile{Location: "atlantis", Goal: WeightGain, FoodPreference: Both},
			want:    []string{"Prioritizing calorie-dense, protein-rich options"},
		},
		{
			name:    "thyroid and pcos share a phrase",
			profile: UserProfile{Diseases: []Condition{ThyroidIssues, PCOS}},
			want:    []string{"Health-aware filtering: excluding processed foods"},
		},
		{
			name:    "liver disease",
			profile: UserProfile{Diseases: []Condition{LiverDisease, KidneyDisease}},
			want:    []string{"Health-aware filtering: limiting high-protein foods, excluding high-fat foods, excluding processed foods"},
		},
		{
			name:    "none sentinel",
			profile: UserProfile{Diseases: []Condition{ConditionNone}, Goal: Maintain},
			want:    []string{},
		},
		{
			name:    "unknown condition",
			profile: UserProfile{Diseases: []Condition{"Asthma"}, Goal: StayFit},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildSummary(tt.profile))
		})
	}
}

func TestNormalizeDislikedFoods(t *testing.T) {
	assert.Nil(t, NormalizeDislikedFoods(""))
	assert.Equal(t, []string{"banana", "bitter gourd"}, NormalizeDislikedFoods(" Banana,, BITTER gourd ,banana"))
}

func TestFilterByDislikedFoods_SymmetricMatch(t *testing.T) {
	items := []FoodItem{
		{ID: "a", Name: "Palak Paneer", Category: Dinner},
		{ID: "b", Name: "Dosa (1 medium)", Category: Breakfast},
		{ID: "c", Name: "Idli (2 pieces)", Category: Breakfast},
	}

	got := FilterByDislikedFoods(items, []string{"paneer", "masala dosa"})

	assert.Equal(t, []string{"c"}, ids(got))
	assert.Len(t, items, 3)
}

func TestFilterStagesReturnNewSlices(t *testing.T) {
	items := testCatalog()

	out := FilterByRegion(items, "atlantis")
	out[0].Name = "changed"

	assert.Equal(t, "Poha (1 bowl)", items[0].Name)
}

func TestRankByGoal_Stable(t *testing.T) {
	items := []FoodItem{
		{ID: "x", Calories: 200, Protein: 10, Category: Lunch},
		{ID: "y", Calories: 100, Protein: 5, Category: Lunch},
		{ID: "z", Calories: 400, Protein: 20, Category: Lunch},
	}

	got := RankByGoal(items, Maintain)

	assert.Equal(t, []string{"x", "y", "z"}, ids(got))
}
