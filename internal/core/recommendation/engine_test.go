package recommendation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []FoodItem {
	return []FoodItem{
		{ID: "bf1", Name: "Poha (1 bowl)", Calories: 250, Protein: 6, Carbs: 45, Fat: 8, Category: Breakfast, Region: Maharashtra, SafetyFlags: SafetyFlags{IsVeg: true}},
		{ID: "bf2", Name: "Puttu with Kadala", Calories: 320, Protein: 11, Carbs: 55, Fat: 6, Category: Breakfast, Region: Kerala, SafetyFlags: SafetyFlags{IsVeg: true, IsHighFiber: true}},
		{ID: "bf3", Name: "Appam with Stew", Calories: 280, Protein: 6, Carbs: 45, Fat: 9, Category: Breakfast, Region: Kerala, SafetyFlags: SafetyFlags{IsVeg: true}},
		{ID: "bf4", Name: "Egg Roast with Appam", Calories: 420, Protein: 18, Carbs: 40, Fat: 20, Category: Breakfast, Region: Kerala, SafetyFlags: SafetyFlags{IsHighFat: true, IsHighProtein: true}},
		{ID: "bf5", Name: "Aloo Paratha", Calories: 450, Protein: 9, Carbs: 55, Fat: 20, Category: Breakfast, Region: Punjab, SafetyFlags: SafetyFlags{IsVeg: true, IsHighFat: true}},
		{ID: "bf6", Name: "Oats Daliya", Calories: 150, Protein: 5, Carbs: 28, Fat: 3, Category: Breakfast, SafetyFlags: SafetyFlags{IsVeg: true, IsHighFiber: true}},
		{ID: "l1", Name: "Kerala Fish Curry + Rice", Calories: 430, Protein: 28, Carbs: 45, Fat: 14, Category: Lunch, Region: Kerala, SafetyFlags: SafetyFlags{IsHighProtein: true}},
		{ID: "l2", Name: "Kerala Sadya", Calories: 650, Protein: 14, Carbs: 95, Fat: 22, Category: Lunch, Region: Kerala, SafetyFlags: SafetyFlags{IsVeg: true, IsHighFiber: true}},
		{ID: "l3", Name: "Avial + Matta Rice", Calories: 520, Protein: 10, Carbs: 80, Fat: 14, Category: Lunch, Region: Kerala, SafetyFlags: SafetyFlags{IsVeg: true}},
		{ID: "l4", Name: "Rajma Chawal", Calories: 380, Protein: 15, Carbs: 60, Fat: 8, Category: Lunch, Region: Punjab, SafetyFlags: SafetyFlags{IsVeg: true, IsHighFiber: true}},
		{ID: "s1", Name: "Banana Chips", Calories: 180, Protein: 1, Carbs: 20, Fat: 11, Category: Snacks, Region: Kerala, SafetyFlags: SafetyFlags{IsVeg: true, IsHighFat: true, IsProcessed: true}},
		{ID: "s2", Name: "Pazham Pori", Calories: 260, Protein: 3, Carbs: 38, Fat: 11, Category: Snacks, Region: Kerala, SafetyFlags: SafetyFlags{IsVeg: true, IsHighSugar: true}},
		{ID: "s3", Name: "Sprouts Salad", Calories: 120, Protein: 8, Carbs: 18, Fat: 2, Category: Snacks, SafetyFlags: SafetyFlags{IsVeg: true, IsHighFiber: true}},
		{ID: "s4", Name: "Gulab Jamun", Calories: 300, Protein: 4, Carbs: 45, Fat: 12, Category: Snacks, SafetyFlags: SafetyFlags{IsVeg: true, IsHighSugar: true, IsHighFat: true}},
		{ID: "s5", Name: "Masala Chai + Biscuits", Calories: 150, Protein: 3, Carbs: 25, Fat: 5, Category: Snacks, SafetyFlags: SafetyFlags{IsVeg: true, IsHighSugar: true, IsProcessed: true}},
		{ID: "d1", Name: "Kappa + Meen Curry", Calories: 390, Protein: 22, Carbs: 48, Fat: 12, Category: Dinner, Region: Kerala, SafetyFlags: SafetyFlags{IsHighSodium: true}},
		{ID: "d2", Name: "Idiyappam + Veg Kurma", Calories: 310, Protein: 7, Carbs: 52, Fat: 8, Category: Dinner, Region: Kerala, SafetyFlags: SafetyFlags{IsVeg: true}},
		{ID: "d3", Name: "Chicken Soup + Bread", Calories: 200, Protein: 15, Carbs: 20, Fat: 6, Category: Dinner, SafetyFlags: SafetyFlags{IsProcessed: true}},
		{ID: "d4", Name: "Palak Paneer + Chapati", Calories: 320, Protein: 15, Carbs: 25, Fat: 18, Category: Dinner, SafetyFlags: SafetyFlags{IsVeg: true, IsHighFat: true}},
		{ID: "d5", Name: "Moong Dal + Rice", Calories: 260, Protein: 12, Carbs: 42, Fat: 5, Category: Dinner, SafetyFlags: SafetyFlags{IsVeg: true, IsHighFiber: true}},
	}
}

func allItems(r Recommendations) []FoodItem {
	var out []FoodItem
	for _, c := range MealCategories {
		out = append(out, r[c]...)
	}
	return out
}

func ids(items []FoodItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestGetRecommendedFoods_PartitionInvariant(t *testing.T) {
	engine := NewEngine(testCatalog())

	result := engine.GetRecommendedFoods(UserProfile{})

	require.Len(t, result, 4)
	for _, c := range MealCategories {
		require.NotNil(t, result[c], "bucket %s must exist", c)
		for _, item := range result[c] {
			assert.Equal(t, c, item.Category, "item %s in wrong bucket", item.ID)
		}
	}
	assert.Equal(t, len(testCatalog()), result.Total())
}

func TestGetRecommendedFoods_RegionExclusivity(t *testing.T) {
	engine := NewEngine(testCatalog())

	for _, location := range []string{"kerala", "KERALA", "Punjab", "maharashtra", "karnataka"} {
		t.Run(location, func(t *testing.T) {
			region, ok := ParseRegion(location)
			require.True(t, ok)

			for _, item := range allItems(engine.GetRecommendedFoods(UserProfile{Location: location})) {
				assert.Equal(t, region, item.Region, "item %s", item.ID)
			}
		})
	}
}

func TestGetRecommendedFoods_UnsupportedLocation(t *testing.T) {
	engine := NewEngine(testCatalog())
	baseline := engine.GetRecommendedFoods(UserProfile{Goal: Maintain})

	for _, location := range []string{"", "atlantis", "tamil_nadu", "gujarat", " kerala ", "Punjab "} {
		t.Run("location="+location, func(t *testing.T) {
			got := engine.GetRecommendedFoods(UserProfile{Location: location, Goal: Maintain})
			assert.Equal(t, baseline, got)
		})
	}
}

func TestGetRecommendedFoods_HealthConditions(t *testing.T) {
	engine := NewEngine(testCatalog())

	tests := []struct {
		name     string
		diseases []Condition
		unsafe   func(FoodItem) bool
	}{
		{"Diabetes", []Condition{Diabetes}, func(i FoodItem) bool { return i.IsHighSugar }},
		{"HighBloodPressure", []Condition{HighBloodPressure}, func(i FoodItem) bool { return i.IsHighSodium }},
		{"HeartDisease", []Condition{HeartDisease}, func(i FoodItem) bool { return i.IsHighFat }},
		{"KidneyDisease", []Condition{KidneyDisease}, func(i FoodItem) bool { return i.IsHighProtein }},
		{"Thyroid", []Condition{ThyroidIssues}, func(i FoodItem) bool { return i.IsProcessed }},
		{"PCOS", []Condition{PCOS}, func(i FoodItem) bool { return i.IsProcessed }},
		{"LiverDisease", []Condition{LiverDisease}, func(i FoodItem) bool { return i.IsHighFat || i.IsProcessed }},
		{"DiabetesAndHeart", []Condition{Diabetes, HeartDisease}, func(i FoodItem) bool { return i.IsHighSugar || i.IsHighFat }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, goal := range []Goal{WeightLoss, WeightGain, Maintain, StayFit} {
				for _, location := range []string{"", "kerala", "punjab"} {
					profile := UserProfile{Location: location, Goal: goal, Diseases: tt.diseases}
					for _, item := range allItems(engine.GetRecommendedFoods(profile)) {
						assert.False(t, tt.unsafe(item), "item %s leaked for goal=%s location=%s", item.ID, goal, location)
					}
				}
			}
		})
	}
}

func TestGetRecommendedFoods_NoneAndUnknownConditionsPassThrough(t *testing.T) {
	engine := NewEngine(testCatalog())

	for _, diseases := range [][]Condition{nil, {}, {ConditionNone}, {"Asthma"}, {ConditionNone, "Asthma"}} {
		got := engine.GetRecommendedFoods(UserProfile{Diseases: diseases})
		assert.Equal(t, len(testCatalog()), got.Total())
	}
}

func TestGetRecommendedFoods_NoneWithRealConditionStillFilters(t *testing.T) {
	engine := NewEngine(testCatalog())

	got := engine.GetRecommendedFoods(UserProfile{Diseases: []Condition{ConditionNone, Diabetes}})

	for _, item := range allItems(got) {
		assert.False(t, item.IsHighSugar, item.ID)
	}
}

func TestGetRecommendedFoods_Vegetarian(t *testing.T) {
	engine := NewEngine(testCatalog())

	for _, goal := range []Goal{WeightLoss, WeightGain, Maintain, "unknown"} {
		got := engine.GetRecommendedFoods(UserProfile{FoodPreference: Vegetarian, Goal: goal})
		require.NotZero(t, got.Total())
		for _, item := range allItems(got) {
			assert.True(t, item.IsVeg, item.ID)
		}
	}

	for _, pref := range []FoodPreference{NonVegetarian, Both, "", "pescatarian"} {
		got := engine.GetRecommendedFoods(UserProfile{FoodPreference: pref})
		assert.Equal(t, len(testCatalog()), got.Total(), "preference %q", pref)
	}
}

func TestGetRecommendedFoods_DislikedIdempotent(t *testing.T) {
	engine := NewEngine(testCatalog())
	profile := UserProfile{DislikedFoods: "banana, paneer"}

	once := engine.GetRecommendedFoods(profile)
	twice := NewEngine(allItems(once)).GetRecommendedFoods(profile)

	assert.ElementsMatch(t, ids(allItems(once)), ids(allItems(twice)))

	doubled := engine.GetRecommendedFoods(UserProfile{DislikedFoods: "banana, paneer, banana,PANEER"})
	assert.Equal(t, once, doubled)
}

func TestGetRecommendedFoods_EmptyDislikes(t *testing.T) {
	engine := NewEngine(testCatalog())

	for _, raw := range []DislikedFoods{"", "  ", ",,", " , "} {
		got := engine.GetRecommendedFoods(UserProfile{DislikedFoods: raw})
		assert.Equal(t, len(testCatalog()), got.Total())
	}
}

func TestGetRecommendedFoods_WeightLossOrdering(t *testing.T) {
	engine := NewEngine(testCatalog())

	got := engine.GetRecommendedFoods(UserProfile{Goal: WeightLoss})

	for _, c := range MealCategories {
		bucket := got[c]
		for i, item := range bucket {
			assert.True(t, item.Calories <= 400 || item.IsHighFiber, "item %s should have been filtered", item.ID)
			if i == 0 {
				continue
			}
			prev := bucket[i-1]
			if prev.IsHighFiber == item.IsHighFiber {
				assert.LessOrEqual(t, prev.Calories, item.Calories, "%s before %s", prev.ID, item.ID)
			} else {
				assert.True(t, prev.IsHighFiber, "non fiber %s before fiber %s", prev.ID, item.ID)
			}
		}
	}

	assert.Equal(t, []string{"bf6", "bf2", "bf1", "bf3"}, ids(got[Breakfast]))
}

func TestGetRecommendedFoods_WeightGainOrdering(t *testing.T) {
	engine := NewEngine(testCatalog())

	got := engine.GetRecommendedFoods(UserProfile{Goal: WeightGain})

	assert.Equal(t, []string{"l1", "l2", "l3", "l4"}, ids(got[Lunch]))
	assert.Equal(t, []string{"bf4", "bf5", "bf2", "bf3", "bf1", "bf6"}, ids(got[Breakfast]))
}

func TestGetRecommendedFoods_ProteinDensityOrdering(t *testing.T) {
	engine := NewEngine(testCatalog())

	got := engine.GetRecommendedFoods(UserProfile{Goal: StayFit})

	bucket := got[Dinner]
	for i := 1; i < len(bucket); i++ {
		assert.GreaterOrEqual(t, proteinDensity(bucket[i-1]), proteinDensity(bucket[i]))
	}
	assert.Equal(t, "d3", bucket[0].ID)
}

func TestGetRecommendedFoods_KeralaScenario(t *testing.T) {
	engine := NewEngine(testCatalog())
	profile := UserProfile{
		Location:       "kerala",
		FoodPreference: Vegetarian,
		Goal:           WeightLoss,
		Diseases:       []Condition{ConditionNone},
		DislikedFoods:  "banana",
	}

	got := engine.GetRecommendedFoods(profile)

	for _, item := range allItems(got) {
		assert.Equal(t, Kerala, item.Region)
		assert.True(t, item.IsVeg)
		assert.NotContains(t, item.Name, "Banana")
		assert.True(t, item.Calories <= 400 || item.IsHighFiber)
	}
	assert.Equal(t, []string{"bf2", "bf3"}, ids(got[Breakfast]))
	assert.Equal(t, []string{"l2"}, ids(got[Lunch]))
	assert.Equal(t, []string{"s2"}, ids(got[Snacks]))
	assert.Equal(t, []string{"d2"}, ids(got[Dinner]))
}

func TestGetRecommendedFoods_DoesNotMutateCatalog(t *testing.T) {
	catalog := testCatalog()
	engine := NewEngine(catalog)
	catalog[0].Name = "changed"

	got := engine.GetRecommendedFoods(UserProfile{Goal: WeightGain})
	got[Breakfast][0].Calories = 1

	assert.Equal(t, testCatalog(), engine.Catalog())
}

func TestGetAvailableFoodsForMeal(t *testing.T) {
	engine := NewEngine(testCatalog())
	profile := UserProfile{Location: "kerala", Goal: Maintain}

	all := engine.GetRecommendedFoods(profile)
	for _, c := range MealCategories {
		assert.Equal(t, all[c], engine.GetAvailableFoodsForMeal(profile, c))
	}

	unknown := engine.GetAvailableFoodsForMeal(profile, "brunch")
	assert.NotNil(t, unknown)
	assert.Empty(t, unknown)
}

func TestUserProfile_UnmarshalTolerantDislikes(t *testing.T) {
	var p UserProfile
	err := json.Unmarshal([]byte(`{"location":"Kerala","goal":"weight_loss","diseases":["Diabetes"],"dislikedFoods":42}`), &p)

	require.NoError(t, err)
	assert.Equal(t, DislikedFoods(""), p.DislikedFoods)
	assert.Equal(t, WeightLoss, p.Goal)
	assert.Empty(t, NormalizeDislikedFoods(p.DislikedFoods))
}
