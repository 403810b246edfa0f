package coach

// Macros holds protein, carbohydrate and fat amounts in grams.
type Macros struct {
	Protein float64 `json:"protein_g" yaml:"protein_g"`
	Carbs   float64 `json:"carbs_g"   yaml:"carbs_g"`
	Fat     float64 `json:"fat_g"     yaml:"fat_g"`
}

// NutritionGoals are the daily macro targets in whole grams.
type NutritionGoals struct {
	Protein int `json:"protein_g"`
	Carbs   int `json:"carbs_g"`
	Fat     int `json:"fat_g"`
}

// ComputeTotals sums the macro contribution of every consumed entry:
// ingredient macro * quantity / 100. Entries whose ingredient is missing from
// the catalog contribute nothing. Repeated entries accumulate independently.
func ComputeTotals(consumed []ConsumedFood, catalog Catalog) Macros {
	var total Macros
	for _, food := range consumed {
		ing, ok := catalog.Lookup(food.IngredientID)
		if !ok {
			continue
		}
		total.Protein += ing.Proteins * food.Quantity / 100
		total.Carbs += ing.Carbs * food.Quantity / 100
		total.Fat += ing.Fats * food.Quantity / 100
	}
	return total
}

// Remaining returns how many grams of each macro are left to reach the goals.
// Macros already over goal report 0.
func Remaining(goals NutritionGoals, totals Macros) Macros {
	return Macros{
		Protein: max(float64(goals.Protein)-totals.Protein, 0),
		Carbs:   max(float64(goals.Carbs)-totals.Carbs, 0),
		Fat:     max(float64(goals.Fat)-totals.Fat, 0),
	}
}

// Percent returns progress toward each goal as a percentage. It is not capped
// at 100; a zero goal reports 0.
func Percent(goals NutritionGoals, totals Macros) Macros {
	pct := func(got float64, goal int) float64 {
		if goal <= 0 {
			return 0
		}
		return got / float64(goal) * 100
	}
	return Macros{
		Protein: pct(totals.Protein, goals.Protein),
		Carbs:   pct(totals.Carbs, goals.Carbs),
		Fat:     pct(totals.Fat, goals.Fat),
	}
}
