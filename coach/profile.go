package coach

import (
	"math"
	"strings"
)

// Profile tags select which part of the nutrition guide applies to a user.
const (
	ProfileHighLevel = "haut_niveau"
	ProfileReturning = "REM"
	ProfileModerate  = "modere"
)

// GoalsFromWeight derives daily macro targets from body weight in kg:
// 0.8 g/kg protein, 4 g/kg carbohydrate, 1.2 g/kg fat, rounded.
func GoalsFromWeight(weightKg float64) NutritionGoals {
	if weightKg <= 0 || math.IsNaN(weightKg) {
		return NutritionGoals{}
	}
	return NutritionGoals{
		Protein: int(math.Round(weightKg * 0.8)),
		Carbs:   int(math.Round(weightKg * 4)),
		Fat:     int(math.Round(weightKg * 1.2)),
	}
}

// ProfileTag classifies a free-text training frequency. High-level markers
// are checked before the returning-athlete ones.
func ProfileTag(trainingFrequency string) string {
	f := strings.ToLower(trainingFrequency)
	switch {
	case strings.Contains(f, "10h"), strings.Contains(f, "haut niveau"):
		return ProfileHighLevel
	case strings.Contains(f, "sédentaire"), strings.Contains(f, "reprise"), strings.Contains(f, "rem"):
		return ProfileReturning
	default:
		return ProfileModerate
	}
}

// IntenseThreshold is the lowest intensity (0-3 scale) counted as intense.
const IntenseThreshold = 2

// CountIntense returns how many of the given intensities are >= IntenseThreshold.
func CountIntense(intensities []int) int {
	n := 0
	for _, i := range intensities {
		if i >= IntenseThreshold {
			n++
		}
	}
	return n
}
