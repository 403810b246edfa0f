package coach

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// DefaultPortionGrams is the quantity used when an add action does not say
// how much was eaten.
const DefaultPortionGrams = 100.0

// DayLayout is the calendar-day key format used across the API.
const DayLayout = "2006-01-02"

// ConsumedFood is one "I ate this" entry in a day's log.
type ConsumedFood struct {
	ID           string    `json:"id"            yaml:"id"`
	IngredientID string    `json:"ingredient_id" yaml:"ingredient_id"`
	Quantity     float64   `json:"quantity_g"    yaml:"quantity_g"`
	Timestamp    time.Time `json:"timestamp"     yaml:"timestamp"`
}

// DailyNutrition is an immutable snapshot of one day's log. Totals are always
// ComputeTotals(Consumed, catalog); every transition below recomputes them
// rather than adjusting the previous value.
type DailyNutrition struct {
	Date     string         `json:"date"`
	Consumed []ConsumedFood `json:"consumed"`
	Totals   Macros         `json:"totals"`
}

// NewDailyNutrition returns an empty record for day.
func NewDailyNutrition(day string) DailyNutrition {
	return DailyNutrition{Date: day, Consumed: []ConsumedFood{}}
}

// Snapshot builds a record for day from an already-ordered entry list.
func Snapshot(day string, consumed []ConsumedFood, catalog Catalog) DailyNutrition {
	list := slices.Clone(consumed)
	if list == nil {
		list = []ConsumedFood{}
	}
	return DailyNutrition{Date: day, Consumed: list, Totals: ComputeTotals(list, catalog)}
}

// Current returns d when it belongs to today, otherwise a fresh empty record
// keyed by today.
func Current(d DailyNutrition, today string) DailyNutrition {
	if d.Date != today {
		return NewDailyNutrition(today)
	}
	return d
}

// Add appends food and returns the new snapshot. Missing fields are filled
// in: a fresh entry id, the default portion and the current time.
func (d DailyNutrition) Add(food ConsumedFood, catalog Catalog) (DailyNutrition, ConsumedFood) {
	if food.ID == "" {
		food.ID = uuid.NewString()
	}
	if food.Quantity <= 0 {
		food.Quantity = DefaultPortionGrams
	}
	if food.Timestamp.IsZero() {
		food.Timestamp = time.Now()
	}
	next := make([]ConsumedFood, 0, len(d.Consumed)+1)
	next = append(next, d.Consumed...)
	next = append(next, food)
	return DailyNutrition{Date: d.Date, Consumed: next, Totals: ComputeTotals(next, catalog)}, food
}

// Remove drops the most recent entry for ingredientID, i.e. one portion, and
// reports the removed entry, so Add followed by Remove of the same ingredient
// restores the previous totals. When nothing matches d is returned unchanged
// and ok is false.
func (d DailyNutrition) Remove(ingredientID string, catalog Catalog) (next DailyNutrition, removed ConsumedFood, ok bool) {
	idx := -1
	for i := len(d.Consumed) - 1; i >= 0; i-- {
		if d.Consumed[i].IngredientID == ingredientID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return d, ConsumedFood{}, false
	}
	return d.without(idx, catalog), d.Consumed[idx], true
}

// RemoveEntry drops the entry with the given entry id.
func (d DailyNutrition) RemoveEntry(entryID string, catalog Catalog) (next DailyNutrition, removed ConsumedFood, ok bool) {
	idx := slices.IndexFunc(d.Consumed, func(f ConsumedFood) bool { return f.ID == entryID })
	if idx < 0 {
		return d, ConsumedFood{}, false
	}
	return d.without(idx, catalog), d.Consumed[idx], true
}

func (d DailyNutrition) without(idx int, catalog Catalog) DailyNutrition {
	next := make([]ConsumedFood, 0, len(d.Consumed)-1)
	next = append(next, d.Consumed[:idx]...)
	next = append(next, d.Consumed[idx+1:]...)
	return DailyNutrition{Date: d.Date, Consumed: next, Totals: ComputeTotals(next, catalog)}
}
