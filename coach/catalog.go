// Package coach holds the pure nutrition and training logic: the ingredient
// catalog, macro aggregation over a day's consumed foods, the session advice
// rule table, and the small date/profile helpers the advice endpoints share.
// Nothing in here does I/O beyond decoding the embedded data files.
package coach

import (
	_ "embed"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed ingredients.yaml
var ingredientsYAML []byte

// Ingredient is a reference food. Macro fields are grams per 100 g.
type Ingredient struct {
	ID       string   `json:"id"                 yaml:"id"`
	Name     string   `json:"name"               yaml:"name"`
	Category string   `json:"category"           yaml:"category"`
	Calories *float64 `json:"calories,omitempty" yaml:"calories"`
	Proteins float64  `json:"proteins"           yaml:"proteins"`
	Carbs    float64  `json:"carbs"              yaml:"carbs"`
	Fats     float64  `json:"fats"               yaml:"fats"`
	Type     string   `json:"type,omitempty"     yaml:"type"`
}

// Catalog is a read-only ingredient table. Ids are expected to be unique;
// when they are not, the first entry wins.
type Catalog []Ingredient

// Lookup returns the first ingredient with the given id.
func (c Catalog) Lookup(id string) (Ingredient, bool) {
	for _, ing := range c {
		if ing.ID == id {
			return ing, true
		}
	}
	return Ingredient{}, false
}

// ByCategory returns the ingredients of one category in catalog order.
// An empty category returns the whole catalog.
func (c Catalog) ByCategory(category string) Catalog {
	if category == "" {
		return c
	}
	out := Catalog{}
	for _, ing := range c {
		if ing.Category == category {
			out = append(out, ing)
		}
	}
	return out
}

// Categories returns the distinct categories, sorted.
func (c Catalog) Categories() []string {
	seen := make(map[string]bool, len(c))
	out := []string{}
	for _, ing := range c {
		if !seen[ing.Category] {
			seen[ing.Category] = true
			out = append(out, ing.Category)
		}
	}
	sort.Strings(out)
	return out
}

// LoadCatalog decodes a YAML list of ingredients. Entries without an id are
// rejected since they could never be looked up.
func LoadCatalog(r io.Reader) (Catalog, error) {
	var items []Ingredient
	if err := yaml.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for i, ing := range items {
		if ing.ID == "" {
			return nil, fmt.Errorf("catalog entry %d (%q) has no id", i, ing.Name)
		}
	}
	return Catalog(items), nil
}

// DefaultCatalog returns the built-in ingredient table.
func DefaultCatalog() Catalog {
	var items []Ingredient
	if err := yaml.Unmarshal(ingredientsYAML, &items); err != nil {
		panic(fmt.Sprintf("coach: embedded ingredients.yaml: %v", err))
	}
	return Catalog(items)
}
