package coach

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed tips.yaml
var tipsYAML []byte

// Tip is a short canned nutrition advice.
type Tip struct {
	Title       string `json:"title"       yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon"        yaml:"icon"`
}

var tips = mustLoadTips()

func mustLoadTips() []Tip {
	var out []Tip
	if err := yaml.Unmarshal(tipsYAML, &out); err != nil {
		panic(fmt.Sprintf("coach: embedded tips.yaml: %v", err))
	}
	if len(out) == 0 {
		panic("coach: embedded tips.yaml is empty")
	}
	return out
}

// TipOfTheDay rotates through the tips by day of year, so everyone sees the
// same tip on a given date.
func TipOfTheDay(t time.Time) Tip {
	return tips[t.YearDay()%len(tips)]
}

// Tips returns a copy of all canned tips.
func Tips() []Tip {
	return append([]Tip(nil), tips...)
}
