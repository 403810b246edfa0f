package main

import (
	"fmt"
	"os"
	"time"

	"github.com/NoaRodriguez/PFE-sub000/coach"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// foodLog is the on-disk shape read by `soma totals`. JSON is valid YAML,
// so both formats work.
type foodLog struct {
	Date     string               `yaml:"date"`
	Consumed []coach.ConsumedFood `yaml:"consumed"`
}

var totalsToday bool

func readFoodLog(path string) (foodLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return foodLog{}, err
	}
	var l foodLog
	if err := yaml.Unmarshal(data, &l); err != nil {
		return foodLog{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return l, nil
}

var totalsCmd = &cobra.Command{
	Use:   "totals <log-file>",
	Short: "Sum the macros of a consumed-food log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		l, err := readFoodLog(args[0])
		if err != nil {
			return err
		}

		d := coach.Snapshot(l.Date, l.Consumed, catalog)
		if totalsToday {
			d = coach.Current(d, time.Now().Format(coach.DayLayout))
		}

		out := cmd.OutOrStdout()
		unknown := 0
		for _, f := range d.Consumed {
			if _, ok := catalog.Lookup(f.IngredientID); !ok {
				unknown++
			}
		}
		fmt.Fprintf(out, "date:    %s\nentries: %d\n", d.Date, len(d.Consumed))
		if unknown > 0 {
			fmt.Fprintf(out, "unknown: %d (counted as zero)\n", unknown)
		}
		fmt.Fprintf(out, "protein: %.1fg\ncarbs:   %.1fg\nfat:     %.1fg\n", d.Totals.Protein, d.Totals.Carbs, d.Totals.Fat)
		return nil
	},
}

func init() {
	totalsCmd.Flags().BoolVar(&totalsToday, "today", false, "Treat a log from another day as empty")
	rootCmd.AddCommand(totalsCmd)
}
