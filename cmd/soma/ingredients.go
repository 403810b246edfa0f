package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/NoaRodriguez/PFE-sub000/coach"
	"github.com/spf13/cobra"
)

var ingredientsCategory string

var ingredientsCmd = &cobra.Command{
	Use:   "ingredients",
	Short: "List the ingredient catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPROTEIN\tCARBS\tFAT")
		for _, ing := range catalog.ByCategory(ingredientsCategory) {
			fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\t%g\n", ing.ID, ing.Name, ing.Category, ing.Proteins, ing.Carbs, ing.Fats)
		}
		return w.Flush()
	},
}

var tipDate string

var tipCmd = &cobra.Command{
	Use:   "tip",
	Short: "Print the nutrition tip of the day",
	RunE: func(cmd *cobra.Command, args []string) error {
		day := time.Now()
		if tipDate != "" {
			t, err := time.Parse(coach.DayLayout, tipDate)
			if err != nil {
				return fmt.Errorf("invalid --date, expected YYYY-MM-DD")
			}
			day = t
		}
		tip := coach.TipOfTheDay(day)
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n%s\n", tip.Icon, tip.Title, tip.Description)
		return nil
	},
}

func init() {
	ingredientsCmd.Flags().StringVar(&ingredientsCategory, "category", "", "Only list one category")
	tipCmd.Flags().StringVar(&tipDate, "date", "", "Day to pick the tip for (YYYY-MM-DD)")
	rootCmd.AddCommand(ingredientsCmd, tipCmd)
}
