package main

import (
	"fmt"
	"strconv"

	"github.com/NoaRodriguez/PFE-sub000/coach"
	"github.com/spf13/cobra"
)

var adviceExplain bool

var adviceCmd = &cobra.Command{
	Use:   "advice <sport> <session-type> <minutes>",
	Short: "Print before/during/after advice for a session",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		sport, st := coach.SportType(args[0]), coach.SessionType(args[1])
		minutes, err := strconv.Atoi(args[2])
		if err != nil || minutes < 0 {
			return fmt.Errorf("minutes must be a non-negative integer, got %q", args[2])
		}

		out := cmd.OutOrStdout()
		if adviceExplain {
			fmt.Fprintf(out, "rule: %s\n", coach.MatchAdviceRule(sport, st, minutes))
		}
		a := coach.GenerateAdvice(sport, st, minutes)
		fmt.Fprintf(out, "Avant:   %s\nPendant: %s\nAprès:   %s\n", a.Before, a.During, a.After)
		return nil
	},
}

var goalsCmd = &cobra.Command{
	Use:   "goals <weight-kg>",
	Short: "Print daily macro goals for a body weight",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := strconv.ParseFloat(args[0], 64)
		if err != nil || w <= 0 {
			return fmt.Errorf("weight must be a positive number, got %q", args[0])
		}
		g := coach.GoalsFromWeight(w)
		fmt.Fprintf(cmd.OutOrStdout(), "protein: %dg\ncarbs:   %dg\nfat:     %dg\n", g.Protein, g.Carbs, g.Fat)
		return nil
	},
}

func init() {
	adviceCmd.Flags().BoolVar(&adviceExplain, "explain", false, "Also print which rule matched")
	rootCmd.AddCommand(adviceCmd, goalsCmd)
}
