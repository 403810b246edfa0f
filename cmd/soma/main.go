// Command soma exposes the nutrition core (advice rules, macro totals,
// ingredient catalog, tips) without the API server.
package main

import (
	"fmt"
	"os"

	"github.com/NoaRodriguez/PFE-sub000/coach"
	"github.com/spf13/cobra"
)

var catalogPath string

var rootCmd = &cobra.Command{
	Use:           "soma",
	Short:         "soma answers nutrition questions from the terminal",
	Long:          "soma runs the session advice rules and macro totals used by the SOMA API, offline.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// loadCatalog returns the --catalog file when given, else the built-in table.
func loadCatalog() (coach.Catalog, error) {
	if catalogPath == "" {
		return coach.DefaultCatalog(), nil
	}
	f, err := os.Open(catalogPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return coach.LoadCatalog(f)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Path to an ingredients YAML file (default: built-in)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
