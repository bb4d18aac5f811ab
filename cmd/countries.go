package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/supy-ops/pms-converter/internal/tax"
)

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List supported country tax contexts",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tNAME\tRATE\tFOOD EXEMPT\tCURRENCY")
		for _, code := range tax.Codes() {
			c := tax.Lookup(code)
			fmt.Fprintf(w, "%s\t%s\t%.1f%%\t%t\t%s\n", c.Code, c.Name, c.Rate, c.FoodExempt, c.Currency)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(countriesCmd)
}
