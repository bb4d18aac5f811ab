package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/supy-ops/pms-converter/internal/config"
	"github.com/supy-ops/pms-converter/internal/tax"
)

var cfg *config.Config

var (
	flagCountry   string
	flagTranslate bool
)

var rootCmd = &cobra.Command{
	Use:   "pmsconv",
	Short: "Supplier invoice standardization pipeline",
	Long:  "Extracts line items from invoice documents via vision models, standardizes them into the PMS catalog format, and exports a multi-sheet review workbook.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if cmd.Flags().Changed("country") {
			cfg.Country = flagCountry
		}
		if cmd.Flags().Changed("translate") {
			cfg.Translate = flagTranslate
		}

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		warnUnknownCountry(cfg.Country)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// warnUnknownCountry flags country codes outside the tax reference table,
// which silently fall back to the AE context.
func warnUnknownCountry(code string) {
	if tax.Known(code) {
		return
	}
	zap.L().Warn("unknown country code, using default tax context",
		zap.String("country", code),
		zap.String("fallback", tax.DefaultCode),
	)
}

func main() {
	rootCmd.PersistentFlags().StringVar(&flagCountry, "country", "AE", "ISO country code for tax context")
	rootCmd.PersistentFlags().BoolVar(&flagTranslate, "translate", false, "translate foreign text to English during standardization")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
