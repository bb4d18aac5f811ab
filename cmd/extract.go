package main

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/supy-ops/pms-converter/internal/extract"
	"github.com/supy-ops/pms-converter/internal/ingest"
	"github.com/supy-ops/pms-converter/internal/report"
	"github.com/supy-ops/pms-converter/internal/tax"
	"github.com/supy-ops/pms-converter/pkg/claude"
)

var extractOutput string

var extractCmd = &cobra.Command{
	Use:   "extract [files or directories]",
	Short: "Extract invoice line items to a raw spreadsheet, skipping standardization",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		country := tax.Lookup(cfg.Country)

		sources, err := ingest.Collect(args)
		if err != nil {
			return err
		}
		defer sources.Cleanup()

		if len(sources.Invoices) == 0 {
			return eris.New("no invoice documents found in input")
		}

		client := claude.NewClient(cfg.Oracle.APIKey, cfg.Oracle.RatePerSec, cfg.Oracle.RateBurst)
		extractor := extract.NewExtractor(client, cfg.Oracle, country)
		docs := extractor.ExtractAll(ctx, sources.Invoices, cfg.Batch.Workers)

		raw := extract.MergeItems(docs)
		if len(raw) == 0 {
			return eris.New("no line items extracted")
		}

		out := extractOutput
		if out == "" {
			out = fmt.Sprintf("Raw_Extraction_%d.xlsx", time.Now().Unix())
		}
		return report.WriteRaw(out, raw)
	},
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "output spreadsheet path (default: timestamped name)")
	rootCmd.AddCommand(extractCmd)
}
