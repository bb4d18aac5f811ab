package main

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/supy-ops/pms-converter/internal/extract"
	"github.com/supy-ops/pms-converter/internal/ingest"
	"github.com/supy-ops/pms-converter/internal/model"
	"github.com/supy-ops/pms-converter/internal/pms"
	"github.com/supy-ops/pms-converter/internal/report"
	"github.com/supy-ops/pms-converter/internal/tax"
	"github.com/supy-ops/pms-converter/pkg/claude"
)

var convertOutput string

var convertCmd = &cobra.Command{
	Use:   "convert [files or directories]",
	Short: "Run the full pipeline: extract invoices, standardize, export",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		country := tax.Lookup(cfg.Country)

		sources, err := ingest.Collect(args)
		if err != nil {
			return err
		}
		defer sources.Cleanup()

		client := claude.NewClient(cfg.Oracle.APIKey, cfg.Oracle.RatePerSec, cfg.Oracle.RateBurst)

		var raw []model.ItemRecord
		if len(sources.Invoices) > 0 {
			extractor := extract.NewExtractor(client, cfg.Oracle, country)
			docs := extractor.ExtractAll(ctx, sources.Invoices, cfg.Batch.Workers)
			raw = append(raw, extract.MergeItems(docs)...)
		}
		for _, path := range sources.Spreadsheets {
			records, err := ingest.ReadRecords(path)
			if err != nil {
				return err
			}
			raw = append(raw, records...)
		}
		if len(raw) == 0 {
			return eris.New("no line items found in input")
		}

		hintTranslation(raw)

		oracle := pms.NewOracle(client, cfg.Oracle, country, cfg.Translate)
		result, err := pms.NewPipeline(oracle, cfg).Run(ctx, raw)
		if err != nil {
			return err
		}

		out := convertOutput
		if out == "" {
			out = report.Filename(cfg.Country, time.Now())
		}
		return report.WriteWorkbook(out, raw, result, cfg)
	},
}

// hintTranslation samples item names and logs when the dominant language is
// not English but translation is off.
func hintTranslation(raw []model.ItemRecord) {
	if cfg.Translate {
		return
	}

	samples := make([]string, 0, 15)
	for _, rec := range raw {
		if rec.SupplierItemName != "" {
			samples = append(samples, rec.SupplierItemName)
		}
		if len(samples) == 15 {
			break
		}
	}

	if lang := pms.DominantLanguage(samples); lang != "English" {
		zap.L().Info("non-English input detected, consider --translate",
			zap.String("language", lang),
		)
	}
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output workbook path (default: timestamped name)")
	rootCmd.AddCommand(convertCmd)
}
