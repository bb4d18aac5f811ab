package pms

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/supy-ops/pms-converter/internal/config"
	"github.com/supy-ops/pms-converter/internal/model"
)

// Pipeline runs the full standardization stage. It is a pure function of
// (raw records, configuration); the only shared state across workers is the
// immutable oracle.
type Pipeline struct {
	oracle Oracle
	cfg    *config.Config
}

// NewPipeline wires an oracle and configuration into a runnable pipeline.
func NewPipeline(oracle Oracle, cfg *config.Config) *Pipeline {
	return &Pipeline{oracle: oracle, cfg: cfg}
}

// Run standardizes the raw records and derives the review and duplicate
// sets. Batches lost to a worker crash are logged and omitted from the
// merge; everything else preserves original input order. The only error
// returned is context cancellation.
func (p *Pipeline) Run(ctx context.Context, raw []model.ItemRecord) (*model.PipelineResult, error) {
	result := &model.PipelineResult{}
	if len(raw) == 0 {
		return result, nil
	}

	prepared := Prepare(raw)
	batches := Partition(prepared, p.cfg.Batch.Size)

	zap.L().Info("standardizing records",
		zap.Int("records", len(prepared)),
		zap.Int("batches", len(batches)),
		zap.Int("workers", p.cfg.Batch.Workers),
	)

	outputs, ok := Dispatch(ctx, p.cfg.Batch.Workers, batches, p.oracle.StandardizeBatch)
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "pms: run cancelled")
	}

	for i, out := range outputs {
		if !ok[i] {
			zap.L().Error("batch lost, omitting its records from the merge",
				zap.Int("batch", i),
				zap.Int("records", len(batches[i])),
			)
			continue
		}
		result.Standardized = append(result.Standardized, out...)
	}

	if !result.Complete(len(prepared)) {
		zap.L().Warn("standardized set is incomplete",
			zap.Int("expected", len(prepared)),
			zap.Int("got", len(result.Standardized)),
		)
	}

	result.Review = ClassifyReview(result.Standardized, p.cfg.Review.ConfidenceThreshold)
	result.Duplicates = DetectDuplicates(result.Standardized,
		p.cfg.Duplicates.SimilarityThreshold, p.cfg.Duplicates.Ceiling)

	zap.L().Info("standardization complete",
		zap.Int("standardized", len(result.Standardized)),
		zap.Int("review_rows", len(result.Review)),
		zap.Int("duplicate_pairs", len(result.Duplicates.Pairs)),
		zap.Bool("duplicates_skipped", result.Duplicates.Skipped),
	)
	return result, nil
}
