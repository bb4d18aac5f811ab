package pms

import (
	"math"
	"strings"

	"github.com/agext/levenshtein"
	"go.uber.org/zap"

	"github.com/supy-ops/pms-converter/internal/model"
)

// Duplicate detection defaults: emit a pair only above the similarity
// threshold, and skip the quadratic scan entirely past the row ceiling.
const (
	DefaultSimilarityThreshold = 90
	DefaultDuplicateCeiling    = 3000
)

// DetectDuplicates scans the standardized set pairwise for near-duplicate
// base item names. Names are compared lower-cased; reported rows carry the
// export row offset. Above the ceiling the quadratic scan is skipped and the
// report says so.
func DetectDuplicates(records []model.ItemRecord, threshold, ceiling int) model.DuplicateReport {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	if ceiling <= 0 {
		ceiling = DefaultDuplicateCeiling
	}

	if len(records) > ceiling {
		zap.L().Warn("skipping duplicate detection, row count exceeds ceiling",
			zap.Int("rows", len(records)),
			zap.Int("ceiling", ceiling),
		)
		return model.DuplicateReport{Skipped: true}
	}

	names := make([]string, len(records))
	folded := make([]string, len(records))
	for i, rec := range records {
		names[i] = rec.BaseItemName
		folded[i] = strings.ToLower(rec.BaseItemName)
	}

	var pairs []model.DuplicatePair
	for i := 0; i < len(records); i++ {
		if folded[i] == "" {
			continue
		}
		for j := i + 1; j < len(records); j++ {
			if folded[j] == "" {
				continue
			}
			score := similarity(folded[i], folded[j])
			if score > threshold {
				pairs = append(pairs, model.DuplicatePair{
					RowA:  records[i].Index + model.RowOffset,
					ItemA: names[i],
					RowB:  records[j].Index + model.RowOffset,
					ItemB: names[j],
					Score: score,
				})
			}
		}
	}
	return model.DuplicateReport{Pairs: pairs}
}

// similarity is the 0-100 edit-distance ratio between two strings. It is
// symmetric and deterministic.
func similarity(a, b string) int {
	return int(math.Round(levenshtein.Similarity(a, b, nil) * 100))
}
