package pms

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/supy-ops/pms-converter/internal/config"
	"github.com/supy-ops/pms-converter/internal/model"
	"github.com/supy-ops/pms-converter/internal/resilience"
	"github.com/supy-ops/pms-converter/internal/tax"
	"github.com/supy-ops/pms-converter/pkg/claude"
)

// Oracle standardizes one batch of raw records. StandardizeBatch never
// returns an error: every failure mode degrades to fallback records inside
// the result, and the result always has exactly one record per input record.
type Oracle interface {
	StandardizeBatch(ctx context.Context, batch []model.ItemRecord) []model.ItemRecord
}

type claudeOracle struct {
	client  claude.Client
	cfg     config.OracleConfig
	prompt  string
	breaker *resilience.CircuitBreaker
}

// NewOracle builds the production oracle. The system prompt is rendered once
// from the country tax context and reused for every batch.
func NewOracle(client claude.Client, cfg config.OracleConfig, country tax.Country, translate bool) Oracle {
	return &claudeOracle{
		client:  client,
		cfg:     cfg,
		prompt:  StandardizationPrompt(country, translate),
		breaker: resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{}),
	}
}

func (o *claudeOracle) StandardizeBatch(ctx context.Context, batch []model.ItemRecord) []model.ItemRecord {
	if len(batch) == 0 {
		return nil
	}

	results, err := o.call(ctx, batch)
	if err != nil {
		zap.L().Error("batch standardization failed, emitting fallback records",
			zap.Int("batch_size", len(batch)),
			zap.Error(err),
		)
		return Fallback(batch)
	}
	return Reconcile(batch, results)
}

// call sends the batch to the model and parses the response, retrying with
// linear backoff. Any failure is retried: a garbled response is as likely to
// recover on a second attempt as a transport error.
func (o *claudeOracle) call(ctx context.Context, batch []model.ItemRecord) ([]model.ItemRecord, error) {
	payload, err := json.Marshal(map[string]any{"items": batch})
	if err != nil {
		return nil, eris.Wrap(err, "pms: marshal batch")
	}

	temperature := 0.1
	req := claude.MessageRequest{
		Model:       o.cfg.Model,
		MaxTokens:   o.cfg.MaxTokens,
		System:      o.prompt,
		Messages:    []claude.Message{claude.UserText(string(payload))},
		Temperature: &temperature,
	}

	retryCfg := resilience.RetryConfig{
		MaxAttempts:    o.cfg.RetryAttempts,
		InitialBackoff: o.cfg.RetryDelay,
		Strategy:       resilience.BackoffLinear,
		ShouldRetry:    func(error) bool { return true },
		OnRetry:        resilience.RetryLogger("oracle", "standardize_batch"),
	}

	return resilience.DoVal(ctx, retryCfg, func(ctx context.Context) ([]model.ItemRecord, error) {
		return resilience.ExecuteVal(ctx, o.breaker, func(ctx context.Context) ([]model.ItemRecord, error) {
			callCtx, cancel := context.WithTimeout(ctx, o.cfg.Timeout())
			defer cancel()

			resp, err := o.client.CreateMessage(callCtx, req)
			if err != nil {
				return nil, eris.Wrap(err, "pms: standardize batch")
			}
			return ParseRecords(claude.Text(resp))
		})
	})
}

// ParseRecords parses a model response as a JSON array of records, stripping
// any markdown fencing first.
func ParseRecords(text string) ([]model.ItemRecord, error) {
	var records []model.ItemRecord
	if err := json.Unmarshal([]byte(cleanResponse(text)), &records); err != nil {
		return nil, eris.Wrap(err, "pms: parse oracle response")
	}
	return records, nil
}

// cleanResponse strips markdown fences and extracts the JSON array.
func cleanResponse(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}
