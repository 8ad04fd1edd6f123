// Package benchmark runs the latency/accuracy evaluation of the configured
// sentiment models over the gold sample set.
package benchmark

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"github.com/sentialab/go-sentiment-server/internal/classifier"
	"github.com/sentialab/go-sentiment-server/internal/model/evalset"
	"github.com/sentialab/go-sentiment-server/internal/sentiment"
	"github.com/sentialab/go-sentiment-server/internal/stats"
	"github.com/sentialab/go-sentiment-server/pkg/benchreport"
)

const (
	DefaultRunsPerSample = 3
	DefaultWarmupText    = "warmup"
)

// ClassifierProvider hands out a classifier for a model id.
type ClassifierProvider interface {
	Get(model string) (classifier.Classifier, error)
}

// Runner evaluates models strictly one at a time, sample by sample, call by
// call. Latencies and predictions are local to each model's evaluation; a
// model that fails is recorded as a failure and skipped, never retried.
type Runner struct {
	provider      ClassifierProvider
	logger        *slog.Logger
	runsPerSample int
	warmupText    string
}

func NewRunner(provider ClassifierProvider, logger *slog.Logger, opts ...RunnerOpt) *Runner {
	o := buildOpts(RunnerOpts{
		RunsPerSample: lo.ToPtr(DefaultRunsPerSample),
		WarmupText:    lo.ToPtr(DefaultWarmupText),
	}, opts...)

	runs := *o.RunsPerSample
	if runs < 1 {
		runs = DefaultRunsPerSample
	}

	return &Runner{
		provider:      provider,
		logger:        logger,
		runsPerSample: runs,
		warmupText:    *o.WarmupText,
	}
}

// Run evaluates every model and assembles the report. Per-model failures are
// folded into the report; Run itself never fails.
func (r *Runner) Run(ctx context.Context, models []evalset.ModelRef, samples []evalset.Sample) *benchreport.Report {
	rep := &benchreport.Report{
		TimestampRFC3339: time.Now().Format(time.RFC3339),
		Env:              benchreport.CollectEnv(),
		SampleCount:      len(samples),
		RunsPerSample:    r.runsPerSample,
	}

	for _, model := range models {
		r.logger.InfoContext(ctx, "Evaluating model", "model", model.ID)

		res, err := r.evaluate(ctx, model, samples)
		if err != nil {
			r.logger.ErrorContext(ctx, "Model evaluation failed", "model", model.ID, "error", err)
			rep.Failures = append(rep.Failures, benchreport.ModelFailure{
				Model: model.ID,
				Name:  model.Name,
				Err:   err.Error(),
			})
			continue
		}

		rep.Results = append(rep.Results, res)
	}

	return rep
}

func (r *Runner) evaluate(ctx context.Context, model evalset.ModelRef, samples []evalset.Sample) (benchreport.ModelResult, error) {
	clf, err := r.provider.Get(model.ID)
	if err != nil {
		return benchreport.ModelResult{}, fmt.Errorf("get classifier: %w", err)
	}

	r.prime(ctx, clf, model.ID)

	latencies := make([]float64, 0, len(samples)*r.runsPerSample)
	preds := make([]benchreport.PredictionDetail, 0, len(samples))
	correct := 0

	for _, sample := range samples {
		var last classifier.Prediction
		for run := 0; run < r.runsPerSample; run++ {
			start := time.Now()
			pred, err := clf.Classify(ctx, sample.Text)
			if err != nil {
				return benchreport.ModelResult{}, fmt.Errorf("classify %q (run %d): %w", sample.Text, run+1, err)
			}
			latencies = append(latencies, time.Since(start).Seconds()*1000.0)
			last = pred
		}

		// Only the last repeat is scored; the earlier ones exist for
		// latency stability.
		predicted := sentiment.Normalize(last.Label)
		if predicted == sample.Expected {
			correct++
		}
		preds = append(preds, benchreport.PredictionDetail{
			Text:       sample.Text,
			Expected:   sample.Expected,
			Predicted:  predicted,
			Confidence: last.Score,
		})
	}

	accuracy := 0.0
	if len(samples) > 0 {
		accuracy = float64(correct) / float64(len(samples))
	}

	lat := stats.Summarize(latencies)

	return benchreport.ModelResult{
		Model: model.ID,
		Name:  model.Name,
		Latency: benchreport.LatencySummary{
			AvgMS:    lat.Mean,
			MedianMS: lat.Median,
			P95MS:    lat.P95,
			MinMS:    lat.Min,
			MaxMS:    lat.Max,
		},
		Accuracy:      accuracy,
		Correct:       correct,
		Samples:       len(samples),
		RunsPerSample: r.runsPerSample,
		Calls:         len(samples) * r.runsPerSample,
		Predictions:   preds,
	}, nil
}

// prime issues one untimed call so model loading and connection setup stay
// out of the measured latencies. Its outcome is discarded by contract.
func (r *Runner) prime(ctx context.Context, clf classifier.Classifier, model string) {
	if _, err := clf.Classify(ctx, r.warmupText); err != nil {
		r.logger.DebugContext(ctx, "Warm-up call failed", "model", model, "error", err)
	}
}
