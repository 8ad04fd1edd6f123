// Package classify_svc implements the prediction and comparison operations
// behind the HTTP API.
package classify_svc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/sentialab/go-sentiment-server/internal/classifier"
	"github.com/sentialab/go-sentiment-server/internal/model/evalset"
	"github.com/sentialab/go-sentiment-server/internal/monitor"
	"github.com/sentialab/go-sentiment-server/internal/sentiment"
)

var (
	ErrServiceBusy = errors.New("classify service is busy")
)

// labelError marks a comparison cell whose model could not answer. The table
// stays intact; only the affected cells degrade.
const labelError = "error"

// PredictResult is one prediction through the default model.
type PredictResult struct {
	Sentiment  string
	Confidence float64
	Model      string
}

// CompareRow is one text classified by every comparison model, labels in
// model order.
type CompareRow struct {
	Text   string
	Labels []string
}

// ClassifierProvider hands out a classifier per model id.
type ClassifierProvider interface {
	Get(model string) (classifier.Classifier, error)
}

type ClassifyService interface {
	// Predict classifies text with the default model and returns the
	// normalized sentiment.
	Predict(ctx context.Context, text string) (PredictResult, error)

	// Compare classifies every text with every comparison model. Empty
	// input falls back to the default example texts.
	Compare(ctx context.Context, texts []string) ([]CompareRow, error)

	// Models returns the comparison line-up in column order.
	Models() []evalset.ModelRef
}

type ClassifyServiceImpl struct {
	provider      ClassifierProvider
	logger        *slog.Logger
	loadMonitor   monitor.LoadMonitor
	predictModel  string
	compareModels []evalset.ModelRef
}

func NewClassifyService(
	provider ClassifierProvider,
	logger *slog.Logger,
	loadMonitor monitor.LoadMonitor,
	opts ...ClassifyOpt,
) *ClassifyServiceImpl {
	o := buildOpts(ClassifyOpts{
		PredictModel:  lo.ToPtr(evalset.DefaultPredictModel),
		CompareModels: lo.ToPtr(evalset.DefaultCompareModels()),
	}, opts...)

	return &ClassifyServiceImpl{
		provider:      provider,
		logger:        logger,
		loadMonitor:   loadMonitor,
		predictModel:  *o.PredictModel,
		compareModels: *o.CompareModels,
	}
}

func (s *ClassifyServiceImpl) Predict(ctx context.Context, text string) (PredictResult, error) {
	if !s.loadMonitor.TryAcquire() {
		return PredictResult{}, ErrServiceBusy
	}
	defer s.loadMonitor.Release()

	s.logger.DebugContext(ctx, "Acquired request slot", "model", s.predictModel)

	clf, err := s.provider.Get(s.predictModel)
	if err != nil {
		return PredictResult{}, fmt.Errorf("get classifier: %w", err)
	}

	pred, err := clf.Classify(ctx, text)
	if err != nil {
		return PredictResult{}, fmt.Errorf("classify: %w", err)
	}

	return PredictResult{
		Sentiment:  sentiment.Normalize(pred.Label),
		Confidence: pred.Score,
		Model:      s.predictModel,
	}, nil
}

// Compare fans out one goroutine per comparison model; each fills its column
// over all texts. A model that cannot answer degrades its own cells to the
// error marker instead of failing the table. Only context cancellation
// aborts the whole call.
func (s *ClassifyServiceImpl) Compare(ctx context.Context, texts []string) ([]CompareRow, error) {
	if !s.loadMonitor.TryAcquire() {
		return nil, ErrServiceBusy
	}
	defer s.loadMonitor.Release()

	cleaned := make([]string, 0, len(texts))
	for _, t := range texts {
		t = strings.TrimSpace(t)
		if t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) == 0 {
		cleaned = evalset.DefaultExampleTexts()
	}

	// columns[m][i] is model m's label for text i.
	columns := make([][]string, len(s.compareModels))

	g, gctx := errgroup.WithContext(ctx)
	for mi, model := range s.compareModels {
		mi, model := mi, model
		g.Go(func() error {
			column := make([]string, len(cleaned))
			columns[mi] = column

			clf, err := s.provider.Get(model.ID)
			if err != nil {
				s.logger.ErrorContext(gctx, "Comparison model unavailable", "model", model.ID, "error", err)
				for i := range column {
					column[i] = labelError
				}
				return nil
			}

			for i, text := range cleaned {
				if err := gctx.Err(); err != nil {
					return err
				}

				pred, err := clf.Classify(gctx, text)
				if err != nil {
					s.logger.ErrorContext(gctx, "Comparison call failed", "model", model.ID, "error", err)
					column[i] = labelError
					continue
				}
				column[i] = sentiment.Normalize(pred.Label)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := make([]CompareRow, len(cleaned))
	for i, text := range cleaned {
		row := CompareRow{Text: text, Labels: make([]string, len(s.compareModels))}
		for mi := range s.compareModels {
			row.Labels[mi] = columns[mi][i]
		}
		rows[i] = row
	}

	return rows, nil
}

func (s *ClassifyServiceImpl) Models() []evalset.ModelRef {
	return append([]evalset.ModelRef(nil), s.compareModels...)
}

var _ ClassifyService = (*ClassifyServiceImpl)(nil)
