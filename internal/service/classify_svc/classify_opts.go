package classify_svc

import "github.com/sentialab/go-sentiment-server/internal/model/evalset"

type ClassifyOpts struct {
	PredictModel  *string
	CompareModels *[]evalset.ModelRef
}

type ClassifyOpt func(opts *ClassifyOpts)

func WithPredictModel(model string) ClassifyOpt {
	return func(opts *ClassifyOpts) { opts.PredictModel = &model }
}

func WithCompareModels(models []evalset.ModelRef) ClassifyOpt {
	return func(opts *ClassifyOpts) { opts.CompareModels = &models }
}

func buildOpts(defaultOpts ClassifyOpts, opts ...ClassifyOpt) ClassifyOpts {
	o := defaultOpts
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
