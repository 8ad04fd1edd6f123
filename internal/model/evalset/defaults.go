package evalset

import (
	"github.com/samber/lo"

	"github.com/sentialab/go-sentiment-server/internal/sentiment"
)

// DefaultPredictModel is the checkpoint the predict endpoint serves when the
// configuration names none.
const DefaultPredictModel = "distilbert-base-uncased-finetuned-sst-2-english"

// DefaultBenchModels returns the benchmark line-up: three small SST-2
// checkpoints that run acceptably on CPU.
func DefaultBenchModels() []ModelRef {
	return []ModelRef{
		{ID: "distilbert-base-uncased-finetuned-sst-2-english", Name: "DistilBERT SST-2 (HF)"},
		{ID: "textattack/distilbert-base-uncased-SST-2", Name: "TextAttack DistilBERT SST-2"},
		{ID: "textattack/albert-base-v2-SST-2", Name: "TextAttack ALBERT v2 SST-2"},
	}
}

// DefaultCompareModels returns the side-by-side line-up. It swaps ALBERT for
// a RoBERTa checkpoint and uses display names short enough for table headers.
func DefaultCompareModels() []ModelRef {
	return []ModelRef{
		{ID: "distilbert-base-uncased-finetuned-sst-2-english", Name: "DistilBERT (HF)"},
		{ID: "textattack/distilbert-base-uncased-SST-2", Name: "TA DistilBERT"},
		{ID: "textattack/roberta-base-SST-2", Name: "TA RoBERTa"},
	}
}

// DefaultSamples returns the fixed gold set used for accuracy scoring. The
// lukewarm "okay, nothing special" row is labeled negative on purpose:
// binary SST-2 models lean negative on mild phrasing.
func DefaultSamples() []Sample {
	return []Sample{
		{Text: "I absolutely love this!", Expected: sentiment.Positive},
		{Text: "This is the best thing ever.", Expected: sentiment.Positive},
		{Text: "Not bad at all, pretty good.", Expected: sentiment.Positive},
		{Text: "I hated the experience.", Expected: sentiment.Negative},
		{Text: "This is terrible and disappointing.", Expected: sentiment.Negative},
		{Text: "I wouldn't recommend it.", Expected: sentiment.Negative},
		{Text: "It's okay, nothing special.", Expected: sentiment.Negative},
		{Text: "I am pleasantly surprised.", Expected: sentiment.Positive},
	}
}

// DefaultExampleTexts returns the gold texts without their labels, used as
// the comparison fallback rows.
func DefaultExampleTexts() []string {
	return lo.Map(DefaultSamples(), func(s Sample, _ int) string { return s.Text })
}
