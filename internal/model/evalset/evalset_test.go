package evalset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelRefDisplayName(t *testing.T) {
	assert.Equal(t, "DistilBERT", ModelRef{ID: "x/y", Name: "DistilBERT"}.DisplayName())
	assert.Equal(t, "x/y", ModelRef{ID: "x/y"}.DisplayName())
}

func TestModelRefValidate(t *testing.T) {
	assert.NoError(t, ModelRef{ID: "textattack/roberta-base-SST-2"}.Validate())
	assert.Error(t, ModelRef{Name: "anonymous"}.Validate())
	assert.Error(t, ModelRef{ID: "   "}.Validate())
}

func TestSampleValidate(t *testing.T) {
	assert.NoError(t, Sample{Text: "fine", Expected: "positive"}.Validate())
	assert.NoError(t, Sample{Text: "bad", Expected: "negative"}.Validate())
	assert.Error(t, Sample{Text: "", Expected: "positive"}.Validate())
	assert.Error(t, Sample{Text: "meh", Expected: "neutral"}.Validate())
	assert.Error(t, Sample{Text: "meh", Expected: "Positive"}.Validate())
}

func TestDefaultsAreValid(t *testing.T) {
	samples := DefaultSamples()
	require.Len(t, samples, 8)
	for _, s := range samples {
		assert.NoError(t, s.Validate())
	}

	for _, m := range DefaultBenchModels() {
		assert.NoError(t, m.Validate())
	}
	for _, m := range DefaultCompareModels() {
		assert.NoError(t, m.Validate())
	}
	require.Len(t, DefaultBenchModels(), 3)
	require.Len(t, DefaultCompareModels(), 3)
}

func TestDefaultExampleTextsMatchSamples(t *testing.T) {
	texts := DefaultExampleTexts()
	samples := DefaultSamples()
	require.Len(t, texts, len(samples))
	for i, s := range samples {
		assert.Equal(t, s.Text, texts[i])
	}
}
