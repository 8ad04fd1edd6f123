// Package evalset holds the model references and labeled samples the
// benchmark and comparison surfaces run against.
package evalset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sentialab/go-sentiment-server/internal/sentiment"
)

// ModelRef points at one pretrained checkpoint. Name is the short form used
// in report tables and comparison headers.
type ModelRef struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

func NewModelRef(id string, name string) ModelRef {
	return ModelRef{ID: id, Name: name}
}

// DisplayName returns Name, or the raw ID when no short name is set.
func (m ModelRef) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.ID
}

func (m ModelRef) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.New("model id must not be empty")
	}
	return nil
}

// Sample is one gold example: a text and the canonical label it should
// classify as.
type Sample struct {
	Text     string `json:"text" yaml:"text"`
	Expected string `json:"expected" yaml:"expected"`
}

func NewSample(text string, expected string) Sample {
	return Sample{Text: text, Expected: expected}
}

func (s Sample) Validate() error {
	if strings.TrimSpace(s.Text) == "" {
		return errors.New("sample text must not be empty")
	}
	if !sentiment.IsCanonical(s.Expected) {
		return fmt.Errorf("sample %q: expected label %q is not %q or %q",
			s.Text, s.Expected, sentiment.Positive, sentiment.Negative)
	}
	return nil
}
